// Package ingest assembles the splitter, embedder and vectorstore
// packages into a document ingestion pipeline.
//
// The pipeline inherits the embedder's degradation policy: a chunk
// whose embedding fails every retry is still indexed with a zero
// vector, counted in Stats.Failed and logged, so one bad chunk never
// aborts a run.
package ingest
