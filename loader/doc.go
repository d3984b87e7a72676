// Package loader reads source material into ragpipe.Document values
// ready for the ingestion pipeline: single text files, directories of
// text files, and HTML pages stripped to plain text.
package loader
