// Package retriever turns text queries into vector store lookups:
// embed the query, search by cosine similarity, optionally filter by a
// score threshold. A query that degrades to a zero vector returns no
// results instead of a meaningless ranking.
package retriever
