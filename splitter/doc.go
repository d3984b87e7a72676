// Package splitter chunks text for embedding. Three strategies are
// provided: WindowSplitter (fixed-size sliding window with overlap),
// SeparatorSplitter (paragraph split with greedy packing) and
// MarkdownSplitter (heading-delimited sections). All of them are pure
// functions of their input, count size in characters, and map empty
// input to a single empty chunk instead of failing.
package splitter
