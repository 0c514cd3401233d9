// Package summarize mines text out of resolution results: README and
// DocC markdown condensed into headline/abstract/section summaries,
// and example code condensed into recurring usage patterns.
//
// Everything here is regex-driven and offline. The heuristics favor
// being deterministic over being clever: the same input always yields
// the same summary, and noise (badge rows, raw HTML, fenced code,
// standard-library initializers) is filtered with small fixed rules
// rather than parsed properly.
package summarize
