// Package spindex provides a client for the Swift Package Index package list.
//
// # Overview
//
// The Swift Package Index publishes a single JSON document listing the
// repository URLs of every indexed package. This package fetches that list,
// caches it, and answers name lookups and ranked searches against it.
//
// # Usage
//
//	client := spindex.NewClient(indexCache)
//
//	results, err := client.Search(ctx, "nio", 10)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, pkg := range results {
//	    fmt.Println(pkg.Name, pkg.SourceURL)
//	}
//
// # Caching
//
// The list changes slowly, so it is cached with a long TTL (typically 24
// hours) and consulted memory-first, then disk, then network. The network
// fetch retries transient failures with backoff; this is the only fetch in
// the system that retries. When the fetch fails and no cached copy is
// usable the error propagates, because every lookup depends on the list.
//
// # Ranking
//
// [Score] ranks candidate names for a query deterministically: exact match,
// then prefix, then substring weighted by coverage, then an in-order
// character subsequence. Ties keep the list's discovery order.
package spindex
