// Package integrations provides HTTP clients for remote package sources.
//
// # Overview
//
// This package contains low-level API clients for fetching Swift package
// metadata, documentation, and example code from remote sources. Each source
// has its own subpackage:
//
//   - [spindex]: the Swift Package Index package list
//   - [github]: the GitHub API for repository metadata and content
//
// # Client Pattern
//
// Source clients follow a consistent pattern:
//
//	client := github.NewClient(token)
//	meta, err := client.FetchRepositoryInfo(ctx, "https://github.com/vapor/vapor")
//
// Clients handle:
//   - HTTP requests with bounded timeouts
//   - API-specific parsing and normalization
//
// Caching is opt-in per source: the package-list fetch caches through
// [Client.Cached], while repository calls stay uncached and rely on the
// resolution layer to cache final results.
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all source
// clients, including cached fetches via [Client.Cached] and JSON decoding
// via [Client.Get]. Failures map onto the sentinels [ErrNotFound] and
// [ErrNetwork] so callers can branch on the failure class without knowing
// which source produced it.
//
// # Error Semantics
//
// A 404 maps to [ErrNotFound]. Connection failures, timeouts, and 5xx
// responses map to [ErrNetwork]; 5xx additionally marks the error retryable
// so callers that opt into retry (the package-list fetch) back off and try
// again. Rate-limited responses (429, or 403 with an exhausted quota header)
// surface as a dedicated rate-limit error carrying the server's Retry-After
// hint. Malformed JSON is a parse error, never a silent partial decode.
package integrations
