// Package httputil provides HTTP utilities shared by the remote clients.
//
// # Overview
//
// This package provides infrastructure used by the package index and
// repository API clients:
//
//   - [NewHTTPClient]: Timeout-bounded HTTP client construction
//   - [Retry]: Automatic retry with exponential backoff
//
// # Timeouts
//
// Every remote call made by swiftdocs is bounded by two budgets: a
// per-request budget that caps the wait for response headers, and a
// transfer budget that caps the whole exchange including the body.
// [NewHTTPClient] wires both into a single *http.Client so that no
// caller can block indefinitely on a stalled server:
//
//	client := httputil.NewHTTPClient()
//	resp, err := client.Get(url) // fails within the configured budgets
//
// # Retry
//
// [Retry] wraps operations with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// Only errors wrapped with [RetryableError] trigger retries; everything
// else fails immediately. The delay doubles after each failed attempt:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchPackageList(ctx)
//	})
//
// Retries are reserved for the load-bearing package index list fetch;
// ordinary content fetches fail fast and let the fallback chain advance.
package httputil
