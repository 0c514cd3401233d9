package httputil

import (
	"net/http"
	"time"
)

// Timeout budgets applied to every remote call.
const (
	// DefaultRequestTimeout caps the wait for response headers on a
	// single request. A server that accepts the connection but never
	// answers fails within this budget.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultTransferTimeout caps the whole exchange including body
	// transfer. Large responses trickling in slower than this fail
	// rather than hang.
	DefaultTransferTimeout = 60 * time.Second
)

// NewHTTPClient creates an HTTP client with the standard timeout budgets.
//
// The returned client enforces [DefaultRequestTimeout] on response
// headers and [DefaultTransferTimeout] on the full exchange. All remote
// clients in swiftdocs share this construction so that timeout behavior
// is uniform.
func NewHTTPClient() *http.Client {
	return NewHTTPClientWithTimeouts(DefaultRequestTimeout, DefaultTransferTimeout)
}

// NewHTTPClientWithTimeouts creates an HTTP client with explicit budgets.
// A zero request timeout disables the header deadline; a zero transfer
// timeout disables the overall deadline.
func NewHTTPClientWithTimeouts(request, transfer time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = request
	return &http.Client{
		Timeout:   transfer,
		Transport: transport,
	}
}
