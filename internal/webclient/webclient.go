package webclient

import (
	"context"
	"net/http"
	"time"
)

// WebClient executes HTTP requests. Implementations must be safe for
// concurrent use; the crawl workers share one client.
type WebClient interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Close() error
}

// Request is a backend-agnostic HTTP request.
type Request struct {
	Method  string
	URL     string
	Headers http.Header
}

// TLSInfo captures handshake facts from a secure fetch.
type TLSInfo struct {
	Valid        bool
	DaysToExpiry int
}

// Response is the fetched page plus the transport facts the health
// checker and scorers care about.
type Response struct {
	Request       *Request
	StatusCode    int
	Headers       http.Header
	Body          []byte
	RedirectCount int
	TLS           *TLSInfo
	FromCache     bool
	FetchedAt     time.Time
}

// Get is a convenience helper for the dominant GET-only call sites.
func Get(ctx context.Context, wc WebClient, url string) (*Response, error) {
	return wc.Do(ctx, &Request{Method: http.MethodGet, URL: url})
}
