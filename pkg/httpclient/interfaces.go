package httpclient

import (
	"context"
	"net/http"
)

// Request describes a single HTTP exchange handed to a Transport.
// A nil Body means the request carries no payload.
type Request struct {
	Method  string
	URL     string
	Headers map[string]string
	Body    []byte
}

// Response is a minimal HTTP response contract.
// Body returns nil when the response carries no body at all.
type Response interface {
	Body() []byte
	StatusCode() int
	Status() string
	Header() http.Header
}

// Transport abstracts HTTP calls so callers can inject mocks or different transports.
type Transport interface {
	Execute(ctx context.Context, req Request) (Response, error)
}
