package transport

import (
	"context"
	"net/http"
	"time"
)

// Profile selects the wire protocol for a call.
type Profile int

const (
	// HTTP1 forces HTTP/1.x, even against servers that offer h2 via ALPN.
	HTTP1 Profile = iota
	// HTTP2 speaks HTTP/2: negotiated via ALPN over TLS, or with prior
	// knowledge (h2c, no upgrade handshake) over cleartext.
	HTTP2
)

func (p Profile) String() string {
	if p == HTTP2 {
		return "HTTP/2"
	}
	return "HTTP/1.x"
}

// Call is one fully-resolved request.
type Call struct {
	Method  string
	URL     string
	Header  http.Header
	Body    []byte
	Profile Profile
	// Close asks for the connection to be closed after the response,
	// approximating HTTP/1.0 semantics on an HTTP/1.1 client.
	Close bool
	// Timeout bounds the whole exchange, including reading the body.
	// Zero means no timeout beyond the caller's context.
	Timeout time.Duration
}

// Response is the captured result of a successful exchange.
type Response struct {
	Status int
	Proto  string
	Header http.Header
	Body   []byte
}

// Transport sends exactly one request per RoundTrip call.
type Transport interface {
	RoundTrip(ctx context.Context, call *Call) (*Response, error)
}
