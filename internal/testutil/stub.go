package testutil

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/trafficgo/internal/transport"
)

// StubRoute is the canned behavior for one request path.
type StubRoute struct {
	Status int
	Header http.Header
	Body   string
	// Err is returned instead of a response when set.
	Err error
	// Delay holds the call open before answering. It honors ctx.
	Delay time.Duration
}

// StubTransport is a transport.Transport that answers from a route table
// keyed by URL path and counts every call. Unknown paths answer 404.
type StubTransport struct {
	mu          sync.Mutex
	routes      map[string]StubRoute
	calls       map[string]int
	inFlight    int
	maxInFlight int
	last        map[string]*transport.Call
}

// NewStubTransport creates an empty stub.
func NewStubTransport() *StubTransport {
	return &StubTransport{
		routes: make(map[string]StubRoute),
		calls:  make(map[string]int),
		last:   make(map[string]*transport.Call),
	}
}

// Handle registers the response for path and returns the stub for chaining.
func (s *StubTransport) Handle(path string, route StubRoute) *StubTransport {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.routes[path] = route
	return s
}

// RoundTrip implements transport.Transport.
func (s *StubTransport) RoundTrip(ctx context.Context, call *transport.Call) (*transport.Response, error) {
	u, err := url.Parse(call.URL)
	if err != nil {
		return nil, &transport.Error{Kind: transport.MalformedURL, Err: err}
	}

	s.mu.Lock()
	s.calls[u.Path]++
	s.last[u.Path] = call
	s.inFlight++
	if s.inFlight > s.maxInFlight {
		s.maxInFlight = s.inFlight
	}
	route, ok := s.routes[u.Path]
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.inFlight--
		s.mu.Unlock()
	}()

	if !ok {
		return &transport.Response{Status: http.StatusNotFound, Proto: "HTTP/1.1", Header: http.Header{}}, nil
	}
	if route.Delay > 0 {
		timeout := route.Delay
		if call.Timeout > 0 && call.Timeout < timeout {
			timeout = call.Timeout
		}
		select {
		case <-time.After(timeout):
		case <-ctx.Done():
			return nil, &transport.Error{Kind: transport.Canceled, Err: ctx.Err()}
		}
		if timeout < route.Delay {
			return nil, &transport.Error{Kind: transport.Timeout, Err: context.DeadlineExceeded}
		}
	}
	if route.Err != nil {
		return nil, route.Err
	}

	header := route.Header.Clone()
	if header == nil {
		header = http.Header{}
	}
	return &transport.Response{
		Status: route.Status,
		Proto:  "HTTP/1.1",
		Header: header,
		Body:   []byte(route.Body),
	}, nil
}

// Calls returns how many times path was requested.
func (s *StubTransport) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[path]
}

// TotalCalls returns the number of calls across all paths.
func (s *StubTransport) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// MaxInFlight returns the highest number of concurrent calls observed.
func (s *StubTransport) MaxInFlight() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxInFlight
}

// LastCall returns the most recent call made to path.
func (s *StubTransport) LastCall(path string) (*transport.Call, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.last[path]
	return c, ok
}
