package transport

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/net/http2"
)

// HTTP is the net/http backed Transport.
type HTTP struct {
	http1 *http.Client
	h2TLS *http.Client
	h2c   *http.Client
}

// Option configures an HTTP transport.
type Option func(*options)

type options struct {
	tlsConfig *tls.Config
}

// WithTLSConfig sets the TLS configuration used for https servers. A nil
// config keeps the default.
func WithTLSConfig(cfg *tls.Config) Option {
	return func(o *options) {
		if cfg != nil {
			o.tlsConfig = cfg.Clone()
		}
	}
}

// WithInsecureSkipVerify disables certificate verification for https servers.
func WithInsecureSkipVerify(skip bool) Option {
	return func(o *options) { o.tlsConfig.InsecureSkipVerify = skip }
}

// NewHTTP builds the three per-profile clients. Redirects are never
// followed: the response under test is the one the server sent.
func NewHTTP(opts ...Option) *HTTP {
	o := &options{tlsConfig: &tls.Config{}}
	for _, opt := range opts {
		opt(o)
	}

	http1 := &http.Transport{
		TLSClientConfig: o.tlsConfig.Clone(),
		// A non-nil, empty map disables the automatic HTTP/2 upgrade.
		TLSNextProto:        map[string]func(string, *tls.Conn) http.RoundTripper{},
		ForceAttemptHTTP2:   false,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
	h2TLS := &http2.Transport{
		TLSClientConfig: o.tlsConfig.Clone(),
	}
	h2c := &http2.Transport{
		AllowHTTP: true,
		// Prior knowledge: dial plain TCP and start speaking h2 frames.
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			var d net.Dialer
			return d.DialContext(ctx, network, addr)
		},
	}

	return &HTTP{
		http1: newClient(http1),
		h2TLS: newClient(h2TLS),
		h2c:   newClient(h2c),
	}
}

func newClient(rt http.RoundTripper) *http.Client {
	return &http.Client{
		Transport: rt,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// RoundTrip implements Transport.
func (t *HTTP) RoundTrip(ctx context.Context, call *Call) (*Response, error) {
	u, err := url.Parse(call.URL)
	if err != nil {
		return nil, &Error{Kind: MalformedURL, Err: err}
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, &Error{Kind: MalformedURL, Err: fmt.Errorf("unsupported url %q", call.URL)}
	}

	if call.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, call.Timeout)
		defer cancel()
	}

	var body io.Reader
	if call.Body != nil {
		body = bytes.NewReader(call.Body)
	}
	req, err := http.NewRequestWithContext(ctx, call.Method, u.String(), body)
	if err != nil {
		return nil, &Error{Kind: MalformedURL, Err: err}
	}
	if call.Header != nil {
		req.Header = call.Header.Clone()
	}
	if host := req.Header.Get("Host"); host != "" {
		req.Host = host
	}
	req.Close = call.Close

	resp, err := t.client(call.Profile, u.Scheme).Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(fmt.Errorf("reading response body: %w", err))
	}

	return &Response{
		Status: resp.StatusCode,
		Proto:  resp.Proto,
		Header: resp.Header,
		Body:   data,
	}, nil
}

func (t *HTTP) client(p Profile, scheme string) *http.Client {
	switch {
	case p == HTTP2 && scheme == "https":
		return t.h2TLS
	case p == HTTP2:
		return t.h2c
	}
	return t.http1
}

// CloseIdleConnections releases pooled connections of every profile.
func (t *HTTP) CloseIdleConnections() {
	t.http1.CloseIdleConnections()
	t.h2TLS.CloseIdleConnections()
	t.h2c.CloseIdleConnections()
}
