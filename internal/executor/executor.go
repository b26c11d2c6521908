package executor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/specialistvlad/trafficgo/internal/ctxlog"
	"github.com/specialistvlad/trafficgo/internal/scenario"
	"github.com/specialistvlad/trafficgo/internal/transport"
)

// DefaultTimeout applies to requests that carry no timeout_ms.
const DefaultTimeout = 30 * time.Second

// ErrMissingToken is returned when a server requires authorization but has
// no token configured.
var ErrMissingToken = errors.New("server requires authorization but has no authz_token")

// Executor sends scenario requests through a Transport.
type Executor struct {
	transport      transport.Transport
	defaultTimeout time.Duration
}

// Option configures an Executor.
type Option func(*Executor)

// WithDefaultTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithDefaultTimeout(d time.Duration) Option {
	return func(e *Executor) {
		if d > 0 {
			e.defaultTimeout = d
		}
	}
}

// New creates an Executor bound to t.
func New(t transport.Transport, opts ...Option) *Executor {
	e := &Executor{transport: t, defaultTimeout: DefaultTimeout}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute sends req to srv and returns the raw response. Every failure to
// obtain a response is a *transport.Error.
func (e *Executor) Execute(ctx context.Context, srv *scenario.Server, req *scenario.Request) (*transport.Response, error) {
	logger := ctxlog.FromContext(ctx).With("request_id", req.ID, "server_id", srv.ID)

	call, err := e.buildCall(srv, req)
	if err != nil {
		logger.Debug("Request could not be built.", "error", err)
		return nil, err
	}

	logger.Debug("Sending request.", "method", call.Method, "url", call.URL, "profile", call.Profile, "timeout", call.Timeout)
	resp, err := e.transport.RoundTrip(ctx, call)
	if err != nil {
		var te *transport.Error
		if !errors.As(err, &te) {
			err = &transport.Error{Kind: transport.Other, Err: err}
		}
		return nil, err
	}
	logger.Debug("Response received.", "status", resp.Status, "proto", resp.Proto, "bytes", len(resp.Body))
	return resp, nil
}

func (e *Executor) buildCall(srv *scenario.Server, req *scenario.Request) (*transport.Call, error) {
	target, err := targetURL(srv, req.Path)
	if err != nil {
		return nil, &transport.Error{Kind: transport.MalformedURL, Err: err}
	}

	header := make(http.Header, len(req.Content.Headers)+2)
	for name, value := range req.Content.Headers {
		header.Set(name, value)
	}

	var body []byte
	if req.Content.Body != nil {
		body, err = json.Marshal(req.Content.Body)
		if err != nil {
			return nil, &transport.Error{Kind: transport.Other, Err: fmt.Errorf("encoding body: %w", err)}
		}
		if header.Get("Content-Type") == "" {
			header.Set("Content-Type", "application/json")
		}
	}

	if srv.Authorization {
		if srv.AuthzToken == nil || *srv.AuthzToken == "" {
			return nil, &transport.Error{Kind: transport.Auth, Err: ErrMissingToken}
		}
		header.Set("Authorization", "Bearer "+*srv.AuthzToken)
	}

	timeout := e.defaultTimeout
	if req.TimeoutMS != nil && *req.TimeoutMS > 0 {
		timeout = time.Duration(*req.TimeoutMS) * time.Millisecond
	}

	profile := transport.HTTP1
	if srv.HTTPVersion == scenario.HTTP20 {
		profile = transport.HTTP2
	}

	return &transport.Call{
		Method:  string(req.Method),
		URL:     target,
		Header:  header,
		Body:    body,
		Profile: profile,
		Close:   srv.HTTPVersion == scenario.HTTP10,
		Timeout: timeout,
	}, nil
}

// targetURL assembles protocol://host:port/path.
func targetURL(srv *scenario.Server, path string) (string, error) {
	if !srv.Protocol.Valid() {
		return "", fmt.Errorf("unknown protocol %q", srv.Protocol)
	}
	if srv.Host == "" || strings.ContainsAny(srv.Host, "/?# ") {
		return "", fmt.Errorf("invalid host %q", srv.Host)
	}
	if path != "" && !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	ref, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %q: %w", path, err)
	}
	if ref.IsAbs() || ref.Host != "" {
		return "", fmt.Errorf("path %q must not carry a scheme or host", path)
	}

	u := &url.URL{
		Scheme:   string(srv.Protocol),
		Host:     net.JoinHostPort(srv.Host, strconv.Itoa(int(srv.Port))),
		Path:     ref.Path,
		RawPath:  ref.RawPath,
		RawQuery: ref.RawQuery,
	}
	return u.String(), nil
}
