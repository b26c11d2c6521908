package scenario

import (
	"fmt"
	"net/http"
	"strings"
)

// Protocol is the URL scheme a Server is reached with.
type Protocol string

const (
	ProtocolHTTP  Protocol = "http"
	ProtocolHTTPS Protocol = "https"
)

// Valid reports whether p is a known protocol.
func (p Protocol) Valid() bool {
	return p == ProtocolHTTP || p == ProtocolHTTPS
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Protocol) UnmarshalText(text []byte) error {
	v := Protocol(strings.ToLower(string(text)))
	if !v.Valid() {
		return fmt.Errorf("unknown protocol %q: must be 'http' or 'https'", text)
	}
	*p = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (p Protocol) MarshalText() ([]byte, error) {
	return []byte(p), nil
}

// HTTPVersion selects the wire protocol used to talk to a Server.
type HTTPVersion string

const (
	HTTP10 HTTPVersion = "v1_0"
	HTTP11 HTTPVersion = "v1_1"
	HTTP20 HTTPVersion = "v2_0"
)

// Valid reports whether v is a known HTTP version.
func (v HTTPVersion) Valid() bool {
	switch v {
	case HTTP10, HTTP11, HTTP20:
		return true
	}
	return false
}

// String returns the conventional "HTTP/x.y" form.
func (v HTTPVersion) String() string {
	switch v {
	case HTTP10:
		return "HTTP/1.0"
	case HTTP11:
		return "HTTP/1.1"
	case HTTP20:
		return "HTTP/2.0"
	}
	return string(v)
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *HTTPVersion) UnmarshalText(text []byte) error {
	parsed := HTTPVersion(strings.ToLower(string(text)))
	if !parsed.Valid() {
		return fmt.Errorf("unknown http_version %q: must be 'v1_0', 'v1_1' or 'v2_0'", text)
	}
	*v = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (v HTTPVersion) MarshalText() ([]byte, error) {
	return []byte(v), nil
}

// Method is an HTTP request method.
type Method string

var methods = map[Method]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodHead:    {},
	http.MethodOptions: {},
	http.MethodConnect: {},
	http.MethodTrace:   {},
	http.MethodPatch:   {},
}

// Valid reports whether m is one of the standard HTTP verbs.
func (m Method) Valid() bool {
	_, ok := methods[m]
	return ok
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Method) UnmarshalText(text []byte) error {
	parsed := Method(strings.ToUpper(string(text)))
	if !parsed.Valid() {
		return fmt.Errorf("unknown method %q", text)
	}
	*m = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Method) MarshalText() ([]byte, error) {
	return []byte(m), nil
}
