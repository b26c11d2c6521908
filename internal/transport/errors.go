package transport

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"

	"golang.org/x/net/http2"
)

// ErrorKind classifies why no response was obtained.
type ErrorKind int

const (
	Other ErrorKind = iota
	ConnectionRefused
	Timeout
	MalformedURL
	TLS
	Protocol
	Auth
	Canceled
)

func (k ErrorKind) String() string {
	switch k {
	case ConnectionRefused:
		return "connection refused"
	case Timeout:
		return "timeout"
	case MalformedURL:
		return "malformed url"
	case TLS:
		return "tls failure"
	case Protocol:
		return "protocol error"
	case Auth:
		return "authorization"
	case Canceled:
		return "canceled"
	}
	return "transport error"
}

// Error is a transport failure with its classification.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// classify wraps err into an *Error with the best matching kind.
func classify(err error) *Error {
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Kind: kindOf(err), Err: err}
}

func kindOf(err error) ErrorKind {
	var (
		netErr     net.Error
		certErr    *tls.CertificateVerificationError
		recordErr  tls.RecordHeaderError
		alertErr   tls.AlertError
		authErr    x509.UnknownAuthorityError
		hostErr    x509.HostnameError
		invalidErr x509.CertificateInvalidError
		streamErr  http2.StreamError
		connErr    http2.ConnectionError
		goAwayErr  http2.GoAwayError
	)
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return Timeout
	case errors.Is(err, context.Canceled):
		return Canceled
	case errors.Is(err, syscall.ECONNREFUSED):
		return ConnectionRefused
	case errors.As(err, &certErr), errors.As(err, &recordErr), errors.As(err, &alertErr),
		errors.As(err, &authErr), errors.As(err, &hostErr), errors.As(err, &invalidErr):
		return TLS
	case errors.As(err, &streamErr), errors.As(err, &connErr), errors.As(err, &goAwayErr):
		return Protocol
	case errors.As(err, &netErr) && netErr.Timeout():
		return Timeout
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "http2:"), strings.Contains(msg, "malformed HTTP"):
		return Protocol
	case strings.Contains(msg, "tls:"), strings.Contains(msg, "x509:"):
		return TLS
	}
	return Other
}
