// Package transport sends a single HTTP request and captures the raw result:
// status, headers and body, or a classified transport error.
//
// The engine only depends on the Transport interface. HTTP is the production
// implementation; it keeps one client per wire profile (HTTP/1.x, HTTP/2 over
// TLS, HTTP/2 with prior knowledge over cleartext) and never retries.
package transport
