// Package executor turns a scenario request into a single transport call.
//
// It resolves the target URL from the request's server, attaches headers, the
// JSON body and bearer authorization, picks the wire profile from the
// server's HTTP version and applies the request timeout. It sends exactly
// once and never retries.
package executor
