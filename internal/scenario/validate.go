package scenario

import (
	"errors"
	"fmt"
)

// Validate checks the field-level schema of the scenario: enum values, hosts
// and paths. Cross-references between servers, requests and responses are
// checked by dag.Build.
func (s *Scenario) Validate() error {
	var errs []error
	for _, srv := range s.Servers {
		if !srv.Protocol.Valid() {
			errs = append(errs, fmt.Errorf("server %d: unknown protocol %q", srv.ID, srv.Protocol))
		}
		if !srv.HTTPVersion.Valid() {
			errs = append(errs, fmt.Errorf("server %d: unknown http_version %q", srv.ID, srv.HTTPVersion))
		}
		if srv.Host == "" {
			errs = append(errs, fmt.Errorf("server %d: host is required", srv.ID))
		}
		if srv.Port == 0 {
			errs = append(errs, fmt.Errorf("server %d: port is required", srv.ID))
		}
	}
	for _, req := range s.Requests {
		if !req.Method.Valid() {
			errs = append(errs, fmt.Errorf("request %d: unknown method %q", req.ID, req.Method))
		}
	}
	for _, res := range s.Responses {
		if res.Expected.Status < 100 || res.Expected.Status > 999 {
			errs = append(errs, fmt.Errorf("response %d: status %d is not a valid HTTP status code", res.ID, res.Expected.Status))
		}
	}
	return errors.Join(errs...)
}
