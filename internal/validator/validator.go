package validator

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"sort"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/trafficgo/internal/scenario"
	"github.com/specialistvlad/trafficgo/internal/transport"
)

// Check names one aspect of a response.
type Check string

const (
	CheckStatus  Check = "status"
	CheckHeaders Check = "headers"
	CheckBody    Check = "body"
)

// CheckResult is the outcome of a single check.
type CheckResult struct {
	Check  Check  `json:"check" yaml:"check"`
	Passed bool   `json:"passed" yaml:"passed"`
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
}

// Verdict collects every check performed on a response. Failed is the first
// failing check in evaluation order, or empty when all passed.
type Verdict struct {
	Checks []CheckResult `json:"checks" yaml:"checks"`
	Failed Check         `json:"failed,omitempty" yaml:"failed,omitempty"`
}

// Passed reports whether every check passed.
func (v Verdict) Passed() bool {
	return v.Failed == ""
}

// Reason returns the detail of the first failing check.
func (v Verdict) Reason() string {
	for _, c := range v.Checks {
		if c.Check == v.Failed {
			return fmt.Sprintf("%s mismatch: %s", c.Check, c.Detail)
		}
	}
	return ""
}

// Validate checks status, then headers, then body. A nil expectation accepts
// any response. Validate has no side effects.
func Validate(expected *scenario.ExpectedResponse, actual *transport.Response) Verdict {
	var v Verdict
	if expected == nil {
		return v
	}

	v.add(checkStatus(int(expected.Expected.Status), actual.Status))
	v.add(checkHeaders(expected.Expected.Headers, actual.Header))
	v.add(checkBody(expected.Expected.Body, actual.Body))
	return v
}

func (v *Verdict) add(r CheckResult) {
	v.Checks = append(v.Checks, r)
	if !r.Passed && v.Failed == "" {
		v.Failed = r.Check
	}
}

func checkStatus(want, got int) CheckResult {
	r := CheckResult{Check: CheckStatus, Passed: want == got}
	if !r.Passed {
		r.Detail = fmt.Sprintf("want %d, got %d", want, got)
	}
	return r
}

// checkHeaders is a subset match: every expected header must be present with
// the expected value, extra headers are ignored.
func checkHeaders(want map[string]string, got http.Header) CheckResult {
	names := make([]string, 0, len(want))
	for name := range want {
		names = append(names, name)
	}
	sort.Strings(names)

	var problems []string
	for _, name := range names {
		values := got.Values(name)
		if !headerMatches(values, want[name]) {
			if len(values) == 0 {
				problems = append(problems, fmt.Sprintf("%s: want %q, header absent", name, want[name]))
			} else {
				problems = append(problems, fmt.Sprintf("%s: want %q, got %q", name, want[name], strings.Join(values, ", ")))
			}
		}
	}

	r := CheckResult{Check: CheckHeaders, Passed: len(problems) == 0}
	if !r.Passed {
		r.Detail = strings.Join(problems, "; ")
	}
	return r
}

func headerMatches(values []string, want string) bool {
	for _, v := range values {
		if v == want {
			return true
		}
	}
	return len(values) > 1 && (strings.Join(values, ", ") == want || strings.Join(values, ",") == want)
}

// checkBody compares JSON values structurally: object key order is
// irrelevant, array order is significant, numbers must be equal.
func checkBody(want any, got []byte) CheckResult {
	r := CheckResult{Check: CheckBody}

	wantV, err := canonical(want)
	if err != nil {
		r.Detail = fmt.Sprintf("expected body is not JSON-encodable: %v", err)
		return r
	}

	gotV, err := decodeBody(got)
	if err != nil {
		// A non-JSON body can still match an expected plain string.
		if s, ok := wantV.(string); ok && s == string(got) {
			r.Passed = true
			return r
		}
		r.Detail = fmt.Sprintf("response body is not valid JSON: %v", err)
		return r
	}

	if cmp.Equal(wantV, gotV, exactNumbers) {
		r.Passed = true
		return r
	}
	r.Detail = "(-want +got)\n" + cmp.Diff(wantV, gotV, exactNumbers)
	return r
}

// exactNumbers compares JSON numbers by value without going through float64:
// 1 equals 1.0, but 9007199254740993 does not equal 9007199254740992.
var exactNumbers = cmp.Comparer(func(a, b json.Number) bool {
	x, okX := new(big.Rat).SetString(string(a))
	y, okY := new(big.Rat).SetString(string(b))
	if !okX || !okY {
		return a == b
	}
	return x.Cmp(y) == 0
})

// canonical round-trips v through encoding/json so values decoded from YAML
// or HCL take the same shape as values decoded from JSON.
func canonical(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return decodeJSON(raw)
}

func decodeBody(body []byte) (any, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil, nil
	}
	return decodeJSON(body)
}

// decodeJSON decodes a single JSON value, keeping numbers as json.Number.
func decodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var out any
	if err := dec.Decode(&out); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("invalid data after top-level value")
	}
	return out, nil
}
