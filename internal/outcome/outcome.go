package outcome

import (
	"fmt"
	"time"

	"github.com/specialistvlad/trafficgo/internal/validator"
)

// Kind is the final state of one request in a run.
type Kind int

const (
	// Passed means the request was sent and satisfied its expectation, or
	// had no expectation and the transport call succeeded.
	Passed Kind = iota
	// FailedTransport means no response was obtained (refused, timeout, TLS...).
	FailedTransport
	// FailedValidation means a response was obtained but did not match.
	FailedValidation
	// Blocked means the request was never attempted because a dependency
	// did not pass.
	Blocked
)

// Kinds lists every outcome kind in reporting order.
var Kinds = []Kind{Passed, FailedTransport, FailedValidation, Blocked}

func (k Kind) String() string {
	switch k {
	case Passed:
		return "Passed"
	case FailedTransport:
		return "FailedTransport"
	case FailedValidation:
		return "FailedValidation"
	case Blocked:
		return "Blocked"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler so reports carry names.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Outcome is the result recorded for a single request.
type Outcome struct {
	RequestID uint32 `json:"request_id" yaml:"request_id"`
	Kind      Kind   `json:"kind" yaml:"kind"`
	// Reason is a human-readable explanation for any non-passing kind.
	Reason string `json:"reason,omitempty" yaml:"reason,omitempty"`
	// Status is the actual HTTP status, zero if no response was received.
	Status int `json:"status,omitempty" yaml:"status,omitempty"`
	// Verdict holds the validation detail when an expectation was checked.
	Verdict *validator.Verdict `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	// BlockedBy lists the dependencies that did not pass.
	BlockedBy []uint32      `json:"blocked_by,omitempty" yaml:"blocked_by,omitempty"`
	Wave      int           `json:"wave" yaml:"wave"`
	Duration  time.Duration `json:"duration" yaml:"duration"`
}

// Passed reports whether the outcome is Passed.
func (o Outcome) Passed() bool {
	return o.Kind == Passed
}
