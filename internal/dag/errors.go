package dag

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Structural errors. A scenario that triggers any of them is malformed and
// is rejected before any request is dispatched.
var (
	ErrUnknownServer               = errors.New("unknown server")
	ErrUnknownDependency           = errors.New("unknown dependency")
	ErrDependencyCycle             = errors.New("dependency cycle")
	ErrDuplicateResponseForRequest = errors.New("duplicate response for request")
	ErrDuplicateServer             = errors.New("duplicate server id")
	ErrDuplicateRequest            = errors.New("duplicate request id")
	ErrUnknownRequest              = errors.New("unknown request")
)

// ScenarioError describes one structural problem. Kind is one of the
// sentinel errors above, so callers can match with errors.Is.
type ScenarioError struct {
	Kind error
	// Subject names the entity the problem was found on, e.g. "request 3".
	Subject string
	// IDs are the offending ids (unknown references, duplicates, or the
	// cycle member).
	IDs []uint32
}

func (e *ScenarioError) Error() string {
	ids := make([]string, len(e.IDs))
	for i, id := range e.IDs {
		ids[i] = strconv.FormatUint(uint64(id), 10)
	}
	return fmt.Sprintf("%s: %v [%s]", e.Subject, e.Kind, strings.Join(ids, ", "))
}

func (e *ScenarioError) Unwrap() error {
	return e.Kind
}
