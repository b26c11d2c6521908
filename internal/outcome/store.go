package outcome

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrAlreadyRecorded is returned when a second outcome is recorded for the
// same request id. Each request is written exactly once, by exactly one task.
var ErrAlreadyRecorded = errors.New("outcome already recorded")

// Store collects outcomes keyed by request id.
//
// It uses sync.Map because writes are partitioned by id: every task owns a
// distinct key, and readers (the scheduler checking dependencies of the next
// wave) only look at keys whose writers have already finished.
type Store struct {
	outcomes sync.Map // Key: request id (uint32), Value: Outcome
}

// NewStore creates a new, empty outcome store.
func NewStore() *Store {
	return &Store{}
}

// Record stores the outcome for its request id. It fails if an outcome was
// already recorded for that id; the first write wins.
func (s *Store) Record(o Outcome) error {
	if _, loaded := s.outcomes.LoadOrStore(o.RequestID, o); loaded {
		return fmt.Errorf("request %d: %w", o.RequestID, ErrAlreadyRecorded)
	}
	return nil
}

// Get retrieves the outcome recorded for a request.
func (s *Store) Get(id uint32) (Outcome, bool) {
	v, ok := s.outcomes.Load(id)
	if !ok {
		return Outcome{}, false
	}
	return v.(Outcome), true
}

// All returns every recorded outcome sorted by request id.
func (s *Store) All() []Outcome {
	var all []Outcome
	s.outcomes.Range(func(_, v any) bool {
		all = append(all, v.(Outcome))
		return true
	})
	slices.SortFunc(all, func(a, b Outcome) int {
		switch {
		case a.RequestID < b.RequestID:
			return -1
		case a.RequestID > b.RequestID:
			return 1
		}
		return 0
	})
	return all
}

// Len returns the number of recorded outcomes.
func (s *Store) Len() int {
	n := 0
	s.outcomes.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
