package outcome

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_RecordAndGet(t *testing.T) {
	s := NewStore()

	// Get an outcome that doesn't exist yet
	_, ok := s.Get(1)
	assert.False(t, ok)

	require.NoError(t, s.Record(Outcome{RequestID: 1, Kind: FailedTransport, Reason: "connection refused"}))

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, FailedTransport, got.Kind)
	assert.Equal(t, "connection refused", got.Reason)
}

func TestStore_WriteOnce(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Record(Outcome{RequestID: 7, Kind: Passed}))

	err := s.Record(Outcome{RequestID: 7, Kind: Blocked})
	assert.ErrorIs(t, err, ErrAlreadyRecorded)

	got, _ := s.Get(7)
	assert.Equal(t, Passed, got.Kind, "the first write must win")
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	numGoroutines := 100
	var wg sync.WaitGroup

	wg.Add(numGoroutines)
	for i := range numGoroutines {
		go func(i int) {
			defer wg.Done()
			if err := s.Record(Outcome{RequestID: uint32(i), Kind: Kind(i % 4)}); err != nil {
				t.Errorf("record %d: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	all := s.All()
	require.Len(t, all, numGoroutines)
	assert.Equal(t, numGoroutines, s.Len())
	for i, o := range all {
		assert.Equal(t, uint32(i), o.RequestID, "outcomes must be sorted by request id")
		assert.Equal(t, Kind(i%4), o.Kind)
	}
}

func TestKind_String(t *testing.T) {
	for _, k := range Kinds {
		text, err := k.MarshalText()
		require.NoError(t, err)
		assert.Equal(t, k.String(), string(text))
	}
	assert.Equal(t, "Kind(9)", fmt.Sprint(Kind(9)))
}
