package circuit

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replay feeds events ('f' failure, 's' success) and returns the breaker
// and the transitions observed, as "open"/"close" markers.
func replay(b *Breaker, events string) []string {
	var transitions []string
	for _, e := range events {
		var change StateChange
		switch e {
		case 'f':
			_, change = b.RecordFailure()
		case 's':
			_, change = b.RecordSuccess()
		}
		if change.Opened {
			transitions = append(transitions, "open")
		}
		if change.Closed {
			transitions = append(transitions, "close")
		}
	}
	return transitions
}

func TestBreaker_Sequences(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option
		events      string
		wantOpen    bool
		transitions []string
	}{
		{name: "fresh breaker is closed", events: "", wantOpen: false},
		{name: "defaults open on the fifth failure", events: "ffff", wantOpen: false},
		{name: "defaults open", events: "fffff", wantOpen: true, transitions: []string{"open"}},
		{
			name:        "threshold of three",
			opts:        []Option{WithFailureThreshold(3)},
			events:      "fff",
			wantOpen:    true,
			transitions: []string{"open"},
		},
		{
			name:     "success resets the failure run",
			opts:     []Option{WithFailureThreshold(3)},
			events:   "ffsff",
			wantOpen: false,
		},
		{
			name:        "closes after the success run",
			opts:        []Option{WithFailureThreshold(1), WithSuccessThreshold(2)},
			events:      "fss",
			wantOpen:    false,
			transitions: []string{"open", "close"},
		},
		{
			name:        "failure while open resets the success run",
			opts:        []Option{WithFailureThreshold(1), WithSuccessThreshold(3)},
			events:      "fssfss",
			wantOpen:    true,
			transitions: []string{"open"},
		},
		{
			name:        "repeated failures while open report no new transition",
			opts:        []Option{WithFailureThreshold(1)},
			events:      "fff",
			wantOpen:    true,
			transitions: []string{"open"},
		},
		{
			name:     "non-positive options keep the defaults",
			opts:     []Option{WithFailureThreshold(0), WithSuccessThreshold(-1)},
			events:   "ffff",
			wantOpen: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New("cpf-cache", tt.opts...)
			transitions := replay(b, tt.events)

			assert.Equal(t, tt.wantOpen, b.IsOpen())
			assert.Equal(t, tt.transitions, transitions)
		})
	}
}

func TestBreaker_FallbackSignals(t *testing.T) {
	b := New("cpf-cache", WithFailureThreshold(2), WithSuccessThreshold(1))

	useFallback, _ := b.RecordFailure()
	assert.False(t, useFallback, "below threshold the primary is still used")
	useFallback, _ = b.RecordFailure()
	assert.True(t, useFallback)

	usePrimary, change := b.RecordSuccess()
	assert.True(t, usePrimary)
	assert.True(t, change.Closed)
}

func TestBreaker_ResetAndState(t *testing.T) {
	b := New("cpf-cache", WithFailureThreshold(1))
	assert.Equal(t, "cpf-cache", b.Name())
	assert.Equal(t, "closed", b.State().String())

	b.RecordFailure()
	require.Equal(t, StateOpen, b.State())
	assert.Equal(t, "open", b.State().String())

	b.Reset()
	assert.Equal(t, StateClosed, b.State())
	assert.False(t, b.IsOpen())
}

func TestBreaker_ConcurrentUse(t *testing.T) {
	b := New("cpf-cache", WithFailureThreshold(1000))

	var wg sync.WaitGroup
	for range 10 {
		wg.Go(func() {
			for range 50 {
				b.RecordFailure()
			}
		})
	}
	wg.Wait()

	assert.False(t, b.IsOpen(), "500 failures stay below the threshold")
	b.RecordFailure()
	for range 499 {
		b.RecordFailure()
	}
	assert.True(t, b.IsOpen())
}
