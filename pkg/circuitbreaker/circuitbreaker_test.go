package circuitbreaker

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errUpstream = errors.New("upstream down")

func TestOpensAfterMaxFailures(t *testing.T) {
	cb := New(Settings{Name: "maps", MaxFailures: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		err := cb.Execute(func() error { return errUpstream })
		require.ErrorIs(t, err, errUpstream)
	}
	assert.Equal(t, StateOpen, cb.State())

	err := cb.Execute(func() error { return nil })
	assert.ErrorIs(t, err, ErrOpen)
}

func TestHalfOpenProbeCloses(t *testing.T) {
	cb := New(Settings{Name: "maps", MaxFailures: 1, Cooldown: time.Nanosecond})

	require.Error(t, cb.Execute(func() error { return errUpstream }))
	time.Sleep(time.Millisecond)

	assert.NoError(t, cb.Execute(func() error { return nil }))
	assert.Equal(t, StateClosed, cb.State())
}

func TestHalfOpenProbeFailureReopens(t *testing.T) {
	cb := New(Settings{Name: "maps", MaxFailures: 1, Cooldown: time.Nanosecond})

	require.Error(t, cb.Execute(func() error { return errUpstream }))
	time.Sleep(time.Millisecond)

	require.Error(t, cb.Execute(func() error { return errUpstream }))
	assert.Equal(t, StateOpen, cb.State())
}

func TestSuccessResetsFailureCount(t *testing.T) {
	cb := New(Settings{Name: "maps", MaxFailures: 2, Cooldown: time.Minute})

	require.Error(t, cb.Execute(func() error { return errUpstream }))
	require.NoError(t, cb.Execute(func() error { return nil }))
	require.Error(t, cb.Execute(func() error { return errUpstream }))

	assert.Equal(t, StateClosed, cb.State())
}
