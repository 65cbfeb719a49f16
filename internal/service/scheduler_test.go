package service

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_FiresForLiveSession(t *testing.T) {
	s := NewScheduler()
	id := s.Begin()

	var fired atomic.Bool
	s.After(id, 10*time.Millisecond, func() { fired.Store(true) })

	require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}

func TestScheduler_EndedSessionNoOps(t *testing.T) {
	s := NewScheduler()
	id := s.Begin()

	var fired atomic.Bool
	s.After(id, 10*time.Millisecond, func() { fired.Store(true) })
	s.End(id)

	time.Sleep(50 * time.Millisecond)
	assert.False(t, fired.Load(), "timer for an ended session must not run")
}

func TestScheduler_Alive(t *testing.T) {
	s := NewScheduler()
	id := s.Begin()
	assert.True(t, s.Alive(id))

	s.End(id)
	assert.False(t, s.Alive(id))
	assert.False(t, s.Alive("never-registered"))
}

func TestScheduler_SessionsAreIndependent(t *testing.T) {
	s := NewScheduler()
	a := s.Begin()
	b := s.Begin()
	s.End(a)

	var fired atomic.Bool
	s.After(b, 10*time.Millisecond, func() { fired.Store(true) })

	require.Eventually(t, fired.Load, time.Second, 5*time.Millisecond)
}
