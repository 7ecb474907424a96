package session

import (
	"context"
	"testing"
	"time"

	"culinary-be/internal/notify"
	"culinary-be/internal/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFactory(created *int) Factory {
	return func(id string) *Session {
		*created++
		rec := notify.NewRecorder(10)
		return &Session{
			Workflow:      workflow.New(workflow.Stores{}, rec),
			Notifications: rec,
		}
	}
}

func TestManager_GetCreatesOnce(t *testing.T) {
	created := 0
	m := NewManager(time.Minute, testFactory(&created))

	s1, isNew := m.Get("abc")
	require.True(t, isNew)
	assert.Equal(t, "abc", s1.ID)

	s2, isNew := m.Get("abc")
	assert.False(t, isNew)
	assert.Same(t, s1, s2)
	assert.Equal(t, 1, created)

	_, ok := m.Lookup("other")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())
}

func TestManager_SweepExpiresIdleSessions(t *testing.T) {
	created := 0
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	var counts []int
	m := NewManager(30*time.Minute, testFactory(&created), WithObserver(func(n int) { counts = append(counts, n) }))
	m.now = func() time.Time { return now }

	m.Get("old")
	now = now.Add(20 * time.Minute)
	m.Get("fresh")
	now = now.Add(15 * time.Minute)

	assert.Equal(t, 1, m.Sweep())
	_, ok := m.Lookup("old")
	assert.False(t, ok)
	_, ok = m.Lookup("fresh")
	assert.True(t, ok)
	assert.Equal(t, []int{1, 2, 1}, counts)
}

func TestManager_RunStopsWithContext(t *testing.T) {
	created := 0
	m := NewManager(time.Nanosecond, testFactory(&created))
	m.Get("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestNewID(t *testing.T) {
	assert.NotEqual(t, NewID(), NewID())
}
