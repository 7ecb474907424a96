// Package session keeps one inventory workflow per client session and evicts
// sessions that have been idle longer than the configured TTL.
package session

import (
	"context"
	"sync"
	"time"

	"culinary-be/internal/logger"
	"culinary-be/internal/notify"
	"culinary-be/internal/workflow"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Session struct {
	ID            string
	Workflow      *workflow.Workflow
	Notifications *notify.Recorder

	lastSeen time.Time
}

// Factory builds the state for a new session id.
type Factory func(id string) *Session

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	ttl      time.Duration
	factory  Factory
	now      func() time.Time
	onChange func(n int)
}

type Option func(*Manager)

// WithObserver is called with the session count after every change.
func WithObserver(fn func(n int)) Option {
	return func(m *Manager) { m.onChange = fn }
}

func NewManager(ttl time.Duration, factory Factory, opts ...Option) *Manager {
	m := &Manager{
		sessions: make(map[string]*Session),
		ttl:      ttl,
		factory:  factory,
		now:      time.Now,
		onChange: func(int) {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.New().String()
}

// Get returns the session for id, creating it when unknown. The boolean
// reports whether it was created.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s, ok := m.sessions[id]; ok {
		s.lastSeen = m.now()
		return s, false
	}

	s := m.factory(id)
	s.ID = id
	s.lastSeen = m.now()
	m.sessions[id] = s
	m.onChange(len(m.sessions))
	return s, true
}

// Lookup returns an existing session without creating one.
func (m *Manager) Lookup(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	return s, ok
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes sessions idle for longer than the TTL and returns how many
// were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, s := range m.sessions {
		if m.now().Sub(s.lastSeen) > m.ttl {
			delete(m.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		m.onChange(len(m.sessions))
	}
	return removed
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				logger.L().Info("expired sessions removed",
					zap.String("component", "session"),
					zap.Int("removed", n),
				)
			}
		}
	}
}
