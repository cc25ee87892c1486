// Package session keeps per-client evaluation state for serve mode.
// Each session owns its own set of units so concurrent reviewers never
// see each other's overrides.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/gridreg/trueup-cli/internal/unit"
)

// Session is one reviewer's working set: a fresh unit per SBU code.
type Session struct {
	ID         string
	CreatedAt  time.Time
	LastAccess time.Time

	units map[string]unit.Unit
}

// Unit returns the session's unit for an SBU code.
func (s *Session) Unit(code string) (unit.Unit, error) {
	u, ok := s.units[code]
	if !ok {
		return nil, eris.Errorf("session: no unit %q in session %s", code, s.ID)
	}
	return u, nil
}

// Units returns the session's units in evaluation order.
func (s *Session) Units() []unit.Unit {
	out := make([]unit.Unit, 0, len(s.units))
	for _, code := range unit.Codes() {
		if u, ok := s.units[code]; ok {
			out = append(out, u)
		}
	}
	return out
}

// Manager hands out and tracks sessions. Safe for concurrent use.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create builds a session with a fresh unit for every SBU.
func (m *Manager) Create() *Session {
	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		LastAccess: now,
		units:      make(map[string]unit.Unit, len(unit.Codes())),
	}
	for _, code := range unit.Codes() {
		u, _ := unit.ForCode(code)
		s.units[code] = u
	}

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	return s
}

// Get looks a session up and refreshes its last-access time.
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, eris.Errorf("session: unknown session %q", id)
	}
	s.LastAccess = time.Now()
	return s, nil
}

// Delete drops a session. Deleting an unknown ID is a no-op.
func (m *Manager) Delete(id string) {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
}

// Len reports the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops sessions idle longer than maxAge and reports how many
// were removed.
func (m *Manager) Sweep(maxAge time.Duration) int {
	cutoff := time.Now().Add(-maxAge)
	m.mu.Lock()
	defer m.mu.Unlock()
	removed := 0
	for id, s := range m.sessions {
		if s.LastAccess.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}
