package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGetDelete(t *testing.T) {
	m := NewManager()

	s := m.Create()
	require.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	got, err := m.Get(s.ID)
	require.NoError(t, err)
	assert.Same(t, s, got)

	m.Delete(s.ID)
	assert.Zero(t, m.Len())
	_, err = m.Get(s.ID)
	assert.Error(t, err)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager()
	a := m.Create()
	b := m.Create()
	assert.NotEqual(t, a.ID, b.ID)

	ua, err := a.Unit("G")
	require.NoError(t, err)
	ub, err := b.Unit("G")
	require.NoError(t, err)
	assert.NotSame(t, ua, ub)
}

func TestSessionUnits(t *testing.T) {
	m := NewManager()
	s := m.Create()

	units := s.Units()
	require.Len(t, units, 3)
	assert.Equal(t, "G", units[0].Code())
	assert.Equal(t, "T", units[1].Code())
	assert.Equal(t, "D", units[2].Code())

	_, err := s.Unit("X")
	assert.Error(t, err)
}

func TestSweep(t *testing.T) {
	m := NewManager()
	stale := m.Create()
	stale.LastAccess = time.Now().Add(-2 * time.Hour)
	fresh := m.Create()

	removed := m.Sweep(time.Hour)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, m.Len())

	_, err := m.Get(fresh.ID)
	assert.NoError(t, err)
	_, err = m.Get(stale.ID)
	assert.Error(t, err)
}
