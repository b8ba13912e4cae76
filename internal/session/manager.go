package session

import "sync"

// Manager is the session table keyed by owner id. Dispatch is serialized for
// a single owner, but the table itself is guarded so a multi-owner
// deployment only needs per-owner serialization, not a rewrite.
type Manager struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

// NewManager creates an empty session table.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns the owner's session, creating an idle one on first use.
func (m *Manager) Get(ownerID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[ownerID]
	if !ok {
		s = &Session{}
		m.sessions[ownerID] = s
	}
	return s
}

// Reset discards the owner's session entirely, including sweep bookkeeping.
func (m *Manager) Reset(ownerID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, ownerID)
}
