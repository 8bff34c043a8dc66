package session

import "sync"

// Manager holds the live sessions, one per user. Handlers for the same
// user may race; last write wins, protected by the mutex.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*DrillSession
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*DrillSession)}
}

// Get returns the user's live session, or nil.
func (m *Manager) Get(userID string) *DrillSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

// Put installs the user's live session.
func (m *Manager) Put(userID string, s *DrillSession) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = s
}

// Remove drops the user's live session and returns it, or nil.
func (m *Manager) Remove(userID string) *DrillSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.sessions[userID]
	delete(m.sessions, userID)
	return s
}
