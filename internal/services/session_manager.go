package services

import "sync"

// DefaultSessionID is used when the client does not name a desk session.
const DefaultSessionID = "desk"

// SessionManager hands out one TicketStore per desk session. The draft was
// historically a process-wide singleton; scoping it here keeps the
// single-writer assumption intact when several cashier UIs share the
// backend.
type SessionManager struct {
	mu     sync.RWMutex
	stores map[string]*TicketStore
}

func NewSessionManager() *SessionManager {
	return &SessionManager{stores: map[string]*TicketStore{}}
}

// Store returns the session's ticket store, creating it on first use.
func (m *SessionManager) Store(sessionID string) *TicketStore {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	m.mu.RLock()
	st, ok := m.stores[sessionID]
	m.mu.RUnlock()
	if ok {
		return st
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if st, ok := m.stores[sessionID]; ok {
		return st
	}
	st = NewTicketStore(sessionID)
	m.stores[sessionID] = st
	return st
}
