package session

import (
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. Used by tests and as a
// fallback when no session database is configured.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*Session)}
}

// Get retrieves a session by ID, or (nil, nil) if absent
func (s *MemoryStore) Get(id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}

	copied := *sess
	if sess.User != nil {
		user := *sess.User
		copied.User = &user
	}
	return &copied, nil
}

// Save inserts or replaces a session
func (s *MemoryStore) Save(sess *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *sess
	copied.UpdatedAt = time.Now()
	if sess.User != nil {
		user := *sess.User
		copied.User = &user
	}
	s.sessions[sess.ID] = &copied
	return nil
}

// Clear removes the stored credentials for a session
func (s *MemoryStore) Clear(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}
