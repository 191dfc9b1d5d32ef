package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/strustar/Road-Assistant/internal/domain"
)

// Store holds live conversations keyed by session id.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Conversation
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Conversation)}
}

// Create starts a new conversation and returns it.
func (s *Store) Create() *Conversation {
	conv := &Conversation{id: uuid.NewString()}

	s.mu.Lock()
	s.sessions[conv.id] = conv
	s.mu.Unlock()

	return conv
}

// Get returns the conversation for id, or domain.ErrSessionNotFound.
func (s *Store) Get(id string) (*Conversation, error) {
	s.mu.RLock()
	conv, ok := s.sessions[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return conv, nil
}

// Reset clears the history of the conversation for id.
func (s *Store) Reset(id string) error {
	conv, err := s.Get(id)
	if err != nil {
		return err
	}
	conv.Reset()
	return nil
}

// Delete removes the conversation for id. Deleting an unknown id is an error
// so callers can distinguish a stale handle from a successful teardown.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
