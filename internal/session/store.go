package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store maps session IDs to their state. Sessions expire after being
// idle past the TTL; expired entries are dropped when touched, no
// background sweeper.
type Store struct {
	ttl time.Duration

	mu       sync.RWMutex
	sessions map[string]*State
}

func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Store{
		ttl:      ttl,
		sessions: make(map[string]*State),
	}
}

// Get returns the live state for id, or nil when unknown or expired.
func (st *Store) Get(id string) *State {
	st.mu.RLock()
	s := st.sessions[id]
	st.mu.RUnlock()
	if s == nil {
		return nil
	}

	now := time.Now()
	if now.Sub(s.seen()) > st.ttl {
		st.mu.Lock()
		delete(st.sessions, id)
		st.mu.Unlock()
		return nil
	}
	s.touch(now)
	return s
}

// Create starts a fresh session and returns its id.
func (st *Store) Create() (string, *State) {
	id := uuid.NewString()
	s := newState()

	st.mu.Lock()
	st.sessions[id] = s
	st.mu.Unlock()
	return id, s
}

// Len reports the number of live sessions (expired ones included
// until they are touched).
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
