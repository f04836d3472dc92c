package session

import (
	"sync"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity bounds the session table when no explicit cap is configured.
const DefaultCapacity = 256

// Store is a bounded collection of sessions. Abandoned sessions fall out in
// LRU order instead of accumulating for the process lifetime.
type Store struct {
	mu       sync.Mutex
	sessions *lru.Cache[string, *Session]
}

// NewStore creates a store holding at most capacity sessions. A non-positive
// capacity falls back to DefaultCapacity.
func NewStore(capacity int) (*Store, error) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, *Session](capacity)
	if err != nil {
		return nil, err
	}
	return &Store{sessions: cache}, nil
}

// Ensure returns the session for an ID, creating it on first use. An empty
// ID mints a fresh one, for callers without a transport-assigned identity.
func (st *Store) Ensure(id string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()

	if id == "" {
		id = uuid.NewString()
	}
	if sess, ok := st.sessions.Get(id); ok {
		return sess
	}
	sess := newSession(id)
	st.sessions.Add(id, sess)
	return sess
}

// Get returns an existing session without creating one.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions.Get(id)
}

// Drop removes a session, releasing its instance state.
func (st *Store) Drop(id string) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions.Remove(id)
}

// Len reports how many sessions are currently held.
func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.sessions.Len()
}
