package session

import (
	"errors"
	"log"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrNotFound is returned for unknown or already-evicted session IDs.
var ErrNotFound = errors.New("session: not found")

// Store keeps live sessions in an LRU so abandoned conversations release
// their checkout directories without an explicit logout.
type Store struct {
	sessions *lru.Cache[string, *Session]
}

// NewStore creates a store holding at most max sessions. Evicted sessions
// have their checkouts removed from disk.
func NewStore(max int) (*Store, error) {
	cache, err := lru.NewWithEvict[string, *Session](max, func(id string, s *Session) {
		log.Printf("session: evicting %s", id)
		s.Close()
	})
	if err != nil {
		return nil, err
	}
	return &Store{sessions: cache}, nil
}

// Create registers a fresh session and returns it.
func (st *Store) Create() *Session {
	s := newSession(uuid.NewString())
	st.sessions.Add(s.ID, s)
	return s
}

// Get looks up a session by ID, marking it recently used.
func (st *Store) Get(id string) (*Session, error) {
	s, ok := st.sessions.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Remove drops a session, cleaning its checkout via the eviction hook.
func (st *Store) Remove(id string) {
	st.sessions.Remove(id)
}

// Len reports how many sessions are live.
func (st *Store) Len() int {
	return st.sessions.Len()
}

// Close evicts every session, releasing all checkouts. Used on shutdown.
func (st *Store) Close() {
	st.sessions.Purge()
}
