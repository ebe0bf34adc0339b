package session

import "sync"

type entry struct {
	mu      sync.Mutex
	session *Session
}

// Store maps Telegram user IDs to sessions. Mutations for the same user
// are serialized through a per-entry lock; different users never contend
// beyond the brief map lookup.
type Store struct {
	mu      sync.Mutex
	entries map[int64]*entry
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[int64]*entry)}
}

func (st *Store) entryFor(userID int64) *entry {
	st.mu.Lock()
	defer st.mu.Unlock()
	e, ok := st.entries[userID]
	if !ok {
		e = &entry{session: &Session{}}
		st.entries[userID] = e
	}
	return e
}

// Update runs fn with exclusive access to the user's session, creating
// it lazily. The callback owns the session for its whole duration, so a
// handler can read, decide and mutate atomically with respect to other
// updates from the same user.
func (st *Store) Update(userID int64, fn func(s *Session) error) error {
	e := st.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.session)
}

// HasActiveFlow reports whether the user currently runs a multi-step flow.
func (st *Store) HasActiveFlow(userID int64) bool {
	st.mu.Lock()
	e, ok := st.entries[userID]
	st.mu.Unlock()
	if !ok {
		return false
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.session.Flow != nil
}

// Reset replaces the user's session with a fresh one. Used on /start.
func (st *Store) Reset(userID int64) {
	e := st.entryFor(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	*e.session = Session{}
}
