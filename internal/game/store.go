package game

import "sync"

// Store is the process-wide session registry: at most one live session per
// group. Absence is never an error; callers create on demand.
type Store struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[int64]*Session)}
}

func (st *Store) Get(groupID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[groupID]
	return s, ok
}

// GetOrCreate returns the session registered for the group, creating it with
// the given constructor when none exists. Concurrent callers for the same
// group always observe the same session object.
func (st *Store) GetOrCreate(groupID int64, create func() *Session) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[groupID]; ok {
		return s
	}
	s := create()
	st.sessions[groupID] = s
	return s
}

// Remove deletes the group's registration, but only if it still points at the
// given session. A stale timer or correlator holding a reference to an old
// session can therefore never evict its successor.
func (st *Store) Remove(groupID int64, s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if cur, ok := st.sessions[groupID]; ok && cur == s {
		delete(st.sessions, groupID)
	}
}

// Len reports the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}
