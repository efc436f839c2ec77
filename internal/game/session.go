package game

import (
	"sync"
	"time"
)

// question is the outstanding-question record. At most one exists per session
// at a time; resolved flips false->true exactly once per instance and is the
// only gate to scoring or advancement.
type question struct {
	promptMsgID int
	prompt      Prompt
	ownerID     int64 // turn-based: the player whose reply counts
	generation  uint64
	armedAt     time.Time
	resolved    bool
	timer       *time.Timer
}

// Session is the live game state for one group. All fields are guarded by mu;
// the engine never exposes the struct's internals outside this package.
type Session struct {
	GroupID int64
	Mode    Mode

	mu         sync.Mutex
	state      State
	players    []*Player
	round      int   // rounds resolved (free-for-all: shared counter)
	turnID     int64 // turn-based: player whose answer is accepted
	current    *question
	generation uint64
}

func newSession(groupID int64, mode Mode) *Session {
	return &Session{
		GroupID: groupID,
		Mode:    mode,
		state:   StateWaitingForOpponent,
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Round() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.round
}

// playerLocked returns the roster entry for the given id. Callers hold s.mu.
func (s *Session) playerLocked(id int64) *Player {
	for _, p := range s.players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// opponentLocked returns the other roster entry, if any. Callers hold s.mu.
func (s *Session) opponentLocked(id int64) *Player {
	for _, p := range s.players {
		if p.ID != id {
			return p
		}
	}
	return nil
}

// beginResolve is the single test-and-set gate for round resolution. It
// succeeds only when the session still holds the question of the given
// generation and nobody has begun resolving it. On success the question is
// marked resolved and its timer stopped; the caller owns the resolution.
func (s *Session) beginResolve(generation uint64) (*question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q := s.current
	if q == nil || q.generation != generation || q.resolved {
		return nil, false
	}
	q.resolved = true
	if q.timer != nil {
		q.timer.Stop()
	}
	return q, true
}

// cancelOutstandingLocked marks any live question resolved and stops its
// timer so that a later firing is a guaranteed no-op. Callers hold s.mu.
func (s *Session) cancelOutstandingLocked() {
	if q := s.current; q != nil {
		q.resolved = true
		if q.timer != nil {
			q.timer.Stop()
		}
		s.current = nil
	}
}

// snapshotPlayersLocked copies the roster for use outside the lock.
func (s *Session) snapshotPlayersLocked() []PlayerResult {
	out := make([]PlayerResult, 0, len(s.players))
	for _, p := range s.players {
		out = append(out, PlayerResult{ID: p.ID, Display: p.Display, Score: p.Score})
	}
	return out
}
