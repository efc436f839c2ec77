package game

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/dreadedbot/group_games_bot/pkg/errors"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
	"github.com/dreadedbot/group_games_bot/pkg/utils"
)

// Engine runs every game session in the process. Command handlers call the
// session-mutating operations; the transport layer feeds inbound messages to
// HandleInbound. All user-facing game messages are sent by the engine itself;
// operations return an AppError whose Message is the reply for protocol
// violations (already joined, game full, not your turn, ...).
type Engine struct {
	store      *Store
	transport  Transport
	dispatcher *Dispatcher
	rules      map[Mode]Rules
	results    ResultSink

	rng func(n int) int
}

func NewEngine(transport Transport, rules map[Mode]Rules, results ResultSink) *Engine {
	return &Engine{
		store:      NewStore(),
		transport:  transport,
		dispatcher: NewDispatcher(),
		rules:      rules,
		results:    results,
		rng:        rand.Intn,
	}
}

// Store exposes the session registry, mainly for inspection.
func (e *Engine) Store() *Store {
	return e.store
}

// Join adds a player to the group's session, creating the session on first
// join. The second join starts the game and poses the first question.
func (e *Engine) Join(groupID int64, mode Mode, playerID int64, display string) error {
	rules, ok := e.rules[mode]
	if !ok {
		return errors.New(errors.ErrCodeValidation, "unknown game mode")
	}

	s := e.store.GetOrCreate(groupID, func() *Session {
		return newSession(groupID, mode)
	})

	s.mu.Lock()
	if s.Mode != mode || s.state == StateFinished {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeGameInProgress, "⚠️ Another game is already running in this group.")
	}
	if s.playerLocked(playerID) != nil {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeAlreadyJoined, "🕹️ You've already joined.")
	}
	if len(s.players) >= MaxPlayers {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeGameFull, "❌ 2 players already joined.")
	}

	s.players = append(s.players, &Player{ID: playerID, Display: display})
	if len(s.players) < MaxPlayers {
		s.mu.Unlock()
		e.send(groupID, fmt.Sprintf("✅ %s joined.\n⏳ Waiting for an opponent...", display))
		return nil
	}

	// Second join: the game starts immediately. Turn-based mode picks the
	// first turn uniformly at random.
	s.state = StateActive
	var announce string
	if s.Mode == ModeTurnBased {
		first := s.players[e.rng(len(s.players))]
		s.turnID = first.ID
		announce = fmt.Sprintf("✅ %s joined.\n\n🎮 Game started!\n🎯 First turn: %s", display, first.Display)
	} else {
		announce = fmt.Sprintf("✅ %s joined.\n\n🎮 Game starting!\n⚡ First correct reply gets the point!", display)
	}
	s.mu.Unlock()

	e.send(groupID, announce)
	e.poseQuestion(s, rules)
	return nil
}

// Leave removes a player. Leaving mid-game forfeits: the opponent wins and
// the session is purged. Leaving while still waiting for an opponent purges
// silently.
func (e *Engine) Leave(groupID int64, playerID int64) error {
	s, ok := e.store.Get(groupID)
	if !ok {
		return errors.New(errors.ErrCodeNotInGame, "🚫 You're not in this game.")
	}

	s.mu.Lock()
	leaver := s.playerLocked(playerID)
	if leaver == nil {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeNotInGame, "🚫 You're not in this game.")
	}
	opponent := s.opponentLocked(playerID)
	started := s.state == StateActive
	s.cancelOutstandingLocked()
	s.state = StateFinished
	players := s.snapshotPlayersLocked()
	s.mu.Unlock()

	// Timer and correlator must be gone before the session is: a stale fire
	// against a purged group would otherwise corrupt the next game.
	e.dispatcher.DetachAll(groupID)
	e.store.Remove(groupID, s)

	if started && opponent != nil {
		e.send(groupID, fmt.Sprintf("🚪 %s left the game.\n🏆 %s wins by default!", leaver.Display, opponent.Display))
		e.record(Result{
			GroupID:    groupID,
			Mode:       s.Mode,
			Players:    players,
			Winner:     opponent.Display,
			Forfeit:    true,
			FinishedAt: time.Now(),
		})
	} else {
		e.send(groupID, "🚪 You left the game.")
	}
	return nil
}

// Players returns the roster listing.
func (e *Engine) Players(groupID int64) (string, error) {
	s, ok := e.store.Get(groupID)
	if !ok {
		return "", errors.New(errors.ErrCodeNotStarted, "No one has joined.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.players) == 0 {
		return "", errors.New(errors.ErrCodeNotStarted, "No one has joined.")
	}
	var b strings.Builder
	b.WriteString("👥 Players:")
	for _, p := range s.players {
		fmt.Fprintf(&b, "\n- %s", p.Display)
	}
	return b.String(), nil
}

// Scores returns the current scoreboard.
func (e *Engine) Scores(groupID int64) (string, error) {
	s, ok := e.store.Get(groupID)
	if !ok {
		return "", errors.New(errors.ErrCodeNotStarted, "⏳ Game hasn't started yet.")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateWaitingForOpponent {
		return "", errors.New(errors.ErrCodeNotStarted, "⏳ Game hasn't started yet.")
	}
	limit := e.rules[s.Mode].RoundLimit
	var b strings.Builder
	b.WriteString("📊 Scores:")
	for _, p := range s.players {
		fmt.Fprintf(&b, "\n- %s: %d/%d", p.Display, p.Score, limit)
	}
	return b.String(), nil
}

// Start re-poses a question for an active game that has none outstanding,
// which recovers from a failed question send. With a question live or an
// opponent missing it only reports state.
func (e *Engine) Start(groupID int64, playerID int64) error {
	s, ok := e.store.Get(groupID)
	if !ok {
		return errors.New(errors.ErrCodeNotStarted, "⏳ No game in this group. Join first!")
	}

	s.mu.Lock()
	if s.playerLocked(playerID) == nil {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeNotInGame, "🚫 You're not in this game.")
	}
	if s.state == StateWaitingForOpponent {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeNotStarted, "⏳ Waiting for an opponent to join...")
	}
	if s.state != StateActive || s.current != nil {
		s.mu.Unlock()
		return errors.New(errors.ErrCodeGameInProgress, "⚠️ A question is already live. Reply to it!")
	}
	mode := s.Mode
	s.mu.Unlock()

	e.poseQuestion(s, e.rules[mode])
	return nil
}

// HandleInbound feeds one inbound chat message into the reply correlator.
// Returns true when a live question consumed the event.
func (e *Engine) HandleInbound(in Inbound) bool {
	return e.dispatcher.Dispatch(in)
}

// poseQuestion picks and sends the next prompt, then arms the correlator and
// the deadline timer against the sent message id. A new question is never
// armed while one is outstanding.
func (e *Engine) poseQuestion(s *Session, rules Rules) {
	s.mu.Lock()
	if s.state != StateActive || s.current != nil {
		s.mu.Unlock()
		return
	}
	var exclude []int
	var ownerDisplay string
	roundNo := s.round + 1
	if s.Mode == ModeTurnBased {
		owner := s.playerLocked(s.turnID)
		if owner == nil {
			s.mu.Unlock()
			return
		}
		exclude = append(exclude, owner.Asked...)
		ownerDisplay = owner.Display
		roundNo = owner.Rounds + 1
	}
	s.mu.Unlock()

	prompt, err := rules.Picker.Pick(exclude)
	if err != nil {
		logger.Error("Failed to pick question", "group_id", s.GroupID, "error", err)
		return
	}

	var text string
	if s.Mode == ModeTurnBased {
		text = fmt.Sprintf("🌍 Round %d/%d — %s's turn\n%s\n📝 Reply to this message with your answer!",
			roundNo, rules.RoundLimit, ownerDisplay, prompt.Text)
	} else {
		text = fmt.Sprintf("🔤 Round %d/%d\n%s\n📝 Reply to this message with your guess!",
			roundNo, rules.RoundLimit, prompt.Text)
	}

	msgID, err := e.transport.SendMessage(s.GroupID, text)
	if err != nil {
		// No question armed; the next join/start re-poses.
		logger.Error("Failed to send question", "group_id", s.GroupID, "error", err)
		return
	}

	s.mu.Lock()
	if s.state != StateActive || s.current != nil {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	q := &question{
		promptMsgID: msgID,
		prompt:      prompt,
		generation:  gen,
		armedAt:     time.Now(),
	}
	if s.Mode == ModeTurnBased {
		q.ownerID = s.turnID
		if owner := s.playerLocked(s.turnID); owner != nil {
			owner.Asked = append(owner.Asked, prompt.Index)
		}
	}
	s.current = q
	groupID := s.GroupID
	e.dispatcher.Attach(groupID, gen, func(in Inbound) {
		e.handleReply(s, gen, in)
	})
	q.timer = time.AfterFunc(rules.RoundTimeout, func() {
		e.handleTimeout(groupID, s, gen)
	})
	s.mu.Unlock()

	logger.Debug("Question armed", "group_id", groupID, "generation", gen, "answer", prompt.Answer)
}

// handleReply qualifies one inbound message against the outstanding question
// and, when it resolves the round, performs scoring and advancement. The
// resolved flag is tested and set under the session lock, so a racing timer
// firing is a guaranteed no-op.
func (e *Engine) handleReply(s *Session, gen uint64, in Inbound) {
	s.mu.Lock()
	q := s.current
	if q == nil || q.generation != gen || q.resolved {
		s.mu.Unlock()
		return
	}
	if in.ReplyToID != q.promptMsgID {
		s.mu.Unlock()
		return
	}
	p := s.playerLocked(in.SenderID)
	if p == nil {
		s.mu.Unlock()
		return
	}
	if s.Mode == ModeTurnBased && in.SenderID != q.ownerID {
		s.mu.Unlock()
		return
	}

	answer := utils.NormalizeAnswer(in.Text)
	correct := q.prompt.Accept(answer)

	// Free-for-all: a wrong guess gets feedback but leaves the question
	// live for either player until the deadline.
	if s.Mode == ModeFreeForAll && !correct {
		s.mu.Unlock()
		e.reply(s.GroupID, in.MessageID, fmt.Sprintf("❌ \"%s\" is incorrect. Try again.", answer))
		return
	}

	q.resolved = true
	if q.timer != nil {
		q.timer.Stop()
	}
	if correct {
		p.Score++
	}
	display := p.Display
	s.mu.Unlock()

	e.dispatcher.Detach(s.GroupID, gen)

	if correct {
		e.reply(s.GroupID, in.MessageID, fmt.Sprintf("✅ %s got it! \"%s\" is correct!", display, answer))
	} else {
		e.reply(s.GroupID, in.MessageID, fmt.Sprintf("❌ Wrong! The correct answer was %s.", q.prompt.Answer))
	}

	e.advance(s, q)
}

// handleTimeout is the deadline-timer callback. It is a no-op when the group
// no longer maps to this session or when an answer already won the race.
func (e *Engine) handleTimeout(groupID int64, s *Session, gen uint64) {
	if cur, ok := e.store.Get(groupID); !ok || cur != s {
		return
	}
	q, ok := s.beginResolve(gen)
	if !ok {
		return
	}
	e.dispatcher.Detach(groupID, gen)

	if s.Mode == ModeFreeForAll {
		e.send(groupID, fmt.Sprintf("⏱️ Time's up! An example answer was %s.", q.prompt.Answer))
	} else {
		e.send(groupID, fmt.Sprintf("⏱️ Time's up! The correct answer was %s.", q.prompt.Answer))
	}

	e.advance(s, q)
}

// advance is the single convergence point for both resolution paths: it
// retires the resolved question, bumps the round counters, and either ends
// the game or poses the next question.
func (e *Engine) advance(s *Session, q *question) {
	rules := e.rules[s.Mode]

	s.mu.Lock()
	if s.current != q || s.state != StateActive {
		s.mu.Unlock()
		return
	}
	s.current = nil
	s.round++

	var done bool
	var nextDisplay string
	if s.Mode == ModeTurnBased {
		if owner := s.playerLocked(q.ownerID); owner != nil {
			owner.Rounds++
		}
		done = true
		for _, p := range s.players {
			if p.Rounds < rules.RoundLimit {
				done = false
				break
			}
		}
		if !done {
			if opp := s.opponentLocked(q.ownerID); opp != nil {
				s.turnID = opp.ID
				nextDisplay = opp.Display
			}
		}
	} else {
		done = s.round >= rules.RoundLimit
	}

	if !done {
		s.mu.Unlock()
		if nextDisplay != "" {
			e.send(s.GroupID, fmt.Sprintf("🎯 %s's turn!", nextDisplay))
		}
		e.poseQuestion(s, rules)
		return
	}

	s.state = StateFinished
	players := s.snapshotPlayersLocked()
	s.mu.Unlock()

	e.finish(s, players, rules.RoundLimit)
}

// finish announces the outcome and purges the session. No session survives a
// declared finish.
func (e *Engine) finish(s *Session, players []PlayerResult, limit int) {
	winner := ""
	if len(players) == MaxPlayers {
		switch {
		case players[0].Score > players[1].Score:
			winner = players[0].Display
		case players[1].Score > players[0].Score:
			winner = players[1].Display
		}
	}

	var b strings.Builder
	b.WriteString("🏁 Game Over!\n\nScores:\n")
	for _, p := range players {
		fmt.Fprintf(&b, "- %s: %d/%d\n", p.Display, p.Score, limit)
	}
	if winner == "" {
		b.WriteString("\n🤝 It's a tie!")
	} else {
		fmt.Fprintf(&b, "\n🏆 Winner: %s 🎉", winner)
	}

	e.dispatcher.DetachAll(s.GroupID)
	e.store.Remove(s.GroupID, s)
	e.send(s.GroupID, b.String())
	e.record(Result{
		GroupID:    s.GroupID,
		Mode:       s.Mode,
		Players:    players,
		Winner:     winner,
		FinishedAt: time.Now(),
	})
}

func (e *Engine) record(res Result) {
	if e.results != nil {
		e.results.RecordResult(res)
	}
}

func (e *Engine) send(chatID int64, text string) {
	if _, err := e.transport.SendMessage(chatID, text); err != nil {
		logger.Error("Failed to send message", "chat_id", chatID, "error", err)
	}
}

func (e *Engine) reply(chatID int64, replyToID int, text string) {
	if _, err := e.transport.SendReply(chatID, replyToID, text); err != nil {
		logger.Error("Failed to send reply", "chat_id", chatID, "error", err)
	}
}
