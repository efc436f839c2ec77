package game

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	apperrors "github.com/dreadedbot/group_games_bot/pkg/errors"
	"github.com/dreadedbot/group_games_bot/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

type sentMsg struct {
	chatID    int64
	replyToID int
	text      string
}

// fakeTransport records every outgoing message and assigns sequential ids the
// way the real client would.
type fakeTransport struct {
	mu       sync.Mutex
	nextID   int
	sent     []sentMsg
	failWith string // sends whose text contains this fail once
}

func (f *fakeTransport) SendMessage(chatID int64, text string) (int, error) {
	return f.record(chatID, 0, text)
}

func (f *fakeTransport) SendReply(chatID int64, replyToID int, text string) (int, error) {
	return f.record(chatID, replyToID, text)
}

func (f *fakeTransport) record(chatID int64, replyToID int, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != "" && strings.Contains(text, f.failWith) {
		f.failWith = ""
		return 0, fmt.Errorf("send failed")
	}
	f.nextID++
	f.sent = append(f.sent, sentMsg{chatID: chatID, replyToID: replyToID, text: text})
	return f.nextID, nil
}

// lastMatching returns the id and text of the most recent message containing
// substr, or 0 when none was sent.
func (f *fakeTransport) lastMatching(substr string) (int, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if strings.Contains(f.sent[i].text, substr) {
			return i + 1, f.sent[i].text
		}
	}
	return 0, ""
}

func (f *fakeTransport) countMatching(substr string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.sent {
		if strings.Contains(m.text, substr) {
			n++
		}
	}
	return n
}

type fakeSink struct {
	mu      sync.Mutex
	results []Result
}

func (f *fakeSink) RecordResult(res Result) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, res)
}

func (f *fakeSink) all() []Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Result(nil), f.results...)
}

// fixedPicker always accepts "blue" and nothing else.
type fixedPicker struct{}

func (fixedPicker) Pick(exclude []int) (Prompt, error) {
	return Prompt{
		Index:  len(exclude),
		Text:   "What color is the sky?",
		Answer: "blue",
		Accept: func(ans string) bool { return ans == "blue" },
	}, nil
}

func newTestEngine(tr Transport, sink ResultSink, wordLimit, capitalLimit int) *Engine {
	e := NewEngine(tr, map[Mode]Rules{
		ModeFreeForAll: {Picker: fixedPicker{}, RoundLimit: wordLimit, RoundTimeout: time.Minute},
		ModeTurnBased:  {Picker: fixedPicker{}, RoundLimit: capitalLimit, RoundTimeout: time.Minute},
	}, sink)
	e.rng = func(n int) int { return 0 } // first joiner always gets first turn
	return e
}

func answer(e *Engine, groupID int64, promptID int, senderID int64, display, text string) bool {
	return e.HandleInbound(Inbound{
		ChatID:    groupID,
		MessageID: 1000,
		SenderID:  senderID,
		Display:   display,
		ReplyToID: promptID,
		Text:      text,
	})
}

func errCode(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		t.Fatalf("error = %v, want *AppError", err)
	}
	return appErr.Code
}

func TestJoinFlow(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(100)

	if err := e.Join(group, ModeFreeForAll, 1, "alice"); err != nil {
		t.Fatalf("first join: %v", err)
	}
	if id, _ := tr.lastMatching("Waiting for an opponent"); id == 0 {
		t.Error("first join did not announce waiting state")
	}
	s, ok := e.Store().Get(group)
	if !ok || s.State() != StateWaitingForOpponent {
		t.Fatalf("session state = %v, want waiting", s.State())
	}

	if err := e.Join(group, ModeFreeForAll, 1, "alice"); errCode(t, err) != apperrors.ErrCodeAlreadyJoined {
		t.Errorf("duplicate join error = %v", err)
	}

	if err := e.Join(group, ModeFreeForAll, 2, "bob"); err != nil {
		t.Fatalf("second join: %v", err)
	}
	if s.State() != StateActive {
		t.Errorf("state after second join = %v, want active", s.State())
	}
	if id, _ := tr.lastMatching("Round 1/10"); id == 0 {
		t.Error("second join did not pose the first question")
	}

	if err := e.Join(group, ModeFreeForAll, 3, "carol"); errCode(t, err) != apperrors.ErrCodeGameFull {
		t.Errorf("third join error = %v", err)
	}
}

func TestJoinModeConflict(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(101)

	if err := e.Join(group, ModeFreeForAll, 1, "alice"); err != nil {
		t.Fatalf("join: %v", err)
	}
	if err := e.Join(group, ModeTurnBased, 2, "bob"); errCode(t, err) != apperrors.ErrCodeGameInProgress {
		t.Errorf("cross-mode join error = %v", err)
	}
}

func TestCorrectReplyScoresAndAdvances(t *testing.T) {
	tr := &fakeTransport{}
	sink := &fakeSink{}
	e := newTestEngine(tr, sink, 2, 5)
	const group = int64(102)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	s, _ := e.Store().Get(group)

	promptID, _ := tr.lastMatching("Round 1/2")
	if !answer(e, group, promptID, 1, "alice", "  Blue ") {
		t.Fatal("reply to live question was not consumed")
	}
	if id, _ := tr.lastMatching("alice got it!"); id == 0 {
		t.Error("correct answer was not acknowledged")
	}
	if s.Round() != 1 {
		t.Errorf("round = %d, want 1", s.Round())
	}

	promptID, _ = tr.lastMatching("Round 2/2")
	if promptID == 0 {
		t.Fatal("next question was not posed")
	}
	answer(e, group, promptID, 1, "alice", "blue")

	if id, _ := tr.lastMatching("Game Over"); id == 0 {
		t.Error("final round did not finish the game")
	}
	if _, ok := e.Store().Get(group); ok {
		t.Error("finished session was not purged")
	}
	results := sink.all()
	if len(results) != 1 || results[0].Winner != "alice" || results[0].Forfeit {
		t.Errorf("recorded result = %+v", results)
	}

	// The purged group accepts a fresh game immediately.
	if err := e.Join(group, ModeTurnBased, 3, "carol"); err != nil {
		t.Errorf("join after finish: %v", err)
	}
}

func TestWrongGuessLeavesQuestionLive(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(103)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	s, _ := e.Store().Get(group)

	promptID, _ := tr.lastMatching("Round 1/10")
	answer(e, group, promptID, 1, "alice", "green")
	if id, _ := tr.lastMatching("is incorrect. Try again."); id == 0 {
		t.Error("wrong guess got no feedback")
	}
	if s.Round() != 0 {
		t.Errorf("wrong guess advanced the round: round = %d", s.Round())
	}

	// The opponent can still win the same round.
	answer(e, group, promptID, 2, "bob", "blue")
	if id, _ := tr.lastMatching("bob got it!"); id == 0 {
		t.Error("opponent's correct answer after a wrong guess was not scored")
	}
	if s.Round() != 1 {
		t.Errorf("round = %d, want 1", s.Round())
	}
}

func TestReplyCorrelation(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(104)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	s, _ := e.Store().Get(group)
	promptID, _ := tr.lastMatching("Round 1/10")

	// Replies to other messages and messages from outsiders never resolve.
	answer(e, group, promptID-1, 1, "alice", "blue")
	answer(e, group, promptID, 99, "eve", "blue")
	if s.Round() != 0 {
		t.Errorf("non-qualifying reply advanced the round")
	}
	if n := tr.countMatching("got it"); n != 0 {
		t.Errorf("non-qualifying reply was scored %d times", n)
	}
}

func TestTurnEnforcement(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(105)

	e.Join(group, ModeTurnBased, 1, "alice")
	e.Join(group, ModeTurnBased, 2, "bob")
	if id, _ := tr.lastMatching("First turn: alice"); id == 0 {
		t.Fatal("first turn was not announced")
	}
	s, _ := e.Store().Get(group)
	promptID, _ := tr.lastMatching("alice's turn")

	// A correct answer from the player not on turn is silently ignored.
	answer(e, group, promptID, 2, "bob", "blue")
	if s.Round() != 0 {
		t.Error("off-turn answer resolved the round")
	}
	if n := tr.countMatching("got it"); n != 0 {
		t.Error("off-turn answer was scored")
	}

	answer(e, group, promptID, 1, "alice", "blue")
	if id, _ := tr.lastMatching("alice got it!"); id == 0 {
		t.Error("on-turn answer was not scored")
	}
	if id, _ := tr.lastMatching("bob's turn!"); id == 0 {
		t.Error("turn did not rotate to the opponent")
	}
}

func TestTurnBasedWrongAnswerResolvesRound(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(106)

	e.Join(group, ModeTurnBased, 1, "alice")
	e.Join(group, ModeTurnBased, 2, "bob")
	s, _ := e.Store().Get(group)
	promptID, _ := tr.lastMatching("alice's turn")

	answer(e, group, promptID, 1, "alice", "red")
	if id, _ := tr.lastMatching("Wrong! The correct answer was blue."); id == 0 {
		t.Error("wrong turn-based answer did not reveal the correct one")
	}
	if s.Round() != 1 {
		t.Errorf("round = %d, want 1 (wrong answer still consumes the round)", s.Round())
	}

	s.mu.Lock()
	alice := s.playerLocked(1)
	score, rounds := alice.Score, alice.Rounds
	s.mu.Unlock()
	if score != 0 || rounds != 1 {
		t.Errorf("alice score/rounds = %d/%d, want 0/1", score, rounds)
	}
}

func TestTimeoutResolvesRound(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(107)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	s, _ := e.Store().Get(group)

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()
	e.handleTimeout(group, s, gen)

	if id, _ := tr.lastMatching("Time's up! An example answer was blue."); id == 0 {
		t.Error("timeout did not reveal an answer")
	}
	if s.Round() != 1 {
		t.Errorf("round = %d, want 1", s.Round())
	}
	if id, _ := tr.lastMatching("Round 2/10"); id == 0 {
		t.Error("timeout did not pose the next question")
	}
}

func TestTimeoutAfterAnswerIsNoOp(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(108)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	s, _ := e.Store().Get(group)
	promptID, _ := tr.lastMatching("Round 1/10")

	s.mu.Lock()
	gen := s.generation
	s.mu.Unlock()

	answer(e, group, promptID, 1, "alice", "blue")
	round := s.Round()

	// The deadline firing after the answer won must change nothing.
	e.handleTimeout(group, s, gen)
	if s.Round() != round {
		t.Errorf("stale timeout advanced the round: %d -> %d", round, s.Round())
	}
	if n := tr.countMatching("Time's up"); n != 0 {
		t.Errorf("stale timeout announced %d times", n)
	}
}

func TestStaleTimerAgainstNewSession(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(109)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")
	old, _ := e.Store().Get(group)
	old.mu.Lock()
	gen := old.generation
	old.mu.Unlock()

	e.Leave(group, 1)
	e.Join(group, ModeTurnBased, 3, "carol")

	// The old session's timer must not touch the fresh session.
	e.handleTimeout(group, old, gen)
	if n := tr.countMatching("Time's up"); n != 0 {
		t.Error("stale timer fired against a purged session")
	}
	fresh, ok := e.Store().Get(group)
	if !ok || fresh == old || fresh.State() != StateWaitingForOpponent {
		t.Errorf("fresh session disturbed: ok=%v state=%v", ok, fresh.State())
	}
}

func TestLeaveForfeit(t *testing.T) {
	tr := &fakeTransport{}
	sink := &fakeSink{}
	e := newTestEngine(tr, sink, 10, 5)
	const group = int64(110)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")

	if err := e.Leave(group, 1); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if id, _ := tr.lastMatching("bob wins by default!"); id == 0 {
		t.Error("forfeit was not announced")
	}
	if _, ok := e.Store().Get(group); ok {
		t.Error("forfeited session was not purged")
	}
	results := sink.all()
	if len(results) != 1 || !results[0].Forfeit || results[0].Winner != "bob" {
		t.Errorf("recorded result = %+v", results)
	}
}

func TestLeaveBeforeOpponent(t *testing.T) {
	tr := &fakeTransport{}
	sink := &fakeSink{}
	e := newTestEngine(tr, sink, 10, 5)
	const group = int64(111)

	e.Join(group, ModeFreeForAll, 1, "alice")
	if err := e.Leave(group, 1); err != nil {
		t.Fatalf("leave: %v", err)
	}
	if id, _ := tr.lastMatching("You left the game."); id == 0 {
		t.Error("solo leave was not confirmed")
	}
	if len(sink.all()) != 0 {
		t.Error("solo leave recorded a result")
	}
	if _, ok := e.Store().Get(group); ok {
		t.Error("session was not purged")
	}
}

func TestLeaveNotInGame(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(112)

	if err := e.Leave(group, 1); errCode(t, err) != apperrors.ErrCodeNotInGame {
		t.Errorf("leave with no session error = %v", err)
	}

	e.Join(group, ModeFreeForAll, 1, "alice")
	if err := e.Leave(group, 2); errCode(t, err) != apperrors.ErrCodeNotInGame {
		t.Errorf("leave by non-player error = %v", err)
	}
}

func TestPlayersAndScores(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(113)

	if _, err := e.Players(group); errCode(t, err) != apperrors.ErrCodeNotStarted {
		t.Errorf("players with no session error = %v", err)
	}

	e.Join(group, ModeFreeForAll, 1, "alice")
	if _, err := e.Scores(group); errCode(t, err) != apperrors.ErrCodeNotStarted {
		t.Errorf("scores before start error = %v", err)
	}

	e.Join(group, ModeFreeForAll, 2, "bob")
	roster, err := e.Players(group)
	if err != nil {
		t.Fatalf("players: %v", err)
	}
	if !strings.Contains(roster, "alice") || !strings.Contains(roster, "bob") {
		t.Errorf("roster = %q", roster)
	}
	board, err := e.Scores(group)
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if !strings.Contains(board, "alice: 0/10") {
		t.Errorf("scoreboard = %q", board)
	}
}

func TestStartRecoversFailedQuestionSend(t *testing.T) {
	tr := &fakeTransport{failWith: "Round 1/5"}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(114)

	e.Join(group, ModeTurnBased, 1, "alice")
	e.Join(group, ModeTurnBased, 2, "bob")
	s, _ := e.Store().Get(group)

	s.mu.Lock()
	armed := s.current != nil
	s.mu.Unlock()
	if armed {
		t.Fatal("failed send still armed a question")
	}

	if err := e.Start(group, 1); err != nil {
		t.Fatalf("start: %v", err)
	}
	promptID, _ := tr.lastMatching("Round 1/5")
	if promptID == 0 {
		t.Fatal("start did not re-pose the question")
	}

	// With a question live, start only reports.
	if err := e.Start(group, 1); errCode(t, err) != apperrors.ErrCodeGameInProgress {
		t.Errorf("start with live question error = %v", err)
	}
}

func TestStartGuards(t *testing.T) {
	tr := &fakeTransport{}
	e := newTestEngine(tr, nil, 10, 5)
	const group = int64(115)

	if err := e.Start(group, 1); errCode(t, err) != apperrors.ErrCodeNotStarted {
		t.Errorf("start with no session error = %v", err)
	}

	e.Join(group, ModeTurnBased, 1, "alice")
	if err := e.Start(group, 1); errCode(t, err) != apperrors.ErrCodeNotStarted {
		t.Errorf("start while waiting error = %v", err)
	}
	if err := e.Start(group, 2); errCode(t, err) != apperrors.ErrCodeNotInGame {
		t.Errorf("start by outsider error = %v", err)
	}
}

func TestTurnBasedFullGame(t *testing.T) {
	tr := &fakeTransport{}
	sink := &fakeSink{}
	e := newTestEngine(tr, sink, 10, 2)
	const group = int64(116)

	e.Join(group, ModeTurnBased, 1, "alice")
	e.Join(group, ModeTurnBased, 2, "bob")

	// Alternating turns, 2 rounds each. Alice answers correctly, bob never.
	answers := []struct {
		sender int64
		text   string
	}{
		{1, "blue"}, {2, "nope"}, {1, "blue"}, {2, "nope"},
	}
	for _, a := range answers {
		promptID, text := tr.lastMatching("Reply to this message")
		if promptID == 0 {
			t.Fatalf("no live question before answer from %d", a.sender)
		}
		if !answer(e, group, promptID, a.sender, "p", a.text) {
			t.Fatalf("answer to %q was not consumed", text)
		}
	}

	if id, _ := tr.lastMatching("Winner: alice"); id == 0 {
		t.Error("winner was not announced")
	}
	results := sink.all()
	if len(results) != 1 || results[0].Winner != "alice" || results[0].Forfeit {
		t.Errorf("recorded result = %+v", results)
	}
	if _, ok := e.Store().Get(group); ok {
		t.Error("finished session was not purged")
	}
}

func TestFreeForAllTie(t *testing.T) {
	tr := &fakeTransport{}
	sink := &fakeSink{}
	e := newTestEngine(tr, sink, 2, 5)
	const group = int64(117)

	e.Join(group, ModeFreeForAll, 1, "alice")
	e.Join(group, ModeFreeForAll, 2, "bob")

	promptID, _ := tr.lastMatching("Round 1/2")
	answer(e, group, promptID, 1, "alice", "blue")
	promptID, _ = tr.lastMatching("Round 2/2")
	answer(e, group, promptID, 2, "bob", "blue")

	if id, _ := tr.lastMatching("It's a tie!"); id == 0 {
		t.Error("tie was not announced")
	}
	results := sink.all()
	if len(results) != 1 || results[0].Winner != "" {
		t.Errorf("recorded result = %+v", results)
	}
}
