package game

import (
	"time"
)

// Mode selects who may answer an outstanding question.
type Mode string

const (
	// ModeFreeForAll lets any joined player answer; first correct reply wins the round.
	ModeFreeForAll Mode = "free_for_all"
	// ModeTurnBased only accepts replies from the player whose turn it is.
	ModeTurnBased Mode = "turn_based"
)

// Session lifecycle states. A group with no session at all is the implicit
// "empty" state; creation happens on the first join.
type State string

const (
	StateWaitingForOpponent State = "waiting_for_opponent"
	StateActive             State = "active"
	StateFinished           State = "finished"
)

// MaxPlayers is the roster cap for every game mode.
const MaxPlayers = 2

// Player is one roster entry. Order in the session slice is join order.
type Player struct {
	ID      int64
	Display string
	Score   int

	// Turn-based bookkeeping: pool indices already posed to this player and
	// the number of rounds resolved on their turn.
	Asked  []int
	Rounds int
}

// Inbound is the transport-neutral shape of a received chat message.
type Inbound struct {
	ChatID    int64
	MessageID int
	SenderID  int64
	Display   string
	ReplyToID int
	Text      string
}

// Transport is the messaging capability the engine depends on. SendMessage
// returns the sent message's identifier, which the engine records for reply
// correlation.
type Transport interface {
	SendMessage(chatID int64, text string) (int, error)
	SendReply(chatID int64, replyToID int, text string) (int, error)
}

// Prompt is one picked question: the text to pose, the acceptance predicate
// over normalized answer text, and the value revealed on timeout.
type Prompt struct {
	Index  int
	Text   string
	Answer string
	Accept func(normalized string) bool
}

// Picker selects the next prompt, excluding pool indices already asked.
type Picker interface {
	Pick(exclude []int) (Prompt, error)
}

// Rules parameterize one game mode. RoundLimit is shared in free-for-all and
// per player in turn-based mode.
type Rules struct {
	Picker       Picker
	RoundLimit   int
	RoundTimeout time.Duration
}

// PlayerResult is one line of a final scoreboard.
type PlayerResult struct {
	ID      int64
	Display string
	Score   int
}

// Result describes a finished game.
type Result struct {
	GroupID    int64
	Mode       Mode
	Players    []PlayerResult
	Winner     string // display of the winner, empty on a tie
	Forfeit    bool
	FinishedAt time.Time
}

// ResultSink receives finished games, e.g. for persistence. Implementations
// must not block.
type ResultSink interface {
	RecordResult(Result)
}
