package engine

import "github.com/plus3/ootris/piece"

// State is the game's position in its lifecycle.
type State uint8

const (
	NotStarted State = iota
	Running
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not started"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game over"
	}
	return "unknown"
}

// Direction is a one-cell translation of the active piece.
type Direction uint8

const (
	Left Direction = iota
	Right
	Down
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Down:
		return "down"
	}
	return "unknown"
}

func (d Direction) delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 1
}

// OutcomeKind classifies the result of an engine operation.
type OutcomeKind uint8

const (
	// OutcomeIgnored means the operation was not legal in the current state.
	OutcomeIgnored OutcomeKind = iota
	OutcomeStarted
	OutcomeMoved
	// OutcomeBlocked is a sideways move into a wall or the stack.
	OutcomeBlocked
	OutcomeRotated
	// OutcomeRejected is a rotation with no collision-free kick.
	OutcomeRejected
	// OutcomeLocked means the active piece was committed to the board.
	OutcomeLocked
	OutcomePaused
	OutcomeResumed
)

var outcomeNames = [...]string{
	OutcomeIgnored:  "ignored",
	OutcomeStarted:  "started",
	OutcomeMoved:    "moved",
	OutcomeBlocked:  "blocked",
	OutcomeRotated:  "rotated",
	OutcomeRejected: "rejected",
	OutcomeLocked:   "locked",
	OutcomePaused:   "paused",
	OutcomeResumed:  "resumed",
}

func (k OutcomeKind) String() string {
	if int(k) < len(outcomeNames) {
		return outcomeNames[k]
	}
	return "unknown"
}

// Outcome reports what an operation did so the presentation layer can react
// with sound, animation or overlays.
type Outcome struct {
	Kind OutcomeKind

	// Kick is the offset applied by a successful rotation.
	Kick piece.Point
	// DropDistance is the number of rows a hard drop travelled.
	DropDistance int

	// ClearedRows holds the removed row indices (pre-shift) of a lock.
	ClearedRows  []int
	LinesCleared int
	ScoreDelta   int
	LevelUp      bool

	// Spawned is the kind that became active after a start or lock.
	Spawned    piece.Kind
	HasSpawned bool
	GameOver   bool
}

// Changed reports whether the operation mutated the game.
func (o Outcome) Changed() bool {
	switch o.Kind {
	case OutcomeIgnored, OutcomeBlocked, OutcomeRejected:
		return false
	}
	return true
}
