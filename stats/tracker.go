// Package stats accumulates session statistics from engine outcomes: how
// often each piece was dealt, how many rows each lock cleared and how the
// games ended.
package stats

import (
	"fmt"
	"strings"

	"github.com/kamstrup/intmap"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/piece"
)

// Tracker implements loop.Listener. It is not safe for concurrent use and is
// expected to run on the loop goroutine.
type Tracker struct {
	spawns *intmap.Map[piece.Kind, int]
	clears *intmap.Map[int, int]

	games     int
	gameOvers int
	locks     int
	dropCells int
	lines     int

	score     int
	bestScore int
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		spawns: intmap.New[piece.Kind, int](piece.NumKinds),
		clears: intmap.New[int, int](4),
	}
}

// OnOutcome folds one engine outcome into the counters.
func (t *Tracker) OnOutcome(out engine.Outcome) {
	switch out.Kind {
	case engine.OutcomeStarted:
		t.games++
		t.score = 0
	case engine.OutcomeLocked:
		t.locks++
		t.dropCells += out.DropDistance
		if out.LinesCleared > 0 {
			n, _ := t.clears.Get(out.LinesCleared)
			t.clears.Put(out.LinesCleared, n+1)
			t.lines += out.LinesCleared
		}
	}

	t.score += out.ScoreDelta
	if t.score > t.bestScore {
		t.bestScore = t.score
	}

	if out.HasSpawned {
		n, _ := t.spawns.Get(out.Spawned)
		t.spawns.Put(out.Spawned, n+1)
	}
	if out.GameOver {
		t.gameOvers++
	}
}

// Reset forgets everything recorded so far.
func (t *Tracker) Reset() {
	t.spawns.Clear()
	t.clears.Clear()
	*t = Tracker{spawns: t.spawns, clears: t.clears}
}

// Spawned returns how many pieces of kind were dealt.
func (t *Tracker) Spawned(kind piece.Kind) int {
	n, _ := t.spawns.Get(kind)
	return n
}

// Clears returns how many locks cleared exactly rows rows.
func (t *Tracker) Clears(rows int) int {
	n, _ := t.clears.Get(rows)
	return n
}

// Summary is a point-in-time copy of the tracker's counters.
type Summary struct {
	Games     int
	GameOvers int
	Locks     int
	Lines     int
	DropCells int
	Score     int
	BestScore int

	// Spawns is indexed by piece.Kind.
	Spawns [piece.NumKinds]int
	// Clears is indexed by rows cleared minus one.
	Clears [4]int
}

// Summary copies the current counters.
func (t *Tracker) Summary() Summary {
	s := Summary{
		Games:     t.games,
		GameOvers: t.gameOvers,
		Locks:     t.locks,
		Lines:     t.lines,
		DropCells: t.dropCells,
		Score:     t.score,
		BestScore: t.bestScore,
	}
	for _, kind := range piece.Kinds() {
		s.Spawns[kind] = t.Spawned(kind)
	}
	for rows := 1; rows <= len(s.Clears); rows++ {
		s.Clears[rows-1] = t.Clears(rows)
	}
	return s
}

// Pieces returns the total number of pieces dealt.
func (s Summary) Pieces() int {
	total := 0
	for _, n := range s.Spawns {
		total += n
	}
	return total
}

// Add returns the element-wise sum of two summaries. BestScore is the larger
// of the two.
func (s Summary) Add(other Summary) Summary {
	s.Games += other.Games
	s.GameOvers += other.GameOvers
	s.Locks += other.Locks
	s.Lines += other.Lines
	s.DropCells += other.DropCells
	s.Score += other.Score
	s.BestScore = max(s.BestScore, other.BestScore)
	for i := range s.Spawns {
		s.Spawns[i] += other.Spawns[i]
	}
	for i := range s.Clears {
		s.Clears[i] += other.Clears[i]
	}
	return s
}

func (s Summary) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "games=%d locks=%d lines=%d best=%d", s.Games, s.Locks, s.Lines, s.BestScore)
	sb.WriteString(" spawns=")
	for _, kind := range piece.Kinds() {
		fmt.Fprintf(&sb, "%s:%d ", kind, s.Spawns[kind])
	}
	fmt.Fprintf(&sb, "clears=%d/%d/%d/%d", s.Clears[0], s.Clears[1], s.Clears[2], s.Clears[3])
	return sb.String()
}
