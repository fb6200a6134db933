// Package engine implements the falling-block game state machine: spawning,
// movement, rotation with wall kicks, locking, line clears, scoring and level
// progression. Every operation runs synchronously, validates collisions before
// mutating anything and reports what happened as an Outcome. The engine has no
// I/O and no timers; a host drives it with Tick and player intents.
package engine

import (
	"time"

	"github.com/plus3/ootris/piece"
)

// Kicks lists the offsets tried, in order, when a rotation collides. Negative
// Y is up.
var Kicks = []piece.Point{
	{X: 0, Y: 0},
	{X: -1, Y: 0},
	{X: 1, Y: 0},
	{X: 0, Y: -1},
	{X: -1, Y: -1},
	{X: 1, Y: -1},
}

// Game is a single play session. A finished or abandoned game is discarded;
// restarting means creating a new Game.
type Game struct {
	rules     Rules
	generator piece.Generator
	board     *Board

	active    piece.Piece
	pos       piece.Point
	hasActive bool
	next      piece.Piece
	hasNext   bool

	state State
	score int
	lines int
	level int
}

// New creates a game in the NotStarted state. It panics if rules are invalid
// or generator is nil.
func New(rules Rules, generator piece.Generator) *Game {
	if err := rules.Validate(); err != nil {
		panic(err)
	}
	if generator == nil {
		panic("engine: nil piece generator")
	}

	return &Game{
		rules:     rules,
		generator: generator,
		board:     NewBoard(rules.Width, rules.Height),
		level:     1,
	}
}

// Start clears the board, resets the counters and deals the first active and
// next pieces. It is only legal before the game has started.
func (g *Game) Start() Outcome {
	if g.state != NotStarted {
		return Outcome{Kind: OutcomeIgnored}
	}

	g.board.Clear()
	g.score = 0
	g.lines = 0
	g.level = 1
	g.next = g.generator.Next()
	g.hasNext = true
	g.state = Running

	out := Outcome{Kind: OutcomeStarted}
	g.spawn(&out)
	return out
}

// Tick is the automatic one-row descent driven by the host's timer. When the
// piece cannot descend it locks in place with no distance bonus.
func (g *Game) Tick() Outcome {
	return g.Move(Down)
}

// Move translates the active piece by one cell. A blocked downward move locks
// the piece at its current position; blocked sideways moves change nothing.
func (g *Game) Move(dir Direction) Outcome {
	if g.state != Running {
		return Outcome{Kind: OutcomeIgnored}
	}

	dx, dy := dir.delta()
	if !g.board.Collides(g.active.Shape, g.pos.X+dx, g.pos.Y+dy) {
		g.pos.X += dx
		g.pos.Y += dy
		return Outcome{Kind: OutcomeMoved}
	}

	if dir != Down {
		return Outcome{Kind: OutcomeBlocked}
	}

	out := Outcome{Kind: OutcomeLocked}
	g.lock(&out)
	return out
}

// Rotate turns the active piece clockwise, trying each offset in Kicks and
// accepting the first that fits. If none fits the piece is left unchanged.
func (g *Game) Rotate() Outcome {
	if g.state != Running {
		return Outcome{Kind: OutcomeIgnored}
	}

	rotated := g.active.Shape.Rotate()
	for _, kick := range Kicks {
		x := g.pos.X + kick.X
		y := g.pos.Y + kick.Y
		if g.board.Collides(rotated, x, y) {
			continue
		}

		g.active.Shape = rotated
		g.pos = piece.Point{X: x, Y: y}
		return Outcome{Kind: OutcomeRotated, Kick: kick}
	}

	return Outcome{Kind: OutcomeRejected}
}

// HardDrop drops the active piece as far as it can fall, awards points per
// row travelled and locks it there.
func (g *Game) HardDrop() Outcome {
	if g.state != Running {
		return Outcome{Kind: OutcomeIgnored}
	}

	distance := g.dropDistance()
	g.pos.Y += distance

	bonus := distance * g.rules.HardDropPoints
	g.score += bonus

	out := Outcome{Kind: OutcomeLocked, DropDistance: distance, ScoreDelta: bonus}
	g.lock(&out)
	return out
}

// TogglePause switches between Running and Paused.
func (g *Game) TogglePause() Outcome {
	switch g.state {
	case Running:
		g.state = Paused
		return Outcome{Kind: OutcomePaused}
	case Paused:
		g.state = Running
		return Outcome{Kind: OutcomeResumed}
	}
	return Outcome{Kind: OutcomeIgnored}
}

func (g *Game) dropDistance() int {
	distance := 0
	for !g.board.Collides(g.active.Shape, g.pos.X, g.pos.Y+distance+1) {
		distance++
	}
	return distance
}

// lock commits the active piece, resolves line clears and spawns the next
// piece.
func (g *Game) lock(out *Outcome) {
	g.board.Place(g.active.Shape, g.pos.X, g.pos.Y, CellOf(g.active.Kind))
	g.hasActive = false

	rows := g.board.ClearFullRows()
	if n := len(rows); n > 0 {
		award := g.rules.LineScore(n, g.level)
		g.score += award
		g.lines += n

		level := g.rules.LevelFor(g.lines)
		out.LevelUp = level > g.level
		g.level = level

		out.ClearedRows = rows
		out.LinesCleared = n
		out.ScoreDelta += award
	}

	g.spawn(out)
}

// spawn promotes the next piece, deals a new one and ends the game if the
// spawn position is already occupied.
func (g *Game) spawn(out *Outcome) {
	active := g.next
	g.next = g.generator.Next()

	pos := g.spawnPosition(active.Shape)
	out.Spawned = active.Kind
	out.HasSpawned = true

	if g.board.Collides(active.Shape, pos.X, pos.Y) {
		g.state = GameOver
		out.GameOver = true
		return
	}

	g.active = active
	g.pos = pos
	g.hasActive = true
}

// spawnPosition centres the box horizontally with its top edge on row 0, so
// every template has an empty row above it to rotate into.
func (g *Game) spawnPosition(shape piece.Shape) piece.Point {
	return piece.Point{X: (g.rules.Width - shape.Size()) / 2}
}

func (g *Game) Rules() Rules { return g.rules }
func (g *Game) State() State { return g.state }
func (g *Game) Score() int   { return g.score }
func (g *Game) Lines() int   { return g.lines }
func (g *Game) Level() int   { return g.level }

// DropInterval is the automatic descent period for the current level.
func (g *Game) DropInterval() time.Duration {
	return g.rules.DropInterval(g.level)
}

// Board returns a copy of the locked cells.
func (g *Game) Board() *Board {
	return g.board.Clone()
}

// Active returns a copy of the active piece and its box position. ok is false
// before the game starts and after it ends.
func (g *Game) Active() (p piece.Piece, pos piece.Point, ok bool) {
	if !g.hasActive {
		return piece.Piece{}, piece.Point{}, false
	}
	return g.active.Clone(), g.pos, true
}

// Next returns a copy of the queued piece.
func (g *Game) Next() (piece.Piece, bool) {
	if !g.hasNext {
		return piece.Piece{}, false
	}
	return g.next.Clone(), true
}
