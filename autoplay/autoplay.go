// Package autoplay is a one-piece lookahead bot. For every reachable
// rotation and column it simulates the same rotate, shift and hard-drop
// sequence the engine would run and scores the resulting board.
package autoplay

import (
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/piece"
)

// Weights scales each board feature in the placement score. Higher scores
// are better.
type Weights struct {
	AggregateHeight float64
	Lines           float64
	Holes           float64
	Bumpiness       float64
}

// DefaultWeights plays long games on a 10x20 board.
var DefaultWeights = Weights{
	AggregateHeight: -0.510066,
	Lines:           0.760666,
	Holes:           -0.35663,
	Bumpiness:       -0.184483,
}

// Placement is a candidate end position for the active piece.
type Placement struct {
	Rotations int
	Shift     int
	X, Y      int
	Score     float64
}

// Intents returns the intents that move the active piece into the
// placement and lock it.
func (p Placement) Intents() []loop.Intent {
	intents := make([]loop.Intent, 0, p.Rotations+abs(p.Shift)+1)
	for range p.Rotations {
		intents = append(intents, loop.Rotate)
	}
	step := loop.MoveRight
	if p.Shift < 0 {
		step = loop.MoveLeft
	}
	for range abs(p.Shift) {
		intents = append(intents, step)
	}
	return append(intents, loop.HardDrop)
}

// Best evaluates every placement of the game's active piece. ok is false
// when the game has no active piece.
func Best(game *engine.Game, w Weights) (Placement, bool) {
	active, pos, ok := game.Active()
	if !ok {
		return Placement{}, false
	}
	return Plan(game.Board(), active, pos, w)
}

// Plan evaluates every placement of p starting at pos on board. ok is false
// when no placement is reachable.
func Plan(board *engine.Board, p piece.Piece, pos piece.Point, w Weights) (best Placement, ok bool) {
	width := board.Width()
	for rotations := 0; rotations < 4; rotations++ {
		for shift := -width; shift <= width; shift++ {
			shape, at, reachable := simulate(board, p.Shape, pos, rotations, shift)
			if !reachable {
				continue
			}

			candidate := Placement{Rotations: rotations, Shift: shift, X: at.X, Y: at.Y}
			candidate.Score = evaluate(board, shape, at, p.Kind, w)
			if !ok || candidate.Score > best.Score {
				best = candidate
				ok = true
			}
		}
	}
	return best, ok
}

// simulate applies rotations with the engine's kick order, then shifts one
// column at a time and drops. A rejected rotation or blocked shift makes
// the placement unreachable.
func simulate(board *engine.Board, shape piece.Shape, pos piece.Point, rotations, shift int) (piece.Shape, piece.Point, bool) {
	for range rotations {
		rotated := shape.Rotate()
		kicked := false
		for _, kick := range engine.Kicks {
			if !board.Collides(rotated, pos.X+kick.X, pos.Y+kick.Y) {
				shape = rotated
				pos = piece.Point{X: pos.X + kick.X, Y: pos.Y + kick.Y}
				kicked = true
				break
			}
		}
		if !kicked {
			return nil, pos, false
		}
	}

	step := 1
	if shift < 0 {
		step = -1
	}
	for range abs(shift) {
		if board.Collides(shape, pos.X+step, pos.Y) {
			return nil, pos, false
		}
		pos.X += step
	}

	for !board.Collides(shape, pos.X, pos.Y+1) {
		pos.Y++
	}
	return shape, pos, true
}

func evaluate(board *engine.Board, shape piece.Shape, at piece.Point, kind piece.Kind, w Weights) float64 {
	after := board.Clone()
	after.Place(shape, at.X, at.Y, engine.CellOf(kind))
	lines := len(after.ClearFullRows())

	f := Measure(after)
	return w.AggregateHeight*float64(f.AggregateHeight) +
		w.Lines*float64(lines) +
		w.Holes*float64(f.Holes) +
		w.Bumpiness*float64(f.Bumpiness)
}

// Features are the board measurements the bot scores.
type Features struct {
	AggregateHeight int
	Holes           int
	Bumpiness       int
	MaxHeight       int
}

// Measure computes column heights, covered holes and the height difference
// between neighbouring columns.
func Measure(board *engine.Board) Features {
	var f Features
	prev := -1
	for x := 0; x < board.Width(); x++ {
		height := 0
		for y := 0; y < board.Height(); y++ {
			if board.At(x, y).Filled() {
				if height == 0 {
					height = board.Height() - y
				}
			} else if height > 0 {
				f.Holes++
			}
		}

		f.AggregateHeight += height
		f.MaxHeight = max(f.MaxHeight, height)
		if prev >= 0 {
			f.Bumpiness += abs(height - prev)
		}
		prev = height
	}
	return f
}

// Bot is a loop.System that queues a full placement whenever the game is
// running and no intents are pending. Register it before the input system.
type Bot struct {
	Weights Weights
}

// NewBot returns a bot using DefaultWeights.
func NewBot() *Bot {
	return &Bot{Weights: DefaultWeights}
}

func (b *Bot) Execute(frame *loop.UpdateFrame) {
	game := frame.Game()
	if game.State() != engine.Running || frame.Commands.Pending() > 0 {
		return
	}

	plan, ok := Best(game, b.Weights)
	if !ok {
		return
	}
	for _, intent := range plan.Intents() {
		frame.Commands.Push(intent)
	}
}

// Step plays one placement directly on game and returns the locking
// outcome. It returns an ignored outcome when the game is not running.
func Step(game *engine.Game, w Weights) engine.Outcome {
	if game.State() != engine.Running {
		return engine.Outcome{Kind: engine.OutcomeIgnored}
	}
	plan, ok := Best(game, w)
	if !ok {
		return engine.Outcome{Kind: engine.OutcomeIgnored}
	}

	for range plan.Rotations {
		game.Rotate()
	}
	dir := engine.Right
	if plan.Shift < 0 {
		dir = engine.Left
	}
	for range abs(plan.Shift) {
		game.Move(dir)
	}
	return game.HardDrop()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
