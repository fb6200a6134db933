package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/plus3/ootris/piece"
)

// ActivePiece is the read-only view of the falling piece.
type ActivePiece struct {
	Kind  piece.Kind
	Shape piece.Shape
	X, Y  int
	// GhostY is the box row the piece would lock at if hard-dropped.
	GhostY int
}

// Cells returns the board positions occupied by the piece at row y.
func (a *ActivePiece) Cells(y int) []piece.Point {
	cells := a.Shape.Cells()
	for i := range cells {
		cells[i].X += a.X
		cells[i].Y += y
	}
	return cells
}

// Snapshot is a deep copy of everything the presentation layer reads.
type Snapshot struct {
	Width  int
	Height int
	Board  [][]Cell

	Active *ActivePiece
	Next   *piece.Piece

	Score        int
	Lines        int
	Level        int
	DropInterval time.Duration

	State    State
	Started  bool
	Paused   bool
	GameOver bool
}

// Snapshot captures the current state. The result shares no memory with g.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Width:        g.rules.Width,
		Height:       g.rules.Height,
		Board:        g.board.Rows(),
		Score:        g.score,
		Lines:        g.lines,
		Level:        g.level,
		DropInterval: g.DropInterval(),
		State:        g.state,
		Started:      g.state != NotStarted,
		Paused:       g.state == Paused,
		GameOver:     g.state == GameOver,
	}

	if g.hasActive {
		s.Active = &ActivePiece{
			Kind:   g.active.Kind,
			Shape:  g.active.Shape.Clone(),
			X:      g.pos.X,
			Y:      g.pos.Y,
			GhostY: g.pos.Y + g.dropDistance(),
		}
	}
	if g.hasNext {
		next := g.next.Clone()
		s.Next = &next
	}

	return s
}

// String renders the board with the active piece drawn as its kind letter
// and the ghost as '+', followed by a status line.
func (s Snapshot) String() string {
	grid := make([][]rune, s.Height)
	for y := range grid {
		grid[y] = make([]rune, s.Width)
		for x := range grid[y] {
			grid[y][x] = s.Board[y][x].Rune()
		}
	}

	if s.Active != nil {
		for _, p := range s.Active.Cells(s.Active.GhostY) {
			if grid[p.Y][p.X] == '.' {
				grid[p.Y][p.X] = '+'
			}
		}
		letter := rune(strings.ToLower(s.Active.Kind.String())[0])
		for _, p := range s.Active.Cells(s.Active.Y) {
			grid[p.Y][p.X] = letter
		}
	}

	var sb strings.Builder
	for _, row := range grid {
		sb.WriteString(string(row))
		sb.WriteByte('\n')
	}

	next := "-"
	if s.Next != nil {
		next = s.Next.Kind.String()
	}
	fmt.Fprintf(&sb, "score=%d lines=%d level=%d next=%s state=%s\n", s.Score, s.Lines, s.Level, next, s.State)
	return sb.String()
}
