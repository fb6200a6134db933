package engine

import (
	"strings"

	"github.com/plus3/ootris/piece"
)

// Cell is a single board square: Empty, or occupied by a piece kind.
type Cell uint8

// Empty is the zero Cell.
const Empty Cell = 0

// CellOf returns the occupied cell for kind.
func CellOf(kind piece.Kind) Cell {
	return Cell(kind) + 1
}

// Filled reports whether the cell is occupied.
func (c Cell) Filled() bool {
	return c != Empty
}

// Kind returns the piece kind that occupies the cell.
func (c Cell) Kind() (piece.Kind, bool) {
	if c == Empty {
		return 0, false
	}
	return piece.Kind(c - 1), true
}

// Rune returns the single-character representation used by String methods.
func (c Cell) Rune() rune {
	kind, ok := c.Kind()
	if !ok {
		return '.'
	}
	return rune(kind.String()[0])
}

// Board is a fixed-size grid of cells, row 0 at the top.
type Board struct {
	width  int
	height int
	cells  []Cell
}

// NewBoard returns an empty width x height board.
func NewBoard(width, height int) *Board {
	return &Board{
		width:  width,
		height: height,
		cells:  make([]Cell, width*height),
	}
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// InBounds reports whether (x, y) lies on the board.
func (b *Board) InBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// At returns the cell at (x, y). Out-of-bounds positions read as Empty.
func (b *Board) At(x, y int) Cell {
	if !b.InBounds(x, y) {
		return Empty
	}
	return b.cells[y*b.width+x]
}

// Set writes the cell at (x, y). Out-of-bounds writes are ignored.
func (b *Board) Set(x, y int, c Cell) {
	if !b.InBounds(x, y) {
		return
	}
	b.cells[y*b.width+x] = c
}

// Clear empties every cell.
func (b *Board) Clear() {
	clear(b.cells)
}

// Clone returns an independent copy of the board.
func (b *Board) Clone() *Board {
	out := &Board{width: b.width, height: b.height, cells: make([]Cell, len(b.cells))}
	copy(out.cells, b.cells)
	return out
}

// Collides reports whether shape placed with its box at (x, y) would overlap
// an occupied cell or leave the board.
func (b *Board) Collides(shape piece.Shape, x, y int) bool {
	for i := range shape {
		for j, occupied := range shape[i] {
			if !occupied {
				continue
			}

			px := x + j
			py := y + i

			if !b.InBounds(px, py) {
				return true
			}
			if b.cells[py*b.width+px].Filled() {
				return true
			}
		}
	}
	return false
}

// Place writes every occupied sub-cell of shape at (x, y) as c. Callers check
// Collides first.
func (b *Board) Place(shape piece.Shape, x, y int, c Cell) {
	for _, p := range shape.Cells() {
		b.Set(x+p.X, y+p.Y, c)
	}
}

// RowFull reports whether every cell of row y is occupied.
func (b *Board) RowFull(y int) bool {
	row := b.cells[y*b.width : (y+1)*b.width]
	for _, c := range row {
		if !c.Filled() {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifts the remaining rows down and
// fills the top with empty rows. It returns the indices of the removed rows
// as they were before the shift, top to bottom.
func (b *Board) ClearFullRows() []int {
	var cleared []int
	for y := range b.height {
		if b.RowFull(y) {
			cleared = append(cleared, y)
		}
	}
	if len(cleared) == 0 {
		return nil
	}

	dst := b.height - 1
	for src := b.height - 1; src >= 0; src-- {
		if b.RowFull(src) {
			continue
		}
		if dst != src {
			copy(b.cells[dst*b.width:(dst+1)*b.width], b.cells[src*b.width:(src+1)*b.width])
		}
		dst--
	}
	clear(b.cells[:(dst+1)*b.width])

	return cleared
}

// Rows returns a copy of the board as a slice of rows.
func (b *Board) Rows() [][]Cell {
	rows := make([][]Cell, b.height)
	for y := range rows {
		rows[y] = make([]Cell, b.width)
		copy(rows[y], b.cells[y*b.width:(y+1)*b.width])
	}
	return rows
}

// Count returns the number of occupied cells.
func (b *Board) Count() int {
	n := 0
	for _, c := range b.cells {
		if c.Filled() {
			n++
		}
	}
	return n
}

func (b *Board) String() string {
	var sb strings.Builder
	for y := range b.height {
		for x := range b.width {
			sb.WriteRune(b.At(x, y).Rune())
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
