package piece

// Shape is a square bounding box of occupied sub-cells, indexed [row][column].
type Shape [][]bool

// Point is a (column, row) offset inside a bounding box or on a board.
type Point struct {
	X, Y int
}

var templates = [NumKinds]Shape{
	{ // I
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	{ // O
		{false, false, false, false},
		{false, true, true, false},
		{false, true, true, false},
		{false, false, false, false},
	},
	{ // T
		{false, false, false, false},
		{false, true, false, false},
		{true, true, true, false},
		{false, false, false, false},
	},
	{ // S
		{false, false, false, false},
		{false, true, true, false},
		{true, true, false, false},
		{false, false, false, false},
	},
	{ // Z
		{false, false, false, false},
		{true, true, false, false},
		{false, true, true, false},
		{false, false, false, false},
	},
	{ // J
		{false, false, false, false},
		{true, false, false, false},
		{true, true, true, false},
		{false, false, false, false},
	},
	{ // L
		{false, false, false, false},
		{false, false, true, false},
		{true, true, true, false},
		{false, false, false, false},
	},
}

// Template returns a copy of the canonical shape for kind.
func Template(kind Kind) Shape {
	if !kind.Valid() {
		return nil
	}
	return templates[kind].Clone()
}

// Size returns the side length of the bounding box.
func (s Shape) Size() int {
	return len(s)
}

// Clone returns a deep copy of the shape.
func (s Shape) Clone() Shape {
	if s == nil {
		return nil
	}
	out := make(Shape, len(s))
	for i := range s {
		out[i] = make([]bool, len(s[i]))
		copy(out[i], s[i])
	}
	return out
}

// Rotate returns the shape turned 90 degrees clockwise: the grid is
// transposed and every row of the transpose is reversed.
func (s Shape) Rotate() Shape {
	size := len(s)
	rotated := make(Shape, size)
	for i := range rotated {
		rotated[i] = make([]bool, size)
	}

	for i := range size {
		for j := range size {
			rotated[j][i] = s[i][j]
		}
	}

	for _, row := range rotated {
		for l, r := 0, size-1; l < r; l, r = l+1, r-1 {
			row[l], row[r] = row[r], row[l]
		}
	}

	return rotated
}

// Equal reports whether both shapes have identical dimensions and cells.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if len(s[i]) != len(other[i]) {
			return false
		}
		for j := range s[i] {
			if s[i][j] != other[i][j] {
				return false
			}
		}
	}
	return true
}

// Cells returns the offsets of every occupied sub-cell in row-major order.
func (s Shape) Cells() []Point {
	cells := make([]Point, 0, 4)
	for i := range s {
		for j, occupied := range s[i] {
			if occupied {
				cells = append(cells, Point{X: j, Y: i})
			}
		}
	}
	return cells
}

// TopRow returns the index of the first row containing an occupied cell,
// or -1 for an empty shape.
func (s Shape) TopRow() int {
	for i := range s {
		for _, occupied := range s[i] {
			if occupied {
				return i
			}
		}
	}
	return -1
}

// Piece pairs a kind with its current (possibly rotated) shape.
type Piece struct {
	Kind  Kind
	Shape Shape
}

// New returns a piece of the given kind in its spawn orientation.
func New(kind Kind) Piece {
	return Piece{Kind: kind, Shape: Template(kind)}
}

// Clone returns a copy of the piece that shares no memory with p.
func (p Piece) Clone() Piece {
	return Piece{Kind: p.Kind, Shape: p.Shape.Clone()}
}
