// Package piece defines the seven tetromino templates and the generators
// that decide which piece comes next.
package piece

import "image/color"

// Kind identifies one of the seven standard tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// NumKinds is the number of distinct tetrominoes.
const NumKinds = 7

var kindNames = [NumKinds]string{"I", "O", "T", "S", "Z", "J", "L"}

var kindColors = [NumKinds]color.RGBA{
	{R: 102, G: 191, B: 255, A: 255}, // sky blue
	{R: 255, G: 203, B: 0, A: 255},   // gold
	{R: 135, G: 60, B: 190, A: 255},  // violet
	{R: 0, G: 158, B: 47, A: 255},    // lime
	{R: 255, G: 109, B: 194, A: 255}, // pink
	{R: 0, G: 121, B: 241, A: 255},   // blue
	{R: 255, G: 161, B: 0, A: 255},   // orange
}

// Kinds returns every kind in catalog order.
func Kinds() []Kind {
	return []Kind{I, O, T, S, Z, J, L}
}

// Valid reports whether k names one of the seven tetrominoes.
func (k Kind) Valid() bool {
	return k < NumKinds
}

func (k Kind) String() string {
	if !k.Valid() {
		return "?"
	}
	return kindNames[k]
}

// Color returns the display color associated with the kind.
func (k Kind) Color() color.RGBA {
	if !k.Valid() {
		return color.RGBA{A: 255}
	}
	return kindColors[k]
}
