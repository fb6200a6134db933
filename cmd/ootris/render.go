package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/piece"
	"golang.org/x/image/font/basicfont"
)

const (
	cellSize = 30
	offsetX  = 50
	offsetY  = 50
)

var (
	backgroundColor = color.RGBA{R: 16, G: 16, B: 24, A: 255}
	borderColor     = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	ghostColor      = color.RGBA{R: 255, G: 255, B: 255, A: 60}
	gridColor       = color.RGBA{A: 255}
	alertColor      = color.RGBA{R: 230, G: 41, B: 55, A: 255}
)

type renderer struct {
	face text.Face
}

func newRenderer() *renderer {
	return &renderer{face: text.NewGoXFace(basicfont.Face7x13)}
}

func (r *renderer) draw(screen *ebiten.Image, snap engine.Snapshot) {
	screen.Fill(backgroundColor)

	boardW := float32(snap.Width * cellSize)
	boardH := float32(snap.Height * cellSize)
	vector.StrokeRect(screen, offsetX-2, offsetY-2, boardW+4, boardH+4, 2, borderColor, false)

	for y, row := range snap.Board {
		for x, c := range row {
			if kind, ok := c.Kind(); ok {
				r.cell(screen, offsetX, offsetY, x, y, kind.Color())
			}
		}
	}

	if a := snap.Active; a != nil {
		for _, p := range a.Cells(a.GhostY) {
			vector.DrawFilledRect(screen, float32(offsetX+p.X*cellSize), float32(offsetY+p.Y*cellSize), cellSize, cellSize, ghostColor, false)
		}
		for _, p := range a.Cells(a.Y) {
			r.cell(screen, offsetX, offsetY, p.X, p.Y, a.Kind.Color())
		}
	}

	r.hud(screen, snap, offsetX+snap.Width*cellSize+30)
}

func (r *renderer) cell(screen *ebiten.Image, ox, oy, x, y int, clr color.Color) {
	px := float32(ox + x*cellSize)
	py := float32(oy + y*cellSize)
	vector.DrawFilledRect(screen, px, py, cellSize, cellSize, clr, false)
	vector.StrokeRect(screen, px, py, cellSize, cellSize, 1, gridColor, false)
}

func (r *renderer) hud(screen *ebiten.Image, snap engine.Snapshot, x int) {
	y := offsetY
	for _, line := range [][2]string{
		{"SCORE", fmt.Sprintf("%d", snap.Score)},
		{"LEVEL", fmt.Sprintf("%d", snap.Level)},
		{"LINES", fmt.Sprintf("%d", snap.Lines)},
	} {
		r.text(screen, line[0], x, y, color.White)
		r.text(screen, line[1], x, y+18, color.White)
		y += 50
	}

	r.text(screen, "NEXT", x, y, color.White)
	if snap.Next != nil {
		r.preview(screen, *snap.Next, x, y+20)
	}
	y += 20 + 4*cellSize + 20

	switch {
	case !snap.Started:
		r.text(screen, "Press R to start", x, y, color.White)
	case snap.GameOver:
		r.text(screen, "GAME OVER", x, y, alertColor)
		r.text(screen, "Press R to restart", x, y+18, color.White)
	case snap.Paused:
		r.text(screen, "PAUSED", x, y, color.White)
	}
	r.text(screen, "F1 inspector  C copy board", x, y+54, borderColor)
}

func (r *renderer) preview(screen *ebiten.Image, p piece.Piece, x, y int) {
	for _, c := range p.Shape.Cells() {
		r.cell(screen, x, y, c.X, c.Y, p.Kind.Color())
	}
}

func (r *renderer) text(screen *ebiten.Image, s string, x, y int, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, r.face, op)
}
