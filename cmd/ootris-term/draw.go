package main

import (
	"fmt"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/piece"
)

const (
	originX = 2
	originY = 1
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	ghostStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
)

func kindStyle(kind piece.Kind) tcell.Style {
	return tcell.StyleDefault.Foreground(rgb(kind.Color()))
}

func rgb(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// draw renders the snapshot. Every board cell is two terminal columns wide.
func draw(screen tcell.Screen, snap engine.Snapshot, message string) {
	screen.Clear()

	left := originX
	right := originX + 2*snap.Width + 1
	bottom := originY + snap.Height
	for y := originY; y < bottom; y++ {
		screen.SetContent(left, y, '│', nil, borderStyle)
		screen.SetContent(right, y, '│', nil, borderStyle)
	}
	for x := left; x <= right; x++ {
		screen.SetContent(x, bottom, '─', nil, borderStyle)
	}
	screen.SetContent(left, bottom, '└', nil, borderStyle)
	screen.SetContent(right, bottom, '┘', nil, borderStyle)

	for y, row := range snap.Board {
		for x, c := range row {
			if kind, ok := c.Kind(); ok {
				block(screen, x, y, '█', kindStyle(kind))
			}
		}
	}

	if a := snap.Active; a != nil {
		for _, p := range a.Cells(a.GhostY) {
			block(screen, p.X, p.Y, '░', ghostStyle)
		}
		for _, p := range a.Cells(a.Y) {
			block(screen, p.X, p.Y, '█', kindStyle(a.Kind))
		}
	}

	hudX := right + 3
	y := originY
	for _, line := range []string{
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("LEVEL %d", snap.Level),
		fmt.Sprintf("LINES %d", snap.Lines),
		"",
		"NEXT",
	} {
		drawText(screen, hudX, y, line, textStyle)
		y++
	}
	if snap.Next != nil {
		for _, c := range snap.Next.Shape.Cells() {
			style := kindStyle(snap.Next.Kind)
			screen.SetContent(hudX+2*c.X, y+c.Y, '█', nil, style)
			screen.SetContent(hudX+2*c.X+1, y+c.Y, '█', nil, style)
		}
	}
	y += 5

	switch {
	case !snap.Started:
		drawText(screen, hudX, y, "Press R to start", textStyle)
	case snap.GameOver:
		drawText(screen, hudX, y, "GAME OVER", alertStyle)
		drawText(screen, hudX, y+1, "Press R to restart", textStyle)
	case snap.Paused:
		drawText(screen, hudX, y, "PAUSED", textStyle)
	}
	drawText(screen, hudX, y+3, "c copy board  q quit", borderStyle)
	if message != "" {
		drawText(screen, hudX, y+4, message, textStyle)
	}
}

func block(screen tcell.Screen, x, y int, r rune, style tcell.Style) {
	if y < 0 {
		return
	}
	sx := originX + 1 + 2*x
	screen.SetContent(sx, originY+y, r, nil, style)
	screen.SetContent(sx+1, originY+y, r, nil, style)
}

func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
