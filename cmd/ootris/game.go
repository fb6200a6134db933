package main

import (
	"log/slog"

	"github.com/atotto/clipboard"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/ootris/debugui"
	debugui_ebiten "github.com/plus3/ootris/debugui/ebiten"
	"github.com/plus3/ootris/loop"
)

const (
	screenWidth  = 1280
	screenHeight = 720
)

// Game implements ebiten.Game over a loop.Scheduler.
type Game struct {
	scheduler *loop.Scheduler
	backend   *debugui_ebiten.ImguiBackend
	imgui     *debugui.ImguiSystem
	input     *inputState
	renderer  *renderer
	logger    *slog.Logger
}

func newGame(scheduler *loop.Scheduler, backend *debugui_ebiten.ImguiBackend, imgui *debugui.ImguiSystem, keys map[loop.Intent][]ebiten.Key, logger *slog.Logger) *Game {
	return &Game{
		scheduler: scheduler,
		backend:   backend,
		imgui:     imgui,
		input:     newInputState(keys),
		renderer:  newRenderer(),
		logger:    logger,
	}
}

func (g *Game) Update() error {
	dt := 1.0 / float64(ebiten.TPS())

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.imgui.Visible = !g.imgui.Visible
	}

	if g.imgui.Input.WantCaptureKeyboard {
		g.input.reset()
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.copySnapshot()
		}
		g.input.poll(dt, g.scheduler.Push)
	}

	// Begin ImGui frame before executing systems
	g.backend.BeginFrame()
	g.scheduler.Once(dt)
	g.backend.EndFrame()

	return nil
}

func (g *Game) copySnapshot() {
	snap := g.scheduler.Session().Game().Snapshot()
	if err := clipboard.WriteAll(snap.String()); err != nil {
		g.logger.Warn("Failed to copy board.", "error", err)
		return
	}
	g.logger.Debug("Copied board to clipboard.")
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.draw(screen, g.scheduler.Session().Game().Snapshot())

	// Draw ImGui overlay on top
	g.backend.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
