// Package debugui provides Dear ImGui inspector panels for a running game
// session. Panels render from a deferred command at the end of each frame,
// so they always see the state left by every other system.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ootris/loop"
)

// Panel is one ImGui window.
type Panel interface {
	Render(frame *loop.UpdateFrame)
}

// PanelFunc adapts a plain render function to the Panel interface.
type PanelFunc func(frame *loop.UpdateFrame)

func (f PanelFunc) Render(frame *loop.UpdateFrame) { f(frame) }

// InputState tracks whether Dear ImGui is consuming mouse or keyboard input.
// Frontends should skip game input while WantCaptureKeyboard is set.
type InputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem updates the input state and defers every panel's render
// function. It must run between the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Panels  []Panel
	Input   InputState
	Visible bool
}

// NewImguiSystem returns a visible system with the given panels.
func NewImguiSystem(panels ...Panel) *ImguiSystem {
	return &ImguiSystem{Panels: panels, Visible: true}
}

// Execute updates input state and queues all panel render functions.
func (i *ImguiSystem) Execute(frame *loop.UpdateFrame) {
	if !i.Visible {
		i.Input = InputState{}
		return
	}

	io := imgui.CurrentIO()
	i.Input.WantCaptureMouse = io.WantCaptureMouse()
	i.Input.WantCaptureKeyboard = io.WantCaptureKeyboard()

	for _, panel := range i.Panels {
		frame.Commands.Defer(func() { panel.Render(frame) })
	}
}
