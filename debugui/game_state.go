package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/loop"
)

// GameStatePanel shows the session's counters and offers pause and restart
// buttons. Push is usually Scheduler.Push.
type GameStatePanel struct {
	Push func(loop.Intent)
}

func (p *GameStatePanel) Render(frame *loop.UpdateFrame) {
	if !imgui.BeginV("Game State", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := frame.Game().Snapshot()
	for _, line := range stateLines(frame.Session, snap) {
		imgui.Text(line)
	}

	imgui.Separator()
	label := "Pause"
	if snap.Paused {
		label = "Resume"
	}
	if imgui.Button(label) && p.Push != nil {
		p.Push(loop.TogglePause)
	}
	imgui.SameLine()
	if imgui.Button("Restart") && p.Push != nil {
		p.Push(loop.Restart)
	}

	if imgui.TreeNodeStr("Rules") {
		r := frame.Game().Rules()
		imgui.BulletText(fmt.Sprintf("Board: %dx%d", r.Width, r.Height))
		imgui.BulletText(fmt.Sprintf("Scoring: %v x level", r.Scoring))
		imgui.BulletText(fmt.Sprintf("Hard drop: %d per row", r.HardDropPoints))
		imgui.BulletText(fmt.Sprintf("Lines per level: %d", r.LinesPerLevel))
		imgui.BulletText(fmt.Sprintf("Interval: %s - %s/level, floor %s", r.BaseInterval, r.IntervalStep, r.MinInterval))
		imgui.TreePop()
	}

	imgui.End()
}

func stateLines(session *loop.Session, snap engine.Snapshot) []string {
	next := "-"
	if snap.Next != nil {
		next = snap.Next.Kind.String()
	}
	active := "-"
	if snap.Active != nil {
		active = fmt.Sprintf("%s at (%d, %d), ghost row %d", snap.Active.Kind, snap.Active.X, snap.Active.Y, snap.Active.GhostY)
	}

	return []string{
		fmt.Sprintf("Game: %s (#%d)", session.ID(), session.Games()),
		fmt.Sprintf("State: %s", snap.State),
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Lines: %d", snap.Lines),
		fmt.Sprintf("Level: %d (drop every %s)", snap.Level, snap.DropInterval),
		fmt.Sprintf("Active: %s", active),
		fmt.Sprintf("Next: %s", next),
	}
}
