package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/piece"
	"github.com/plus3/ootris/stats"
)

// SessionStatsPanel shows the tracker's piece distribution and clear sizes.
type SessionStatsPanel struct {
	Tracker *stats.Tracker
}

var clearNames = [4]string{"Single", "Double", "Triple", "Tetris"}

func (p *SessionStatsPanel) Render(frame *loop.UpdateFrame) {
	if !imgui.BeginV("Session Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := p.Tracker.Summary()
	imgui.Text(fmt.Sprintf("Games: %d (%d over)", s.Games, s.GameOvers))
	imgui.Text(fmt.Sprintf("Best score: %d", s.BestScore))
	imgui.Text(fmt.Sprintf("Pieces: %d  Locks: %d  Lines: %d", s.Pieces(), s.Locks, s.Lines))
	imgui.Text(fmt.Sprintf("Hard drop rows: %d", s.DropCells))

	if imgui.TreeNodeStr("Pieces") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PieceTable", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Kind")
			imgui.TableSetupColumn("Dealt")
			imgui.TableSetupColumn("Share")
			imgui.TableHeadersRow()

			for _, kind := range piece.Kinds() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.Spawns[kind]))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%.1f%%", share(s.Spawns[kind], s.Pieces())))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Clears") {
		for i, name := range clearNames {
			imgui.BulletText(fmt.Sprintf("%s: %d", name, s.Clears[i]))
		}
		imgui.TreePop()
	}

	if imgui.Button("Reset") {
		p.Tracker.Reset()
	}

	imgui.End()
}

func share(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100 * float64(n) / float64(total)
}
