package debugui

import (
	"fmt"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/loop"
)

// BoardPanel prints the board as text and lists the fill of every row.
type BoardPanel struct{}

func (p *BoardPanel) Render(frame *loop.UpdateFrame) {
	if !imgui.BeginV("Board", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	snap := frame.Game().Snapshot()
	for _, line := range strings.Split(strings.TrimRight(snap.String(), "\n"), "\n") {
		imgui.Text(line)
	}

	if imgui.TreeNodeStr("Row Fill") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("RowFillTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Row")
			imgui.TableSetupColumn("Filled")
			imgui.TableHeadersRow()

			for y, filled := range rowFill(snap) {
				if filled == 0 {
					continue
				}
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", y))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d / %d", filled, snap.Width))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// rowFill counts the locked cells in each row, top to bottom.
func rowFill(snap engine.Snapshot) []int {
	fill := make([]int, len(snap.Board))
	for y, row := range snap.Board {
		for _, c := range row {
			if c.Filled() {
				fill[y]++
			}
		}
	}
	return fill
}
