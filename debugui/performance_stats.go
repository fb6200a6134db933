package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/ootris/loop"
)

// FrameHistory is a fixed-size ring of frame times in milliseconds.
type FrameHistory struct {
	frames []float32
	index  int
	filled int
}

func NewFrameHistory(size int) *FrameHistory {
	return &FrameHistory{frames: make([]float32, size)}
}

// Add records a frame duration in seconds.
func (h *FrameHistory) Add(seconds float64) {
	h.frames[h.index] = float32(seconds * 1000.0)
	h.index = (h.index + 1) % len(h.frames)
	h.filled = min(h.filled+1, len(h.frames))
}

// Average returns the mean of the recorded frames in milliseconds.
func (h *FrameHistory) Average() float32 {
	if h.filled == 0 {
		return 0
	}
	var total float32
	for _, ft := range h.frames {
		total += ft
	}
	return total / float32(h.filled)
}

// PerformanceStatsPanel graphs frame times and lists the scheduler's
// per-system timings.
type PerformanceStatsPanel struct {
	Stats   func() *loop.SchedulerStats
	history *FrameHistory
}

func NewPerformanceStatsPanel(stats func() *loop.SchedulerStats, historyFrames int) *PerformanceStatsPanel {
	return &PerformanceStatsPanel{
		Stats:   stats,
		history: NewFrameHistory(historyFrames),
	}
}

func (ps *PerformanceStatsPanel) Render(frame *loop.UpdateFrame) {
	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	ps.history.Add(frame.DeltaTime)
	stats := ps.Stats()

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))

	avgFrameTime := ps.history.Average()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	imgui.PlotLinesFloatPtr("##frametime", &ps.history.frames[0], int32(len(ps.history.frames)))

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 4, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, s := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(s.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", s.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(s.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(s.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	imgui.End()
}

// FrameTimer measures wall-clock time between calls.
type FrameTimer struct {
	lastFrameTime time.Time
}

func NewFrameTimer() *FrameTimer {
	return &FrameTimer{
		lastFrameTime: time.Now(),
	}
}

func (ft *FrameTimer) GetDeltaTime() float64 {
	now := time.Now()
	delta := now.Sub(ft.lastFrameTime).Seconds()
	ft.lastFrameTime = now
	return delta
}
