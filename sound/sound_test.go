package sound_test

import (
	"testing"

	"github.com/gopxl/beep"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/sound"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCueFor(t *testing.T) {
	tests := []struct {
		name string
		out  engine.Outcome
		want sound.Cue
	}{
		{"moved", engine.Outcome{Kind: engine.OutcomeMoved}, sound.CueNone},
		{"rotated", engine.Outcome{Kind: engine.OutcomeRotated}, sound.CueRotate},
		{"rejected", engine.Outcome{Kind: engine.OutcomeRejected}, sound.CueNone},
		{"locked", engine.Outcome{Kind: engine.OutcomeLocked}, sound.CueLock},
		{"single", engine.Outcome{Kind: engine.OutcomeLocked, LinesCleared: 1}, sound.CueClear},
		{"tetris", engine.Outcome{Kind: engine.OutcomeLocked, LinesCleared: 4}, sound.CueTetris},
		{"level up", engine.Outcome{Kind: engine.OutcomeLocked, LinesCleared: 4, LevelUp: true}, sound.CueLevelUp},
		{"game over", engine.Outcome{Kind: engine.OutcomeLocked, GameOver: true}, sound.CueGameOver},
		{"started", engine.Outcome{Kind: engine.OutcomeStarted}, sound.CueNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sound.CueFor(tt.out))
		})
	}
}

func TestRenderLength(t *testing.T) {
	sr := beep.SampleRate(8000)

	for _, cue := range []sound.Cue{sound.CueRotate, sound.CueLock, sound.CueClear, sound.CueTetris, sound.CueLevelUp, sound.CueGameOver} {
		t.Run(cue.String(), func(t *testing.T) {
			s, err := sound.Render(cue, sr, 0)
			require.NoError(t, err)
			require.NotNil(t, s)

			want := 0
			for _, n := range sound.Notes(cue) {
				want += sr.N(n.Duration)
			}

			total := 0
			buf := make([][2]float64, 512)
			for {
				n, ok := s.Stream(buf)
				total += n
				for _, sample := range buf[:n] {
					assert.LessOrEqual(t, sample[0], 1.0)
					assert.GreaterOrEqual(t, sample[0], -1.0)
				}
				if !ok {
					break
				}
			}
			assert.Equal(t, want, total)
		})
	}
}

func TestRenderNone(t *testing.T) {
	s, err := sound.Render(sound.CueNone, beep.SampleRate(8000), 0)
	require.NoError(t, err)
	assert.Nil(t, s)
}

func TestPlayerWithoutDeviceIsSilent(t *testing.T) {
	p := sound.NewPlayer(ctxlog.Discard(), -1)
	assert.False(t, p.Enabled())

	assert.NotPanics(t, func() {
		p.OnOutcome(engine.Outcome{Kind: engine.OutcomeLocked, LinesCleared: 4})
		p.Close()
	})
}
