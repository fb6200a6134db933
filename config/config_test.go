package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/plus3/ootris/config"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/piece"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), ctxlog.Discard())
}

func TestParseFullFile(t *testing.T) {
	src := `
game {
  width            = 12
  height           = 24
  scoring          = scoring.classic
  hard_drop_points = 1
  lines_per_level  = 5
  base_interval_ms = 800
  interval_step_ms = 50
  min_interval_ms  = 80
}

generator {
  policy = policy.uniform
  seed   = 42
}

log {
  level  = "debug"
  format = "json"
}

audio {
  enabled = false
  volume  = -2.5
}

keys {
  hard_drop = ["Space", "X"]
  rotate    = ["ArrowUp"]
}
`
	cfg, err := config.Parse([]byte(src), "ootris.hcl")
	require.NoError(t, err)

	want := config.Default()
	want.Rules = engine.Rules{
		Width:          12,
		Height:         24,
		Scoring:        engine.ClassicScoring,
		HardDropPoints: 1,
		LinesPerLevel:  5,
		BaseInterval:   800 * time.Millisecond,
		IntervalStep:   50 * time.Millisecond,
		MinInterval:    80 * time.Millisecond,
	}
	want.Policy = piece.PolicyUniform
	want.Seed = 42
	want.Log = config.Log{Level: "debug", Format: "json"}
	want.Audio = config.Audio{Enabled: false, Volume: -2.5}
	want.Keys[loop.HardDrop] = []string{"Space", "X"}
	want.Keys[loop.Rotate] = []string{"ArrowUp"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := config.Parse(nil, "empty.hcl")
	require.NoError(t, err)
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestParseLiteralScoring(t *testing.T) {
	cfg, err := config.Parse([]byte(`game { scoring = [1, 2, 3, 4] }`), "t.hcl")
	require.NoError(t, err)
	assert.Equal(t, engine.ScoreTable{1, 2, 3, 4}, cfg.Rules.Scoring)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		invalid bool
	}{
		{name: "syntax", src: `game {`},
		{name: "unknown block", src: `network {}`},
		{name: "unknown attribute", src: `game { depth = 3 }`},
		{name: "unknown preset", src: `game { scoring = scoring.modern }`},
		{name: "short scoring", src: `game { scoring = [1, 2] }`, invalid: true},
		{name: "tiny board", src: `game { width = 2 }`, invalid: true},
		{name: "floor above base", src: `game { min_interval_ms = 2000 }`, invalid: true},
		{name: "unknown policy", src: `generator { policy = "lucky" }`, invalid: true},
		{name: "negative seed", src: `generator { seed = -1 }`, invalid: true},
		{name: "log format", src: `log { format = "xml" }`, invalid: true},
		{name: "log level", src: `log { level = "loud" }`, invalid: true},
		{name: "unknown intent", src: `keys { hold = ["C"] }`, invalid: true},
		{name: "key type", src: `keys { rotate = 3 }`, invalid: true},
		{name: "empty key", src: `keys { rotate = [""] }`, invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.Parse([]byte(tt.src), "bad.hcl")
			require.Error(t, err)
			if tt.invalid {
				assert.ErrorIs(t, err, config.ErrInvalid)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	ctx := testContext()

	cfg, err := config.Load(ctx, filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	path := filepath.Join(t.TempDir(), "ootris.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`generator { seed = 7 }`), 0o644))
	cfg, err = config.Load(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), cfg.Seed)

	_, err = config.Load(ctx, t.TempDir())
	assert.Error(t, err)
}

func TestBindings(t *testing.T) {
	cfg := config.Default()
	cfg.Keys[loop.Restart] = []string{"Space"}

	bindings := cfg.Bindings()
	assert.Equal(t, loop.HardDrop, bindings["Space"], "earlier intents win shared keys")
	assert.Equal(t, loop.MoveLeft, bindings["A"])
	_, ok := bindings["Enter"]
	assert.False(t, ok)
}

func TestGameFactorySeedsEachGame(t *testing.T) {
	cfg := config.Default()
	cfg.Seed = 99

	first, err := cfg.GameFactory()
	require.NoError(t, err)
	second, err := cfg.GameFactory()
	require.NoError(t, err)

	a1, a2 := deal(first(), 8), deal(first(), 8)
	b1 := deal(second(), 8)

	assert.Equal(t, a1, b1, "same seed, same game index")
	assert.NotEqual(t, a1, a2)

	cfg.Policy = "lucky"
	_, err = cfg.GameFactory()
	assert.ErrorIs(t, err, config.ErrInvalid)
}

// deal starts g and hard-drops n pieces, returning the kinds dealt.
func deal(g *engine.Game, n int) []piece.Kind {
	var kinds []piece.Kind
	out := g.Start()
	for range n {
		kinds = append(kinds, out.Spawned)
		if g.State() != engine.Running {
			break
		}
		out = g.HardDrop()
	}
	return kinds
}
