package autoplay_test

import (
	"context"
	"testing"

	"github.com/plus3/ootris/autoplay"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/piece"
	"github.com/plus3/ootris/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeasure(t *testing.T) {
	board := engine.NewBoard(4, 4)
	board.Set(1, 1, engine.CellOf(piece.S))
	board.Set(0, 2, engine.CellOf(piece.S))
	board.Set(2, 2, engine.CellOf(piece.S))
	board.Set(0, 3, engine.CellOf(piece.S))
	board.Set(1, 3, engine.CellOf(piece.S))
	board.Set(2, 3, engine.CellOf(piece.S))

	assert.Equal(t, autoplay.Features{
		AggregateHeight: 7,
		Holes:           1,
		Bumpiness:       4,
		MaxHeight:       3,
	}, autoplay.Measure(board))
}

func TestPlanFillsTheGap(t *testing.T) {
	rules := engine.DefaultRules()
	board := engine.NewBoard(rules.Width, rules.Height)
	for x := 2; x < rules.Width; x++ {
		board.Set(x, rules.Height-1, engine.CellOf(piece.J))
	}

	plan, ok := autoplay.Plan(board, piece.New(piece.O), piece.Point{X: 3}, autoplay.DefaultWeights)
	require.True(t, ok)
	assert.Equal(t, -1, plan.X)
	assert.Equal(t, rules.Height-3, plan.Y)
	assert.Equal(t, []loop.Intent{loop.MoveLeft, loop.MoveLeft, loop.MoveLeft, loop.MoveLeft, loop.HardDrop}, plan.Intents())
}

func TestPlanPrefersTetris(t *testing.T) {
	rules := engine.DefaultRules()
	board := engine.NewBoard(rules.Width, rules.Height)
	for y := rules.Height - 4; y < rules.Height; y++ {
		for x := 0; x < rules.Width-1; x++ {
			board.Set(x, y, engine.CellOf(piece.L))
		}
	}

	plan, ok := autoplay.Plan(board, piece.New(piece.I), piece.Point{X: 3}, autoplay.DefaultWeights)
	require.True(t, ok)
	assert.Equal(t, 1, plan.Rotations)
	assert.Equal(t, 4, plan.Shift)
	assert.Equal(t, rules.Height-4, plan.Y)
}

func TestBestWithoutActivePiece(t *testing.T) {
	game := engine.New(engine.DefaultRules(), piece.NewSequence(piece.T))
	_, ok := autoplay.Best(game, autoplay.DefaultWeights)
	assert.False(t, ok)

	game.Start()
	plan, ok := autoplay.Best(game, autoplay.DefaultWeights)
	require.True(t, ok)
	assert.Equal(t, loop.HardDrop, plan.Intents()[len(plan.Intents())-1])
}

func TestStepKeepsInvariants(t *testing.T) {
	gen, err := piece.NewGenerator(piece.PolicyUniform, 7)
	require.NoError(t, err)
	game := engine.New(engine.DefaultRules(), gen)
	game.Start()

	score := 0
	for range 300 {
		out := autoplay.Step(game, autoplay.DefaultWeights)
		if game.State() == engine.GameOver {
			break
		}
		require.Equal(t, engine.OutcomeLocked, out.Kind)
		require.GreaterOrEqual(t, game.Score(), score)
		score = game.Score()
	}
	assert.Greater(t, game.Lines(), 0)

	assert.Equal(t, engine.OutcomeIgnored, autoplay.Step(engine.New(engine.DefaultRules(), gen), autoplay.DefaultWeights).Kind)
}

func TestBotDrivesScheduler(t *testing.T) {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	session := loop.NewSession(func() *engine.Game {
		gen, err := piece.NewGenerator(piece.PolicyBag, 42)
		if err != nil {
			panic(err)
		}
		return engine.New(engine.DefaultRules(), gen)
	})
	session.Restart()

	tracker := stats.NewTracker()
	scheduler := loop.NewScheduler(ctx, session)
	scheduler.Register(autoplay.NewBot())
	scheduler.Register(&loop.InputSystem{})
	scheduler.Register(&loop.ListenerSystem{Listeners: []loop.Listener{tracker}})

	for range 200 {
		scheduler.Once(0)
	}

	s := tracker.Summary()
	assert.Equal(t, engine.Running, session.Game().State())
	assert.Equal(t, 200, s.Locks)
	assert.GreaterOrEqual(t, s.Lines, 20)
	assert.Zero(t, s.GameOvers)
}
