package main

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/plus3/ootris/autoplay"
	"github.com/plus3/ootris/config"
	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/stats"
	"golang.org/x/sync/errgroup"
)

// frameTime is the simulated delta handed to every frame.
const frameTime = 1.0 / 60.0

// Options control a stress run.
type Options struct {
	Games     int
	Workers   int
	MaxPieces int
	Seed      uint64
}

// GameResult is the outcome of one bot-played game.
type GameResult struct {
	Index    int
	Seed     uint64
	Summary  stats.Summary
	Score    int
	Level    int
	Frames   int
	Finished bool
	Samples  []time.Duration
}

// Run plays opts.Games games on up to opts.Workers goroutines. Each game
// owns its session and scheduler; nothing is shared between workers.
// Cancelling ctx stops new games from starting; games already running
// finish.
func Run(ctx context.Context, cfg *config.Config, opts Options) (*Report, error) {
	if opts.Games <= 0 {
		return nil, errors.New("games must be > 0")
	}
	if opts.MaxPieces <= 0 {
		return nil, errors.New("max pieces must be > 0")
	}
	workers := max(opts.Workers, 1)

	report := &Report{
		Games:     opts.Games,
		Workers:   workers,
		MaxPieces: opts.MaxPieces,
		Seed:      opts.Seed,
		Policy:    string(cfg.Policy),
		Width:     cfg.Rules.Width,
		Height:    cfg.Rules.Height,
	}
	runtime.ReadMemStats(&report.MemStatsStart)
	start := time.Now()

	results := make([]*GameResult, opts.Games)

	g := new(errgroup.Group)
	g.SetLimit(workers)
	for i := range opts.Games {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			gameCfg := *cfg
			gameCfg.Seed = opts.Seed + uint64(i)
			res, err := playGame(ctx, &gameCfg, opts.MaxPieces)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			res.Index = i
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report.TotalTime = time.Since(start)
	runtime.ReadMemStats(&report.MemStatsEnd)
	report.add(results)
	return report, nil
}

// playGame runs one game to game over or maxPieces locks, whichever comes
// first.
func playGame(ctx context.Context, cfg *config.Config, maxPieces int) (*GameResult, error) {
	factory, err := cfg.GameFactory()
	if err != nil {
		return nil, err
	}
	session := loop.NewSession(factory)
	tracker := stats.NewTracker()

	scheduler := loop.NewScheduler(ctx, session)
	scheduler.Register(autoplay.NewBot())
	scheduler.Register(&loop.InputSystem{})
	scheduler.Register(&loop.GravitySystem{})
	scheduler.Register(&loop.LogSystem{})
	scheduler.Register(&loop.ListenerSystem{Listeners: []loop.Listener{tracker}})

	res := &GameResult{Seed: cfg.Seed}
	scheduler.Push(loop.Restart)

	for {
		frameStart := time.Now()
		scheduler.Once(frameTime)
		res.Samples = append(res.Samples, time.Since(frameStart))
		res.Frames++

		state := session.Game().State()
		if state == engine.GameOver {
			res.Finished = true
			break
		}
		if state == engine.Running && tracker.Summary().Locks >= maxPieces {
			break
		}
	}

	game := session.Game()
	res.Summary = tracker.Summary()
	res.Score = game.Score()
	res.Level = game.Level()

	ctxlog.FromContext(ctx).Debug("Game finished.", "seed", res.Seed, "score", res.Score, "lines", res.Summary.Lines, "game_over", res.Finished)
	return res, nil
}
