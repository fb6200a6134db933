// Command ootris-stress plays many bot-driven games headless and prints a
// markdown report of throughput, frame timings and game statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/plus3/ootris/config"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/piece"
)

func main() {
	configPath := flag.String("config", "ootris.hcl", "path to the HCL configuration file")
	games := flag.Int("games", 20, "number of games to play")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "games played in parallel")
	maxPieces := flag.Int("max-pieces", 2000, "stop a game after this many pieces")
	seed := flag.Uint64("seed", 1, "seed of the first game; game i uses seed+i")
	policy := flag.String("policy", "", "override the configured generator policy (bag, uniform)")
	duration := flag.Duration("duration", 0, "stop starting new games after this long (0 means no limit)")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	logLevel := flag.String("log-level", "warn", "log level")
	flag.Parse()

	logger := ctxlog.New(*logLevel, "text", os.Stderr)
	ctx := ctxlog.WithLogger(context.Background(), logger)

	cfg, err := config.Load(ctx, *configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ootris-stress: %v\n", err)
		os.Exit(1)
	}
	if *policy != "" {
		p, err := piece.ParsePolicy(*policy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ootris-stress: %v\n", err)
			os.Exit(1)
		}
		cfg.Policy = p
	}

	if *duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, *duration)
		defer cancel()
	}

	opts := Options{
		Games:     *games,
		Workers:   *workers,
		MaxPieces: *maxPieces,
		Seed:      *seed,
	}

	logger.Info("Starting stress run.", "games", opts.Games, "workers", opts.Workers, "policy", cfg.Policy)
	report, err := Run(ctx, cfg, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ootris-stress: %v\n", err)
		os.Exit(1)
	}
	report.GCPauseMetrics = *gcPauseMetrics

	fmt.Println("\n\n--- Stress Test Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ootris-stress: failed to generate report: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("--- End of Report ---")
}
