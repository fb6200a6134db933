// Command ootris is the desktop frontend: an ebiten window with an optional
// Dear ImGui inspector (F1).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/plus3/ootris/config"
	"github.com/plus3/ootris/debugui"
	debugui_ebiten "github.com/plus3/ootris/debugui/ebiten"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/sound"
	"github.com/plus3/ootris/stats"
)

func main() {
	configPath := flag.String("config", "ootris.hcl", "path to the HCL configuration file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "override the configured log format (text, json)")
	mute := flag.Bool("mute", false, "disable sound")
	inspector := flag.Bool("inspector", false, "show the ImGui inspector on start")
	flag.Parse()

	if err := run(*configPath, *logLevel, *logFormat, *mute, *inspector); err != nil {
		fmt.Fprintf(os.Stderr, "ootris: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logLevel, logFormat string, mute, inspector bool) error {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.New("info", "text", os.Stderr))

	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	logger := ctxlog.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
	ctx = ctxlog.WithLogger(ctx, logger)

	factory, err := cfg.GameFactory()
	if err != nil {
		return err
	}
	session := loop.NewSession(factory)

	tracker := stats.NewTracker()
	player := sound.NewPlayer(logger, cfg.Audio.Volume)
	if cfg.Audio.Enabled && !mute {
		if err := player.Init(); err != nil {
			logger.Warn("Sound disabled.", "error", err)
		}
	}
	defer player.Close()

	backend := debugui_ebiten.NewImguiBackend("ootris", screenWidth, screenHeight)

	scheduler := loop.NewDefaultScheduler(ctx, session, tracker, player)
	imguiSystem := debugui.NewImguiSystem(
		&debugui.GameStatePanel{Push: scheduler.Push},
		&debugui.BoardPanel{},
		&debugui.SessionStatsPanel{Tracker: tracker},
		debugui.NewPerformanceStatsPanel(scheduler.GetStats, 120),
	)
	imguiSystem.Visible = inspector
	scheduler.Register(imguiSystem)

	keys, err := resolveKeys(cfg.Bindings())
	if err != nil {
		return err
	}

	game := newGame(scheduler, backend, imguiSystem, keys, logger)
	logger.Info("Starting ootris.", "config", configPath, "policy", cfg.Policy, "sound", player.Enabled())

	if err := ebiten.RunGame(game); err != nil {
		return fmt.Errorf("failed to run game: %w", err)
	}
	return nil
}
