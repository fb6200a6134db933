// Command ootris-term plays in a terminal using tcell.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/atotto/clipboard"
	"github.com/gdamore/tcell/v2"
	"github.com/plus3/ootris/config"
	"github.com/plus3/ootris/internal/ctxlog"
	"github.com/plus3/ootris/loop"
	"github.com/plus3/ootris/sound"
	"github.com/plus3/ootris/stats"
)

const frameInterval = 16 * time.Millisecond

func main() {
	configPath := flag.String("config", "ootris.hcl", "path to the HCL configuration file")
	logFile := flag.String("log-file", "", "write logs to this file (the terminal is busy drawing)")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	if err := run(*configPath, *logFile, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "ootris-term: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath, logFile string, mute bool) error {
	ctx := ctxlog.WithLogger(context.Background(), ctxlog.Discard())
	cfg, err := config.Load(ctx, configPath)
	if err != nil {
		return err
	}

	logger := ctxlog.Discard()
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = ctxlog.New(cfg.Log.Level, cfg.Log.Format, f)
	}
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

	scheduler := loop.NewDefaultScheduler(ctx, session, tracker, player)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialise screen: %w", err)
	}
	defer screen.Fini()

	t := &terminal{
		screen:    screen,
		scheduler: scheduler,
		keys:      resolveKeys(cfg.Bindings(), logger),
		logger:    logger,
	}
	t.run()

	logger.Info("Session finished.", "stats", tracker.Summary().String())
	return nil
}

type terminal struct {
	screen    tcell.Screen
	scheduler *loop.Scheduler
	keys      map[termKey]loop.Intent
	logger    *slog.Logger
	message   string
}

func (t *terminal) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				close(eventChan)
				return
			}
			eventChan <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-eventChan:
			if !ok || !t.handleEvent(ev) {
				return
			}

		case now := <-ticker.C:
			t.scheduler.Once(now.Sub(last).Seconds())
			last = now
			draw(t.screen, t.scheduler.Session().Game().Snapshot(), t.message)
			t.screen.Show()
		}
	}
}

// handleEvent returns false when the player quits.
func (t *terminal) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
			return false
		}
		if ev.Key() == tcell.KeyRune && ev.Rune() == 'c' {
			t.copySnapshot()
			return true
		}
		if intent, ok := t.keys[keyOf(ev)]; ok {
			t.scheduler.Push(intent)
		}

	case *tcell.EventResize:
		t.screen.Sync()
	}
	return true
}

func (t *terminal) copySnapshot() {
	snap := t.scheduler.Session().Game().Snapshot()
	if err := clipboard.WriteAll(snap.String()); err != nil {
		t.logger.Warn("Failed to copy board.", "error", err)
		t.message = "clipboard unavailable"
		return
	}
	t.message = "board copied"
}
