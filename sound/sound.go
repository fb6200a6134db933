// Package sound plays short synthesised cues for engine outcomes. A Player
// belongs to one frontend; the engine never knows it exists.
package sound

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/ootris/engine"
)

const sampleRate = beep.SampleRate(44100)

// Cue is a named sound.
type Cue uint8

const (
	CueNone Cue = iota
	CueRotate
	CueLock
	CueClear
	CueTetris
	CueLevelUp
	CueGameOver
)

var cueNames = [...]string{"none", "rotate", "lock", "clear", "tetris", "level_up", "game_over"}

func (c Cue) String() string {
	if int(c) < len(cueNames) {
		return cueNames[c]
	}
	return "unknown"
}

// Note is one sine tone. A zero frequency is a rest.
type Note struct {
	Freq     float64
	Duration time.Duration
}

var cueNotes = map[Cue][]Note{
	CueRotate: {{Freq: 660, Duration: 25 * time.Millisecond}},
	CueLock:   {{Freq: 220, Duration: 40 * time.Millisecond}},
	CueClear: {
		{Freq: 523.25, Duration: 60 * time.Millisecond},
		{Freq: 659.25, Duration: 80 * time.Millisecond},
	},
	CueTetris: {
		{Freq: 523.25, Duration: 60 * time.Millisecond},
		{Freq: 659.25, Duration: 60 * time.Millisecond},
		{Freq: 783.99, Duration: 60 * time.Millisecond},
		{Freq: 1046.5, Duration: 140 * time.Millisecond},
	},
	CueLevelUp: {
		{Freq: 880, Duration: 70 * time.Millisecond},
		{Duration: 30 * time.Millisecond},
		{Freq: 1174.66, Duration: 120 * time.Millisecond},
	},
	CueGameOver: {
		{Freq: 392, Duration: 150 * time.Millisecond},
		{Freq: 311.13, Duration: 150 * time.Millisecond},
		{Freq: 196, Duration: 400 * time.Millisecond},
	},
}

// CueFor picks the cue for an outcome. The most significant event wins:
// game over, then level up, then the clear size, then the lock itself.
func CueFor(out engine.Outcome) Cue {
	switch {
	case out.GameOver:
		return CueGameOver
	case out.LevelUp:
		return CueLevelUp
	case out.LinesCleared >= 4:
		return CueTetris
	case out.LinesCleared > 0:
		return CueClear
	case out.Kind == engine.OutcomeLocked:
		return CueLock
	case out.Kind == engine.OutcomeRotated:
		return CueRotate
	}
	return CueNone
}

// Notes returns the tones that make up cue.
func Notes(cue Cue) []Note {
	return cueNotes[cue]
}

// Render synthesises cue at sr. volume is a base-2 gain. It returns nil
// for CueNone.
func Render(cue Cue, sr beep.SampleRate, volume float64) (beep.Streamer, error) {
	notes := cueNotes[cue]
	if len(notes) == 0 {
		return nil, nil
	}

	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		samples := sr.N(n.Duration)
		if n.Freq == 0 {
			parts = append(parts, beep.Silence(samples))
			continue
		}
		tone, err := generators.SineTone(sr, n.Freq)
		if err != nil {
			return nil, fmt.Errorf("cue %s: %w", cue, err)
		}
		parts = append(parts, beep.Take(samples, tone))
	}

	return &effects.Volume{Streamer: beep.Seq(parts...), Base: 2, Volume: volume}, nil
}

// Player implements loop.Listener. Until Init succeeds every call is a
// no-op, so a frontend can keep running on a machine without audio.
type Player struct {
	mu          sync.Mutex
	logger      *slog.Logger
	volume      float64
	mixer       *beep.Mixer
	initialized bool
}

// NewPlayer creates a player with the given base-2 gain.
func NewPlayer(logger *slog.Logger, volume float64) *Player {
	return &Player{
		logger: logger,
		volume: volume,
		mixer:  &beep.Mixer{},
	}
}

// Init opens the audio device and starts the mixer.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialise speaker: %w", err)
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Enabled reports whether Init succeeded.
func (p *Player) Enabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.initialized
}

// Play queues cue on the mixer.
func (p *Player) Play(cue Cue) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized || cue == CueNone {
		return
	}

	s, err := Render(cue, sampleRate, p.volume)
	if err != nil {
		p.logger.Warn("Failed to render sound cue.", "cue", cue.String(), "error", err)
		return
	}

	speaker.Lock()
	p.mixer.Add(s)
	speaker.Unlock()
}

// OnOutcome plays the cue for out.
func (p *Player) OnOutcome(out engine.Outcome) {
	p.Play(CueFor(out))
}

// Close stops playback and releases the device.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	p.initialized = false
}
