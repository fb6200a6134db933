package engine

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidRules is returned by Rules.Validate for unusable settings.
var ErrInvalidRules = errors.New("invalid rules")

// ScoreTable holds the base award for clearing 1, 2, 3 and 4 rows at once.
// The award is multiplied by the level in effect when the rows are cleared.
type ScoreTable [4]int

var (
	// GuidelineScoring is the canonical table.
	GuidelineScoring = ScoreTable{100, 300, 500, 800}
	// ClassicScoring is the 1989 console table.
	ClassicScoring = ScoreTable{40, 100, 300, 1200}
)

// Rules are the tunable parameters of a game. They are fixed for the lifetime
// of a Game.
type Rules struct {
	Width  int
	Height int

	Scoring        ScoreTable
	HardDropPoints int
	LinesPerLevel  int

	BaseInterval time.Duration
	IntervalStep time.Duration
	MinInterval  time.Duration
}

// DefaultRules returns a standard 10x20 game with guideline scoring and a
// 100ms drop-interval floor.
func DefaultRules() Rules {
	return Rules{
		Width:          10,
		Height:         20,
		Scoring:        GuidelineScoring,
		HardDropPoints: 2,
		LinesPerLevel:  10,
		BaseInterval:   1000 * time.Millisecond,
		IntervalStep:   100 * time.Millisecond,
		MinInterval:    100 * time.Millisecond,
	}
}

// Validate checks that the rules describe a playable game.
func (r Rules) Validate() error {
	if r.Width < 4 || r.Height < 4 {
		return fmt.Errorf("%w: board %dx%d is smaller than a piece", ErrInvalidRules, r.Width, r.Height)
	}
	for i, v := range r.Scoring {
		if v < 0 {
			return fmt.Errorf("%w: score for %d lines is negative", ErrInvalidRules, i+1)
		}
	}
	if r.HardDropPoints < 0 {
		return fmt.Errorf("%w: hard drop points is negative", ErrInvalidRules)
	}
	if r.LinesPerLevel <= 0 {
		return fmt.Errorf("%w: lines per level must be positive", ErrInvalidRules)
	}
	if r.MinInterval <= 0 {
		return fmt.Errorf("%w: minimum interval must be positive", ErrInvalidRules)
	}
	if r.BaseInterval < r.MinInterval {
		return fmt.Errorf("%w: base interval %s below minimum %s", ErrInvalidRules, r.BaseInterval, r.MinInterval)
	}
	if r.IntervalStep < 0 {
		return fmt.Errorf("%w: interval step is negative", ErrInvalidRules)
	}
	return nil
}

// LevelFor returns the level reached after clearing lines rows in total.
func (r Rules) LevelFor(lines int) int {
	if lines < 0 {
		lines = 0
	}
	return lines/r.LinesPerLevel + 1
}

// DropInterval returns the automatic descent period at level. It never
// increases with level and never drops below MinInterval.
func (r Rules) DropInterval(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	interval := r.BaseInterval - time.Duration(level-1)*r.IntervalStep
	return max(interval, r.MinInterval)
}

// LineScore returns the award for clearing rows lines at once on level.
func (r Rules) LineScore(rows, level int) int {
	if rows <= 0 {
		return 0
	}
	rows = min(rows, len(r.Scoring))
	return r.Scoring[rows-1] * level
}
