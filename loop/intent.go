package loop

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownIntent is returned by ParseIntent for unrecognised names.
var ErrUnknownIntent = errors.New("unknown intent")

// Intent is a discrete player action forwarded from a frontend.
type Intent uint8

const (
	MoveLeft Intent = iota
	MoveRight
	SoftDrop
	Rotate
	HardDrop
	TogglePause
	// Restart starts a game that has not started yet, or replaces the
	// current game with a fresh one.
	Restart
)

var intentNames = [...]string{
	MoveLeft:    "move_left",
	MoveRight:   "move_right",
	SoftDrop:    "soft_drop",
	Rotate:      "rotate",
	HardDrop:    "hard_drop",
	TogglePause: "toggle_pause",
	Restart:     "restart",
}

// Intents returns every intent in declaration order.
func Intents() []Intent {
	return []Intent{MoveLeft, MoveRight, SoftDrop, Rotate, HardDrop, TogglePause, Restart}
}

func (i Intent) String() string {
	if int(i) < len(intentNames) {
		return intentNames[i]
	}
	return "unknown"
}

// ParseIntent accepts the snake_case names used in configuration files.
func ParseIntent(name string) (Intent, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range intentNames {
		if n == name {
			return Intent(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownIntent, name)
}
