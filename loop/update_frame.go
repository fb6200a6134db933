package loop

import (
	"log/slog"

	"github.com/plus3/ootris/engine"
)

// UpdateFrame is the per-frame context handed to every system.
type UpdateFrame struct {
	DeltaTime float64
	Session   *Session
	Commands  *Commands
	Logger    *slog.Logger

	outcomes  []engine.Outcome
	delivered int
}

// Game is shorthand for the session's current game.
func (f *UpdateFrame) Game() *engine.Game {
	return f.Session.Game()
}

// Emit records an engine outcome for the listener systems of this frame.
func (f *UpdateFrame) Emit(out engine.Outcome) {
	if out.Kind == engine.OutcomeIgnored {
		return
	}
	f.outcomes = append(f.outcomes, out)
}

// Outcomes returns every outcome emitted so far in this frame.
func (f *UpdateFrame) Outcomes() []engine.Outcome {
	return f.outcomes
}

// drain returns the outcomes not yet handed to listeners.
func (f *UpdateFrame) drain() []engine.Outcome {
	pending := f.outcomes[f.delivered:]
	f.delivered = len(f.outcomes)
	return pending
}
