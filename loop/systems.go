package loop

import (
	"github.com/plus3/ootris/engine"
)

// InputSystem forwards the frame's intents to the game in arrival order. A
// restart is deferred to the end of the frame and discards the intents queued
// behind it.
type InputSystem struct{}

func (s *InputSystem) Execute(frame *UpdateFrame) {
	game := frame.Game()

	for _, intent := range frame.Commands.TakeIntents() {
		switch intent {
		case MoveLeft:
			frame.Emit(game.Move(engine.Left))
		case MoveRight:
			frame.Emit(game.Move(engine.Right))
		case SoftDrop:
			frame.Emit(game.Move(engine.Down))
		case Rotate:
			frame.Emit(game.Rotate())
		case HardDrop:
			frame.Emit(game.HardDrop())
		case TogglePause:
			frame.Emit(game.TogglePause())
		case Restart:
			session := frame.Session
			frame.Commands.Defer(func() {
				frame.Emit(session.Restart())
			})
			return
		}
	}
}

// GravitySystem calls Tick each time the current drop interval elapses while
// the game is running. At most one tick is applied per frame; a backlog
// longer than one interval is dropped.
type GravitySystem struct {
	accumulator float64
	game        *engine.Game
}

func (s *GravitySystem) Execute(frame *UpdateFrame) {
	game := frame.Game()
	if game != s.game {
		s.game = game
		s.accumulator = 0
	}

	if game.State() != engine.Running {
		s.accumulator = 0
		return
	}

	s.accumulator += frame.DeltaTime
	interval := game.DropInterval().Seconds()
	if s.accumulator < interval {
		return
	}

	s.accumulator -= interval
	if s.accumulator > interval {
		s.accumulator = 0
	}
	frame.Emit(game.Tick())
}

// Listener receives every outcome that changed or was refused by the game.
type Listener interface {
	OnOutcome(out engine.Outcome)
}

// ListenerFunc adapts a function to the Listener interface.
type ListenerFunc func(out engine.Outcome)

func (f ListenerFunc) OnOutcome(out engine.Outcome) { f(out) }

// ListenerSystem hands the frame's new outcomes to each listener.
type ListenerSystem struct {
	Listeners []Listener
}

func (s *ListenerSystem) Execute(frame *UpdateFrame) {
	for _, out := range frame.drain() {
		for _, l := range s.Listeners {
			l.OnOutcome(out)
		}
	}
}

// LogSystem writes structured records for game lifecycle events.
type LogSystem struct{}

func (s *LogSystem) Execute(frame *UpdateFrame) {
	game := frame.Game()
	id := frame.Session.ID().String()

	for _, out := range frame.Outcomes() {
		switch {
		case out.Kind == engine.OutcomeStarted:
			frame.Logger.Info("Game started.", "game", id, "first", out.Spawned.String())
		case out.LinesCleared > 0:
			frame.Logger.Debug("Lines cleared.", "game", id, "rows", out.LinesCleared, "score", game.Score())
		}
		if out.LevelUp {
			frame.Logger.Info("Level up.", "game", id, "level", game.Level(), "interval", game.DropInterval())
		}
		if out.GameOver {
			frame.Logger.Info("Game over.", "game", id, "score", game.Score(), "lines", game.Lines(), "level", game.Level())
		}
	}
}
