package loop

import (
	"github.com/google/uuid"
	"github.com/plus3/ootris/engine"
)

// Factory builds a fresh, not yet started game.
type Factory func() *engine.Game

// Session owns the current game instance. Games are never reused: a restart
// discards the current one and asks the factory for a new one.
type Session struct {
	factory Factory
	game    *engine.Game
	id      uuid.UUID
	games   int
}

// NewSession creates a session holding a new, not yet started game.
func NewSession(factory Factory) *Session {
	s := &Session{factory: factory}
	s.replace()
	return s
}

// Game returns the current game instance.
func (s *Session) Game() *engine.Game {
	return s.game
}

// ID identifies the current game instance.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Games returns how many game instances the session has created.
func (s *Session) Games() int {
	return s.games
}

// Restart starts the current game if it has not started, otherwise replaces
// it with a fresh instance and starts that.
func (s *Session) Restart() engine.Outcome {
	if s.game.State() != engine.NotStarted {
		s.replace()
	}
	return s.game.Start()
}

func (s *Session) replace() {
	s.game = s.factory()
	s.id = uuid.New()
	s.games++
}
