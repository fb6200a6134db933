// Package loop hosts an engine.Game: it turns player intents and elapsed time
// into engine calls, runs them through an ordered pipeline of systems and
// fans the resulting outcomes out to presentation listeners. Everything runs
// on the goroutine that calls Once or Run.
package loop

import (
	"context"
	"log/slog"
	"reflect"
	"time"

	"github.com/plus3/ootris/engine"
	"github.com/plus3/ootris/internal/ctxlog"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Frames          int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order.
type Scheduler struct {
	session     *Session
	logger      *slog.Logger
	systems     []System
	systemStats []*systemStatsInternal

	pending []Intent
	carry   []engine.Outcome
	frames  int64
}

// NewScheduler creates a scheduler for session. The logger is taken from ctx.
func NewScheduler(ctx context.Context, session *Session) *Scheduler {
	return &Scheduler{
		session: session,
		logger:  ctxlog.FromContext(ctx),
		systems: make([]System, 0),
	}
}

// NewDefaultScheduler registers the standard pipeline: input, gravity,
// logging and then the given listeners.
func NewDefaultScheduler(ctx context.Context, session *Session, listeners ...Listener) *Scheduler {
	s := NewScheduler(ctx, session)
	s.Register(&InputSystem{})
	s.Register(&GravitySystem{})
	s.Register(&LogSystem{})
	s.Register(&ListenerSystem{Listeners: listeners})
	return s
}

// Register appends a system to the pipeline.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Session returns the session the scheduler drives.
func (s *Scheduler) Session() *Session {
	return s.session
}

// Push queues an intent for the next frame. It must be called from the
// goroutine that runs the scheduler.
func (s *Scheduler) Push(intent Intent) {
	s.pending = append(s.pending, intent)
}

// Once executes all registered systems once with the given delta time in
// seconds, then runs deferred commands.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Session:   s.session,
		Commands:  newCommands(),
		Logger:    s.logger,
		outcomes:  s.carry,
	}
	s.carry = nil
	for _, intent := range s.pending {
		frame.Commands.Push(intent)
	}
	s.pending = s.pending[:0]

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	mark := len(frame.outcomes)
	frame.Commands.Flush()
	s.frames++

	// Outcomes produced by deferred commands reach the systems next frame.
	if deferred := frame.outcomes[mark:]; len(deferred) > 0 {
		s.carry = append([]engine.Outcome(nil), deferred...)
	}
}

// Run executes all systems repeatedly at the given interval until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			dt := now.Sub(lastTime).Seconds()
			lastTime = now
			s.Once(dt)
		}
	}
}

// GetStats returns statistics about system execution.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Frames:      s.frames,
		Systems:     make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		minDuration := internal.minDuration
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		} else {
			minDuration = 0
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
