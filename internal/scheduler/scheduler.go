// Package scheduler drives the engine's periodic passes and timer tasks.
//
// Periodic passes registered with Every run on their own goroutine and fire on
// their own period without coordinating with each other. Deferred work
// (NextTick) and repeating timer tasks (Repeat) are stepped by the base clock
// once per tick.
package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

// DefaultTickInterval is the length of one tick
const DefaultTickInterval = 50 * time.Millisecond

// ErrAlreadyRunning is returned when Run is called twice
var ErrAlreadyRunning = errors.New("scheduler already running")

// Task is a unit of deferred or periodic work
type Task func(ctx context.Context)

// RepeatingTask runs every few ticks until it returns false or is stopped
type RepeatingTask func(ctx context.Context) bool

// TaskScheduler is the part of the scheduler services depend on
type TaskScheduler interface {
	// NextTick runs fn on the next tick
	NextTick(fn Task)

	// Repeat runs fn every ticks until fn returns false or stop is called.
	// A step already in flight may still run after stop returns; tasks must
	// check their own epoch before acting.
	Repeat(ticks int, fn RepeatingTask) (stop func())
}

// Config holds configuration for the scheduler
type Config struct {
	// TickInterval is the length of one tick, DefaultTickInterval when zero
	TickInterval time.Duration
}

type pass struct {
	name  string
	ticks int
	fn    Task
}

type repeating struct {
	every     int
	remaining int
	fn        RepeatingTask
	stopped   atomic.Bool
}

// Scheduler implements TaskScheduler on a fixed tick
type Scheduler struct {
	interval time.Duration
	running  atomic.Bool

	mu       sync.Mutex
	passes   []pass
	deferred []Task
	repeats  map[uint64]*repeating
	nextID   uint64
	ticks    uint64
}

// New creates a scheduler
func New(cfg *Config) *Scheduler {
	interval := DefaultTickInterval
	if cfg != nil && cfg.TickInterval > 0 {
		interval = cfg.TickInterval
	}

	return &Scheduler{
		interval: interval,
		repeats:  make(map[uint64]*repeating),
	}
}

// Interval returns the length of one tick
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// TicksPer converts a duration to a whole number of ticks, at least one
func (s *Scheduler) TicksPer(d time.Duration) int {
	n := int(d / s.interval)
	if n < 1 {
		return 1
	}
	return n
}

// Every registers a periodic pass. Passes must be registered before Run.
func (s *Scheduler) Every(name string, ticks int, fn Task) {
	if ticks < 1 {
		ticks = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.passes = append(s.passes, pass{name: name, ticks: ticks, fn: fn})
}

// NextTick queues fn for the next tick
func (s *Scheduler) NextTick(fn Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deferred = append(s.deferred, fn)
}

// Repeat runs fn every ticks until fn returns false or stop is called
func (s *Scheduler) Repeat(ticks int, fn RepeatingTask) func() {
	if ticks < 1 {
		ticks = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	r := &repeating{every: ticks, remaining: ticks, fn: fn}
	s.repeats[id] = r

	return func() {
		r.stopped.Store(true)
		s.mu.Lock()
		delete(s.repeats, id)
		s.mu.Unlock()
	}
}

// Pending returns the number of queued deferred tasks and live repeating tasks
func (s *Scheduler) Pending() (deferred, repeats int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deferred), len(s.repeats)
}

// Tick advances the base clock by one tick: deferred tasks queued before the
// tick run first, then repeating tasks that are due. Run calls Tick on every
// interval; tests call it directly.
func (s *Scheduler) Tick(ctx context.Context) {
	s.mu.Lock()
	s.ticks++
	deferred := s.deferred
	s.deferred = nil

	var due []*repeating
	for _, r := range s.repeats {
		r.remaining--
		if r.remaining <= 0 {
			r.remaining = r.every
			due = append(due, r)
		}
	}
	s.mu.Unlock()

	for _, fn := range deferred {
		fn(ctx)
	}

	for _, r := range due {
		if r.stopped.Load() {
			continue
		}
		if !r.fn(ctx) {
			r.stopped.Store(true)
			s.removeStopped()
		}
	}
}

// Advance runs n ticks
func (s *Scheduler) Advance(ctx context.Context, n int) {
	for i := 0; i < n; i++ {
		s.Tick(ctx)
	}
}

func (s *Scheduler) removeStopped() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, r := range s.repeats {
		if r.stopped.Load() {
			delete(s.repeats, id)
		}
	}
}

// Run drives the base clock and every registered pass until ctx is cancelled
func (s *Scheduler) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer s.running.Store(false)

	s.mu.Lock()
	passes := append([]pass(nil), s.passes...)
	s.mu.Unlock()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return s.loop(ctx, "clock", s.interval, s.Tick)
	})

	for _, p := range passes {
		g.Go(func() error {
			return s.loop(ctx, p.name, s.interval*time.Duration(p.ticks), p.fn)
		})
	}

	slog.InfoContext(ctx, "scheduler started", "interval", s.interval, "passes", len(passes))
	return g.Wait()
}

func (s *Scheduler) loop(ctx context.Context, name string, every time.Duration, fn Task) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.DebugContext(ctx, "scheduler pass stopped", "pass", name)
			return nil
		case <-ticker.C:
			fn(ctx)
		}
	}
}
