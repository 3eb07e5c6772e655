// Package lifecycle holds the event-active flag shared by every service.
//
// The event service is the only writer. Every other service reads IsActive to
// gate behavior and Epoch to notice that a new activation discarded their
// per-event state.
package lifecycle

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// Gate is the Idle/Active flag of the event
type Gate struct {
	active atomic.Bool
	epoch  atomic.Uint64

	mu        sync.RWMutex
	title     string
	startedAt time.Time
	runID     string
}

// NewGate returns an idle gate
func NewGate() *Gate {
	return &Gate{}
}

// Open flips the gate Idle to Active. It returns false when the gate was
// already active.
func (g *Gate) Open(title string, startedAt time.Time, runID string) bool {
	if !g.active.CompareAndSwap(false, true) {
		return false
	}

	g.mu.Lock()
	g.title = title
	g.startedAt = startedAt
	g.runID = runID
	g.mu.Unlock()

	g.epoch.Add(1)
	return true
}

// Close flips the gate Active to Idle. Exactly one of any number of concurrent
// callers observes true; that caller owns the teardown.
func (g *Gate) Close() bool {
	return g.active.CompareAndSwap(true, false)
}

// IsActive reports whether an event is running
func (g *Gate) IsActive() bool {
	return g.active.Load()
}

// Epoch returns the number of activations so far
func (g *Gate) Epoch() uint64 {
	return g.epoch.Load()
}

// Snapshot returns the current lifecycle state. Title, start time and run ID
// keep describing the last activation after the gate closes.
func (g *Gate) Snapshot() models.EventState {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return models.EventState{
		Active:    g.active.Load(),
		Title:     g.title,
		StartedAt: g.startedAt,
		RunID:     g.runID,
		Epoch:     g.epoch.Load(),
	}
}
