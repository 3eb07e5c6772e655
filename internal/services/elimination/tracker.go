// Package elimination tracks the alive/eliminated partition of an event.
package elimination

import (
	"slices"
	"sync"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// Tracker owns the eliminated set, the elimination order and the set of
// eliminated participants who disconnected. It holds no broadcast dependency;
// callers announce and run the victory check.
type Tracker struct {
	mu           sync.RWMutex
	eliminated   map[models.ParticipantID]struct{}
	order        []models.ParticipantID
	disconnected map[models.ParticipantID]struct{}
}

// New returns an empty tracker
func New() *Tracker {
	return &Tracker{
		eliminated:   make(map[models.ParticipantID]struct{}),
		disconnected: make(map[models.ParticipantID]struct{}),
	}
}

// Eliminate records p as eliminated. It returns false when p is exempt or
// already eliminated.
func (t *Tracker) Eliminate(p *models.Participant) bool {
	if p == nil || p.Exempt {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.eliminated[p.ID]; ok {
		return false
	}
	t.eliminated[p.ID] = struct{}{}

	// A revived participant keeps its old entry; move it to the tail so the
	// order holds each participant once, ranked by latest elimination.
	if i := slices.Index(t.order, p.ID); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	t.order = append(t.order, p.ID)
	return true
}

// Revive removes p from the eliminated set. The order entry is retained.
func (t *Tracker) Revive(p *models.Participant) bool {
	if p == nil || p.Exempt {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.eliminated[p.ID]; !ok {
		return false
	}
	delete(t.eliminated, p.ID)
	delete(t.disconnected, p.ID)
	return true
}

// IsEliminated reports whether id is currently eliminated
func (t *Tracker) IsEliminated(id models.ParticipantID) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.eliminated[id]
	return ok
}

// Order returns a copy of the elimination order, revived entries included
func (t *Tracker) Order() []models.ParticipantID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return slices.Clone(t.order)
}

// Placements ranks the finishers: the sole survivor first when remaining holds
// exactly one participant, then currently eliminated participants from the most
// recent elimination backwards. The result holds no duplicates and at most
// limit entries.
func (t *Tracker) Placements(remaining []models.ParticipantID, limit int) []models.ParticipantID {
	if limit <= 0 {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	seen := make(map[models.ParticipantID]struct{}, limit)
	out := make([]models.ParticipantID, 0, limit)

	if len(remaining) == 1 {
		out = append(out, remaining[0])
		seen[remaining[0]] = struct{}{}
	}

	for i := len(t.order) - 1; i >= 0 && len(out) < limit; i-- {
		id := t.order[i]
		if _, ok := t.eliminated[id]; !ok {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}

// MarkDisconnected records that an eliminated participant left. It returns
// false when id is not eliminated.
func (t *Tracker) MarkDisconnected(id models.ParticipantID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.eliminated[id]; !ok {
		return false
	}
	t.disconnected[id] = struct{}{}
	return true
}

// ConsumeDisconnected reports whether id left while eliminated and forgets it
func (t *Tracker) ConsumeDisconnected(id models.ParticipantID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.disconnected[id]; !ok {
		return false
	}
	delete(t.disconnected, id)
	return true
}

// Reset clears the eliminated set, the order and the disconnected set together
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	clear(t.eliminated)
	clear(t.disconnected)
	t.order = nil
}
