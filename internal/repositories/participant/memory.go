package participant

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// memoryRepository keeps the registry in process
type memoryRepository struct {
	mu           sync.RWMutex
	participants map[models.ParticipantID]*models.Participant
}

// NewMemory creates an in-process participant registry
func NewMemory() *memoryRepository {
	return &memoryRepository{
		participants: make(map[models.ParticipantID]*models.Participant),
	}
}

// Online returns every connected participant ordered by ID
func (r *memoryRepository) Online(_ context.Context) ([]*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		c := *p
		out = append(out, &c)
	}
	slices.SortFunc(out, func(a, b *models.Participant) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return out, nil
}

// Get returns a connected participant
func (r *memoryRepository) Get(_ context.Context, id models.ParticipantID) (*models.Participant, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[id]
	if !ok {
		return nil, platform.ErrParticipantNotFound
	}
	c := *p
	return &c, nil
}

// Upsert records a connection
func (r *memoryRepository) Upsert(_ context.Context, input *UpsertInput) error {
	if input == nil || input.Participant == nil {
		return ErrNilInput
	}
	if input.Participant.ID == "" {
		return ErrEmptyID
	}

	c := *input.Participant

	r.mu.Lock()
	defer r.mu.Unlock()
	r.participants[c.ID] = &c
	return nil
}

// Remove drops a connection, a no-op for unknown participants
func (r *memoryRepository) Remove(_ context.Context, input *RemoveInput) error {
	if input == nil || input.ParticipantID == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.participants, input.ParticipantID)
	return nil
}

// UpdateLocation moves a connected participant
func (r *memoryRepository) UpdateLocation(_ context.Context, input *UpdateLocationInput) error {
	if input == nil || input.ParticipantID == "" {
		return ErrEmptyID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[input.ParticipantID]
	if !ok {
		return platform.ErrParticipantNotFound
	}
	p.Location = input.Location
	return nil
}
