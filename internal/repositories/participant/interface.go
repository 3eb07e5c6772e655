package participant

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

var (
	_ Repository      = (*memoryRepository)(nil)
	_ Repository      = (*redisRepository)(nil)
	_ platform.Roster = Repository(nil)
)

// Repository is the registry of live connections. It satisfies
// platform.Roster so the engine can read it directly.
type Repository interface {
	// Online returns every connected participant ordered by ID
	Online(ctx context.Context) ([]*models.Participant, error)

	// Get returns a connected participant or platform.ErrParticipantNotFound
	Get(ctx context.Context, id models.ParticipantID) (*models.Participant, error)

	// Upsert records a connection, replacing any previous record
	Upsert(ctx context.Context, input *UpsertInput) error

	// Remove drops a connection
	Remove(ctx context.Context, input *RemoveInput) error

	// UpdateLocation moves a connected participant
	UpdateLocation(ctx context.Context, input *UpdateLocationInput) error
}
