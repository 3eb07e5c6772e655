package results

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// Repository archives finished events
type Repository interface {
	// SaveResult persists a finished event
	SaveResult(ctx context.Context, result *models.EventResult) error

	// GetResult retrieves a finished event by run ID
	GetResult(ctx context.Context, runID string) (*models.EventResult, error)

	// GetRecent returns up to limit finished events, newest first
	GetRecent(ctx context.Context, limit int) ([]*models.EventResult, error)
}
