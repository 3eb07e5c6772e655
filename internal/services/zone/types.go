package zone

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// DefaultMaxRadius is the radius clamp when none is configured
const DefaultMaxRadius = 50

// EliminationReader reports elimination status
type EliminationReader interface {
	IsEliminated(id models.ParticipantID) bool
}

// Eliminator routes a confinement violation through the shared elimination path
type Eliminator interface {
	HandleElimination(ctx context.Context, p *models.Participant, reason string) bool
}

// Config holds the dependencies of the engine
type Config struct {
	Gate         *lifecycle.Gate
	Eliminations EliminationReader
	Roster       platform.Roster
	Effects      platform.Effects
	Eliminator   Eliminator

	// MaxRadius clamps zone radii, DefaultMaxRadius when zero
	MaxRadius int
}

// CreateZoneInput contains parameters for creating a zone
type CreateZoneInput struct {
	Name   string
	Center models.Location
	Shape  models.Shape
	Radius int
	Type   models.ZoneType

	// Effect is required for effect zones and rejected for the others
	Effect *models.Effect
}
