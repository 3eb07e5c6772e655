// Package platform declares the host platform collaborators the engine drives.
//
// The engine never owns connection state or presentation. It reads the live
// roster, pushes gameplay effects onto participants and announces outcomes
// through these interfaces; adapters in internal/handlers implement them.
package platform

import (
	"context"
	"errors"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// ErrParticipantNotFound is returned when a participant is not connected
var ErrParticipantNotFound = errors.New("participant not found")

//go:generate mockgen -package=mocks -destination=mocks/mock_platform.go github.com/KirkDiggler/eventtools/internal/platform Roster,Effects,Announcer

// Roster is the live-connection registry
type Roster interface {
	// Online returns every connected participant, exempt ones included
	Online(ctx context.Context) ([]*models.Participant, error)

	// Get returns a connected participant or ErrParticipantNotFound
	Get(ctx context.Context, id models.ParticipantID) (*models.Participant, error)
}

// Effects mutates the gameplay state of a participant on the platform
type Effects interface {
	// ApplyEffect grants a buff
	ApplyEffect(ctx context.Context, id models.ParticipantID, effect models.Effect) error

	// ClearEffect removes a buff by type
	ClearEffect(ctx context.Context, id models.ParticipantID, effectType string) error

	// SetInvulnerable toggles damage immunity
	SetInvulnerable(ctx context.Context, id models.ParticipantID, invulnerable bool) error

	// SetEliminated moves the participant out of play
	SetEliminated(ctx context.Context, id models.ParticipantID) error

	// Restore returns the participant to baseline: full health, no effects,
	// default movement, and a teleport to spawn when spawn is set
	Restore(ctx context.Context, id models.ParticipantID, spawn *models.Location) error

	// SetTeamDisplay sets the team marker of the participant, nil clears it
	SetTeamDisplay(ctx context.Context, id models.ParticipantID, display *models.TeamDisplay) error

	// Heal restores full health and hunger, puts out fire and clears effects
	Heal(ctx context.Context, id models.ParticipantID) error

	// SetFrozen locks or releases movement. A frozen participant is also
	// invulnerable.
	SetFrozen(ctx context.Context, id models.ParticipantID, frozen bool) error

	// Teleport moves the participant to loc
	Teleport(ctx context.Context, id models.ParticipantID, loc *models.Location) error
}

// Announcer delivers messages and celebrations to participants
type Announcer interface {
	// Broadcast sends a message to everyone
	Broadcast(ctx context.Context, message string) error

	// Title shows a large title to everyone
	Title(ctx context.Context, title, subtitle string) error

	// Tell sends a message to one participant
	Tell(ctx context.Context, id models.ParticipantID, message string) error

	// Firework launches one celebratory burst at the participant
	Firework(ctx context.Context, id models.ParticipantID) error
}
