package event

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/services/team"
)

// Service is the event lifecycle: start and stop, eliminations, victory
// detection and the platform hooks
type Service interface {
	// Start moves the event from Idle to Active
	Start(ctx context.Context, title string) error

	// Stop moves the event from Active to Idle and tears it down
	Stop(ctx context.Context) error

	// IsActive reports whether an event is running
	IsActive() bool

	// Eliminate eliminates a participant on behalf of an administrator
	Eliminate(ctx context.Context, id models.ParticipantID) error

	// EliminateAll eliminates every connected, non-exempt participant
	EliminateAll(ctx context.Context) (int, error)

	// Revive brings an eliminated participant back into play
	Revive(ctx context.Context, id models.ParticipantID) error

	// ReviveAll revives every connected, eliminated participant
	ReviveAll(ctx context.Context) (int, error)

	// HandleElimination is the shared elimination path. It returns false when
	// nothing changed.
	HandleElimination(ctx context.Context, p *models.Participant, reason string) bool

	// CheckForEventEnd runs victory detection
	CheckForEventEnd(ctx context.Context)

	// Placements ranks the current finishers
	Placements(ctx context.Context, limit int) ([]models.Placement, error)

	// DeleteTeam deletes a team and re-runs victory detection
	DeleteTeam(ctx context.Context, name string) (*team.DeleteTeamOutput, error)

	// SetSpawn sets the location participants are returned to
	SetSpawn(loc *models.Location)

	// Spawn returns the configured spawn, nil when unset
	Spawn() *models.Location

	// ToggleMute flips the chat mute and returns the new value
	ToggleMute(ctx context.Context) bool

	// Status returns the flattened engine state
	Status(ctx context.Context) (*models.EventStatus, error)

	// List returns connected, non-exempt participants matching filter
	List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error)

	// Heal restores every targeted participant and returns how many were healed
	Heal(ctx context.Context, target Target) (int, error)

	// Freeze toggles movement of every targeted participant
	Freeze(ctx context.Context, target Target) (*FreezeOutput, error)

	// Bring teleports every targeted participant to loc, or to spawn when loc
	// is nil
	Bring(ctx context.Context, target Target, loc *models.Location) (int, error)

	// TimedEffect grants an effect that the platform expires after
	// effect.Seconds
	TimedEffect(ctx context.Context, target Target, effect models.Effect) (int, error)

	// ClearChat pushes the chat history off screen
	ClearChat(ctx context.Context)

	// Results returns recently archived events, newest first
	Results(ctx context.Context, limit int) ([]*models.EventResult, error)

	// OnJoin handles a participant connecting
	OnJoin(ctx context.Context, p *models.Participant)

	// OnQuit handles a participant disconnecting
	OnQuit(ctx context.Context, id models.ParticipantID)

	// OnDeath handles a participant being incapacitated
	OnDeath(ctx context.Context, id models.ParticipantID)

	// OnChat interprets a chat message and reports whether it was consumed
	OnChat(ctx context.Context, p *models.Participant, message string) bool

	// Shutdown tears down a running event without announcing a winner
	Shutdown(ctx context.Context)
}
