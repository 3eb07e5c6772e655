package team

import (
	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// DefaultMaxTeams is the team limit when none is configured
const DefaultMaxTeams = 16

// EliminationReader reports elimination status
type EliminationReader interface {
	IsEliminated(id models.ParticipantID) bool
}

// Config holds the dependencies of the coordinator
type Config struct {
	// Gate reports whether an event is running
	Gate *lifecycle.Gate

	// Eliminations reports who is out
	Eliminations EliminationReader

	// Roster lists connected participants
	Roster platform.Roster

	// Effects shows team markers
	Effects platform.Effects

	// Roller shuffles participants when balancing
	Roller dice.Roller

	// MaxTeams bounds the number of teams, DefaultMaxTeams when zero
	MaxTeams int
}

// CreateTeamInput contains parameters for creating a team
type CreateTeamInput struct {
	// Name is the display name, unique case-insensitively
	Name string

	// Color is the display color, white when empty
	Color models.TeamColor
}

// DeleteTeamOutput describes what a deletion changed
type DeleteTeamOutput struct {
	// Deleted are the names of every removed team, the requested one first
	Deleted []string

	// Reassigned are orphaned members moved onto remaining teams
	Reassigned map[models.ParticipantID]string
}
