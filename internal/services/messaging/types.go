package messaging

import "github.com/KirkDiggler/eventtools/internal/dice"

// ServiceConfig holds configuration for the messaging service
type ServiceConfig struct {
	// Roller picks between message variants
	Roller dice.Roller
}

// GetEliminationMessageInput contains parameters for an elimination message
type GetEliminationMessageInput struct {
	// PlayerName is the name of the eliminated participant
	PlayerName string

	// TeamName is the participant's team, empty outside team play
	TeamName string

	// Reason explains the elimination, e.g. "left the zone"; empty for deaths
	// and admin eliminations
	Reason string

	// Remaining is the number of participants still standing
	Remaining int
}

// WinnerKind is the outcome a winner message describes
type WinnerKind string

const (
	// WinnerKindSolo names a single survivor
	WinnerKindSolo WinnerKind = "solo"

	// WinnerKindTeam names a surviving team
	WinnerKindTeam WinnerKind = "team"

	// WinnerKindNone means everyone was eliminated or the survivor left
	WinnerKindNone WinnerKind = "none"

	// WinnerKindNoTeam means every team was eliminated
	WinnerKindNoTeam WinnerKind = "no_team"
)

// GetWinnerMessageInput contains parameters for a winner message
type GetWinnerMessageInput struct {
	Kind WinnerKind

	// Name is the winning participant or team
	Name string

	// EventTitle is the title the event ran under
	EventTitle string
}

// TitleOutput is a title with its subtitle
type TitleOutput struct {
	Title    string
	Subtitle string
}
