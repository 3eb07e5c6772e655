package team

// TeamError is a custom error type for team-related errors
type TeamError string

// Error implements the error interface
func (e TeamError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrTeamLimit           TeamError = "maximum number of teams reached"
	ErrTeamExists          TeamError = "a team with that name already exists"
	ErrTeamNotFound        TeamError = "team not found"
	ErrInvalidTeamName     TeamError = "invalid team name"
	ErrInvalidColor        TeamError = "invalid team color"
	ErrNoTeams             TeamError = "no teams exist"
	ErrParticipantExempt   TeamError = "exempt participants cannot join teams"
	ErrParticipantNotFound TeamError = "participant is not connected"
	ErrNilConfig           TeamError = "config cannot be nil"
	ErrNilGate             TeamError = "lifecycle gate cannot be nil"
	ErrNilEliminations     TeamError = "elimination reader cannot be nil"
	ErrNilRoster           TeamError = "roster cannot be nil"
	ErrNilEffects          TeamError = "effects cannot be nil"
	ErrNilRoller           TeamError = "dice roller cannot be nil"
)
