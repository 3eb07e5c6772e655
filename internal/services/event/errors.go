package event

// EventError is a custom error type for event-related errors
type EventError string

// Error implements the error interface
func (e EventError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrEventActive         EventError = "an event is already running"
	ErrEventNotActive      EventError = "no event is running"
	ErrNotEnoughTeams      EventError = "team play needs at least two teams with members"
	ErrParticipantNotFound EventError = "participant not found"
	ErrParticipantExempt   EventError = "participant is exempt"
	ErrAlreadyEliminated   EventError = "participant is already eliminated"
	ErrNotEliminated       EventError = "participant is not eliminated"
	ErrInvalidTarget       EventError = "target must be a participant, alive, eliminated or all"
	ErrNoDestination       EventError = "no destination given and no spawn point set"
	ErrInvalidEffect       EventError = "effect needs a type, a duration and a non-negative amplifier"
	ErrNilConfig           EventError = "config cannot be nil"
	ErrNilGate             EventError = "lifecycle gate cannot be nil"
	ErrNilTracker          EventError = "elimination tracker cannot be nil"
	ErrNilTeams            EventError = "team coordinator cannot be nil"
	ErrNilVotes            EventError = "vote controller cannot be nil"
	ErrNilMinigames        EventError = "minigame controller cannot be nil"
	ErrNilRoster           EventError = "roster cannot be nil"
	ErrNilEffects          EventError = "effects cannot be nil"
	ErrNilAnnouncer        EventError = "announcer cannot be nil"
	ErrNilMessaging        EventError = "messaging service cannot be nil"
	ErrNilScheduler        EventError = "scheduler cannot be nil"
	ErrNilClock            EventError = "clock cannot be nil"
	ErrNilUUIDGenerator    EventError = "UUID generator cannot be nil"
)
