package minigame

// MinigameError is a custom error type for minigame-related errors
type MinigameError string

// Error implements the error interface
func (e MinigameError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrGuessActive     MinigameError = "a guessing round is already active"
	ErrNoGuessActive   MinigameError = "no guessing round is active"
	ErrInvalidMax      MinigameError = "maximum number must be at least 1"
	ErrCountdownActive MinigameError = "a countdown is already running"
	ErrInvalidSeconds  MinigameError = "countdown must be at least 1 second"
	ErrNilConfig       MinigameError = "config cannot be nil"
	ErrNilAnnouncer    MinigameError = "announcer cannot be nil"
	ErrNilScheduler    MinigameError = "scheduler cannot be nil"
	ErrNilMessaging    MinigameError = "messaging service cannot be nil"
	ErrNilRoller       MinigameError = "dice roller cannot be nil"
)
