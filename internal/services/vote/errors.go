package vote

// VoteError is a custom error type for vote-related errors
type VoteError string

// Error implements the error interface
func (e VoteError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrVoteInProgress   VoteError = "a vote is already in progress"
	ErrNoVoteInProgress VoteError = "no vote in progress"
	ErrEmptyQuestion    VoteError = "question cannot be empty"
	ErrNilConfig        VoteError = "config cannot be nil"
	ErrNilAnnouncer     VoteError = "announcer cannot be nil"
	ErrNilRoster        VoteError = "roster cannot be nil"
	ErrNilScheduler     VoteError = "scheduler cannot be nil"
	ErrNilMessaging     VoteError = "messaging service cannot be nil"
)
