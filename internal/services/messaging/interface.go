package messaging

import "github.com/KirkDiggler/eventtools/internal/models"

// Service builds the text of every announcement the engine makes
type Service interface {
	// GetEliminationMessage returns the broadcast for an elimination
	GetEliminationMessage(input *GetEliminationMessageInput) string

	// GetRevivalMessage returns the broadcast for a revival
	GetRevivalMessage(name string) string

	// GetEventStartedMessage returns the title shown when an event starts
	GetEventStartedMessage(title string) *TitleOutput

	// GetEventStoppedMessage returns the broadcast for a manual stop
	GetEventStoppedMessage(title string) string

	// GetWinnerMessage returns the title for the end of an event
	GetWinnerMessage(input *GetWinnerMessageInput) *TitleOutput

	// GetPlacementsMessage renders the ranked finishers, one per line
	GetPlacementsMessage(placements []models.Placement) string

	// GetVoteStartedMessage returns the broadcast for a new vote
	GetVoteStartedMessage(question string, seconds int) string

	// GetVoteReminderMessage returns the reminder broadcast while a vote runs
	GetVoteReminderMessage(question string, secondsLeft int) string

	// GetVoteResultMessage renders the tally of a finished vote
	GetVoteResultMessage(result *models.VoteResult) string

	// GetBallotRecordedMessage returns the private confirmation of a ballot
	GetBallotRecordedMessage(yes bool) string

	// GetGuessStartedMessage returns the broadcast for a new guess round
	GetGuessStartedMessage(max int) string

	// GetGuessWinnerMessage returns the broadcast for a correct guess
	GetGuessWinnerMessage(name string, number int) string

	// GetCountdownMessage returns the title for a countdown second, "GO!" at zero
	GetCountdownMessage(secondsLeft int) *TitleOutput

	// GetChatMutedMessage returns the broadcast for a mute toggle
	GetChatMutedMessage(muted bool) string

	// GetMutedNoticeMessage returns the private notice for a swallowed message
	GetMutedNoticeMessage() string

	// GetTeamModeEndedMessage returns the broadcast when team play collapses
	GetTeamModeEndedMessage(deleted []string) string

	// GetHealedMessage returns the private notice for a heal
	GetHealedMessage() string

	// GetFrozenMessage returns the private notice for a freeze toggle
	GetFrozenMessage(frozen bool) string

	// GetBroughtMessage returns the private notice for being teleported
	GetBroughtMessage(destination string) string

	// GetTimedEffectMessage returns the private notice for a timed effect
	GetTimedEffectMessage(effect models.Effect) string

	// GetChatClearedMessage returns the broadcast after the chat is cleared
	GetChatClearedMessage() string
}
