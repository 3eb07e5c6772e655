package messaging

import (
	"errors"
	"fmt"
	"strings"

	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/models"
)

// service implements the Service interface
type service struct {
	roller dice.Roller
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	if config == nil {
		return nil, errors.New("config cannot be nil")
	}
	if config.Roller == nil {
		return nil, errors.New("dice roller cannot be nil")
	}

	return &service{
		roller: config.Roller,
	}, nil
}

func (s *service) pick(options []string) string {
	return options[s.roller.Roll(len(options))-1]
}

// GetEliminationMessage returns a dynamic message for an elimination
func (s *service) GetEliminationMessage(input *GetEliminationMessageInput) string {
	if input == nil {
		return ""
	}

	name := input.PlayerName
	if input.TeamName != "" {
		name = fmt.Sprintf("[%s] %s", input.TeamName, input.PlayerName)
	}

	var message string
	if input.Reason != "" {
		message = fmt.Sprintf("%s has been eliminated: %s!", name, input.Reason)
	} else {
		message = s.pick([]string{
			fmt.Sprintf("%s has been eliminated!", name),
			fmt.Sprintf("%s is out of the event!", name),
			fmt.Sprintf("%s has fallen!", name),
			fmt.Sprintf("And just like that, %s is gone!", name),
		})
	}

	if input.Remaining > 0 {
		message += fmt.Sprintf(" %d remaining.", input.Remaining)
	}
	return message
}

// GetRevivalMessage returns the broadcast for a revival
func (s *service) GetRevivalMessage(name string) string {
	return fmt.Sprintf("%s has been revived!", name)
}

// GetEventStartedMessage returns the title shown when an event starts
func (s *service) GetEventStartedMessage(title string) *TitleOutput {
	return &TitleOutput{
		Title:    title,
		Subtitle: s.pick([]string{"The event has started!", "Last one standing wins!", "Good luck!"}),
	}
}

// GetEventStoppedMessage returns the broadcast for a manual stop
func (s *service) GetEventStoppedMessage(title string) string {
	if title == "" {
		return "The event has been stopped."
	}
	return fmt.Sprintf("%s has been stopped.", title)
}

// GetWinnerMessage returns the title for the end of an event
func (s *service) GetWinnerMessage(input *GetWinnerMessageInput) *TitleOutput {
	if input == nil {
		return &TitleOutput{Title: "Event over"}
	}

	switch input.Kind {
	case WinnerKindSolo:
		return &TitleOutput{
			Title:    fmt.Sprintf("%s wins!", input.Name),
			Subtitle: s.pick([]string{"Last one standing!", "Champion of " + input.EventTitle, "Unstoppable!"}),
		}
	case WinnerKindTeam:
		return &TitleOutput{
			Title:    fmt.Sprintf("Team %s wins!", input.Name),
			Subtitle: "The last team standing!",
		}
	case WinnerKindNoTeam:
		return &TitleOutput{
			Title:    "All teams eliminated",
			Subtitle: "Nobody wins this time.",
		}
	default:
		return &TitleOutput{
			Title:    "No winner",
			Subtitle: "Everyone has been eliminated.",
		}
	}
}

// GetPlacementsMessage renders the ranked finishers, one per line
func (s *service) GetPlacementsMessage(placements []models.Placement) string {
	if len(placements) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Final placements:")
	for _, p := range placements {
		fmt.Fprintf(&b, "\n%s: %s", p.Label, p.Name)
	}
	return b.String()
}

// GetVoteStartedMessage returns the broadcast for a new vote
func (s *service) GetVoteStartedMessage(question string, seconds int) string {
	return fmt.Sprintf("VOTE: %s Type yes or no in chat. %d seconds to vote!", question, seconds)
}

// GetVoteReminderMessage returns the reminder broadcast while a vote runs
func (s *service) GetVoteReminderMessage(question string, secondsLeft int) string {
	return fmt.Sprintf("%d seconds left to vote: %s", secondsLeft, question)
}

// GetVoteResultMessage renders the tally of a finished vote
func (s *service) GetVoteResultMessage(result *models.VoteResult) string {
	if result == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Vote results: %s", result.Question)
	fmt.Fprintf(&b, "\nYes: %d (%.1f%%)", result.Yes, result.YesPercent)
	fmt.Fprintf(&b, "\nNo: %d (%.1f%%)", result.No, result.NoPercent)
	fmt.Fprintf(&b, "\nTotal voters: %d/%d", result.TotalVoters, result.TotalConnected)
	return b.String()
}

// GetBallotRecordedMessage returns the private confirmation of a ballot
func (s *service) GetBallotRecordedMessage(yes bool) string {
	if yes {
		return "Your vote has been recorded: YES"
	}
	return "Your vote has been recorded: NO"
}

// GetGuessStartedMessage returns the broadcast for a new guess round
func (s *service) GetGuessStartedMessage(max int) string {
	return fmt.Sprintf("Guess the number between 1 and %d! First correct guess in chat wins.", max)
}

// GetGuessWinnerMessage returns the broadcast for a correct guess
func (s *service) GetGuessWinnerMessage(name string, number int) string {
	return fmt.Sprintf("%s guessed the number %d!", name, number)
}

// GetCountdownMessage returns the title for a countdown second
func (s *service) GetCountdownMessage(secondsLeft int) *TitleOutput {
	if secondsLeft <= 0 {
		return &TitleOutput{Title: "GO!"}
	}
	return &TitleOutput{Title: fmt.Sprintf("%d", secondsLeft)}
}

// GetChatMutedMessage returns the broadcast for a mute toggle
func (s *service) GetChatMutedMessage(muted bool) string {
	if muted {
		return "Chat has been muted."
	}
	return "Chat has been unmuted."
}

// GetMutedNoticeMessage returns the private notice for a swallowed message
func (s *service) GetMutedNoticeMessage() string {
	return "Chat is currently muted."
}

// GetTeamModeEndedMessage returns the broadcast when team play collapses
func (s *service) GetTeamModeEndedMessage(deleted []string) string {
	return fmt.Sprintf("Teams %s removed. Team play has ended.", strings.Join(deleted, ", "))
}

// GetHealedMessage returns the private notice for a heal
func (s *service) GetHealedMessage() string {
	return "You have been healed!"
}

// GetFrozenMessage returns the private notice for a freeze toggle
func (s *service) GetFrozenMessage(frozen bool) string {
	if frozen {
		return "You have been frozen!"
	}
	return "You have been unfrozen!"
}

// GetBroughtMessage returns the private notice for being teleported
func (s *service) GetBroughtMessage(destination string) string {
	return fmt.Sprintf("You were brought to %s.", destination)
}

// GetTimedEffectMessage returns the private notice for a timed effect
func (s *service) GetTimedEffectMessage(effect models.Effect) string {
	name := strings.ReplaceAll(strings.ToLower(effect.Type), "_", " ")
	if effect.Amplifier > 0 {
		name = fmt.Sprintf("level %d %s", effect.Amplifier+1, name)
	}
	return fmt.Sprintf("You received %s for %d seconds!", name, effect.Seconds)
}

// GetChatClearedMessage returns the broadcast after the chat is cleared
func (s *service) GetChatClearedMessage() string {
	return "Chat has been cleared."
}
