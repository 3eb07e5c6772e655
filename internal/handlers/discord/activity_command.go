package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// VoteService runs yes/no votes
type VoteService interface {
	Start(ctx context.Context, question string) error
	End(ctx context.Context) (*models.VoteResult, error)
}

// MinigameService runs the guessing game and countdowns
type MinigameService interface {
	StartGuess(ctx context.Context, max int) error
	StartCountdown(ctx context.Context, seconds int) error
}

// ActivityCommand handles the /activity command
type ActivityCommand struct {
	BaseCommand
	votes     VoteService
	minigames MinigameService
}

// NewActivityCommand creates the /activity command handler
func NewActivityCommand(votes VoteService, minigames MinigameService) *ActivityCommand {
	return &ActivityCommand{
		BaseCommand: BaseCommand{
			Name:        "activity",
			Description: "Votes, guessing games and countdowns",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "vote",
					Description: "Ask everyone a yes or no question",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "question", Description: "The question", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "voteend",
					Description: "End the vote now",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "guess",
					Description: "Start a number guessing game",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "max", Description: "Highest possible number", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "countdown",
					Description: "Count down on screen",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "seconds", Description: "Seconds to count", Required: true},
					},
				},
			},
		},
		votes:     votes,
		minigames: minigames,
	}
}

// Handle processes a Discord interaction for the activity command
func (c *ActivityCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if i.Type != discordgo.InteractionApplicationCommand {
		return nil
	}
	data := i.ApplicationCommandData()
	if data.Name != c.Name {
		return nil
	}

	r, err := c.execute(context.Background(), data)
	return respond(s, i, r, err)
}

func (c *ActivityCommand) execute(ctx context.Context, data discordgo.ApplicationCommandInteractionData) (*reply, error) {
	name, opts := subcommand(data)

	switch name {
	case "vote":
		question := opts.getString("question")
		if question == "" {
			return nil, errMissingArgument
		}
		if err := c.votes.Start(ctx, question); err != nil {
			return nil, err
		}
		return textReply("Vote started: %s", question), nil

	case "voteend":
		result, err := c.votes.End(ctx)
		if err != nil {
			return nil, err
		}
		return &reply{embed: renderVoteResult(result)}, nil

	case "guess":
		if err := c.minigames.StartGuess(ctx, opts.getInt("max", 0)); err != nil {
			return nil, err
		}
		return textReply("Guessing game started."), nil

	case "countdown":
		seconds := opts.getInt("seconds", 0)
		if err := c.minigames.StartCountdown(ctx, seconds); err != nil {
			return nil, err
		}
		return textReply("Counting down from %d.", seconds), nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
}
