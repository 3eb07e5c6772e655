package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/services/team"
)

// TeamService is the part of the team coordinator the commands drive
type TeamService interface {
	CreateTeam(ctx context.Context, input *team.CreateTeamInput) (*models.Team, error)
	Assign(ctx context.Context, id models.ParticipantID, name string) error
	Balance(ctx context.Context) error
	SetColor(ctx context.Context, name string, color models.TeamColor) error
	Teams() []*models.Team
}

// TeamDeleter deletes teams through the event service so victory is re-checked
type TeamDeleter interface {
	DeleteTeam(ctx context.Context, name string) (*team.DeleteTeamOutput, error)
}

// TeamCommand handles the /team command
type TeamCommand struct {
	BaseCommand
	teams   TeamService
	deleter TeamDeleter
}

// NewTeamCommand creates the /team command handler
func NewTeamCommand(teams TeamService, deleter TeamDeleter) *TeamCommand {
	nameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Team name",
		Required:    true,
	}
	colorOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "color",
		Description: "Team color, e.g. red or light_purple",
	}

	return &TeamCommand{
		BaseCommand: BaseCommand{
			Name:        "team",
			Description: "Manage event teams",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a team",
					Options:     []*discordgo.ApplicationCommandOption{nameOption, colorOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a team",
					Options:     []*discordgo.ApplicationCommandOption{nameOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "assign",
					Description: "Move a participant onto a team",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "participant", Description: "Participant ID", Required: true},
						nameOption,
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "balance",
					Description: "Spread connected participants evenly over the teams",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "color",
					Description: "Change a team color",
					Options: []*discordgo.ApplicationCommandOption{
						nameOption,
						{Type: discordgo.ApplicationCommandOptionString, Name: "color", Description: "Team color", Required: true},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the teams",
				},
			},
		},
		teams:   teams,
		deleter: deleter,
	}
}

// Handle processes a Discord interaction for the team command
func (c *TeamCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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

func (c *TeamCommand) execute(ctx context.Context, data discordgo.ApplicationCommandInteractionData) (*reply, error) {
	name, opts := subcommand(data)

	switch name {
	case "create":
		input := &team.CreateTeamInput{Name: opts.getString("name")}
		if raw := opts.getString("color"); raw != "" {
			color, err := models.ParseTeamColor(raw)
			if err != nil {
				return nil, err
			}
			input.Color = color
		}
		t, err := c.teams.CreateTeam(ctx, input)
		if err != nil {
			return nil, err
		}
		return textReply("Team %s (%s) created.", t.Name, t.Color), nil

	case "delete":
		output, err := c.deleter.DeleteTeam(ctx, opts.getString("name"))
		if err != nil {
			return nil, err
		}
		msg := fmt.Sprintf("Deleted %s.", strings.Join(output.Deleted, ", "))
		if n := len(output.Reassigned); n > 0 {
			msg += fmt.Sprintf(" %d members moved to other teams.", n)
		}
		return textReply("%s", msg), nil

	case "assign":
		id := opts.getString("participant")
		teamName := opts.getString("name")
		if err := c.teams.Assign(ctx, models.ParticipantID(id), teamName); err != nil {
			return nil, err
		}
		return textReply("Moved `%s` to %s.", id, teamName), nil

	case "balance":
		if err := c.teams.Balance(ctx); err != nil {
			return nil, err
		}
		return &reply{embed: renderTeams(c.teams.Teams())}, nil

	case "color":
		color, err := models.ParseTeamColor(opts.getString("color"))
		if err != nil {
			return nil, err
		}
		if err := c.teams.SetColor(ctx, opts.getString("name"), color); err != nil {
			return nil, err
		}
		return textReply("Team color set to %s.", color), nil

	case "list":
		return &reply{embed: renderTeams(c.teams.Teams()), ephemeral: true}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
}
