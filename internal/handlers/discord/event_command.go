package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/services/event"
)

// DefaultResultsLimit is how many archived events /event results shows
const DefaultResultsLimit = 5

// everyone is the participant argument that targets all participants
const everyone = "all"

// minEffectSeconds is the shortest timed effect the command accepts
var minEffectSeconds float64 = 1

var (
	errNoLocation      = errors.New("give a participant or a world with x, y and z")
	errUnknownCommand  = errors.New("unknown subcommand")
	errUnknownFilter   = errors.New("filter must be alive, eliminated or all")
	errMissingArgument = errors.New("missing argument")
)

// EventService is the part of the event service the commands drive
type EventService interface {
	Start(ctx context.Context, title string) error
	Stop(ctx context.Context) error
	Eliminate(ctx context.Context, id models.ParticipantID) error
	EliminateAll(ctx context.Context) (int, error)
	Revive(ctx context.Context, id models.ParticipantID) error
	ReviveAll(ctx context.Context) (int, error)
	Placements(ctx context.Context, limit int) ([]models.Placement, error)
	SetSpawn(loc *models.Location)
	Spawn() *models.Location
	ToggleMute(ctx context.Context) bool
	Status(ctx context.Context) (*models.EventStatus, error)
	List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error)
	Results(ctx context.Context, limit int) ([]*models.EventResult, error)
	Heal(ctx context.Context, target event.Target) (int, error)
	Freeze(ctx context.Context, target event.Target) (*event.FreezeOutput, error)
	Bring(ctx context.Context, target event.Target, loc *models.Location) (int, error)
	TimedEffect(ctx context.Context, target event.Target, effect models.Effect) (int, error)
	ClearChat(ctx context.Context)
}

// EventCommand handles the /event command
type EventCommand struct {
	BaseCommand
	events         EventService
	roster         platform.Roster
	placementLimit int
}

// NewEventCommand creates the /event command handler
func NewEventCommand(events EventService, roster platform.Roster, placementLimit int) *EventCommand {
	participantOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "participant",
		Description: "Participant ID, or all",
		Required:    true,
	}

	targetOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "target",
		Description: "Participant ID, alive, eliminated or all",
		Required:    true,
	}

	return &EventCommand{
		BaseCommand: BaseCommand{
			Name:        "event",
			Description: "Run elimination events",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "start",
					Description: "Start an event",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "title", Description: "Event title"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "stop",
					Description: "Stop the running event",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "eliminate",
					Description: "Eliminate a participant",
					Options:     []*discordgo.ApplicationCommandOption{participantOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "revive",
					Description: "Revive a participant",
					Options:     []*discordgo.ApplicationCommandOption{participantOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List participants",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "filter",
							Description: "Which participants to list",
							Choices: []*discordgo.ApplicationCommandOptionChoice{
								{Name: "alive", Value: string(models.ParticipantFilterAlive)},
								{Name: "eliminated", Value: string(models.ParticipantFilterEliminated)},
								{Name: "all", Value: string(models.ParticipantFilterAll)},
							},
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "status",
					Description: "Show the event status",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "placements",
					Description: "Show the current placements",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "results",
					Description: "Show recently finished events",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "limit", Description: "How many events"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "mute",
					Description: "Toggle the chat mute",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "clearchat",
					Description: "Push the chat history off screen",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "heal",
					Description: "Heal participants",
					Options:     []*discordgo.ApplicationCommandOption{targetOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "freeze",
					Description: "Freeze or unfreeze participants",
					Options:     []*discordgo.ApplicationCommandOption{targetOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "bring",
					Description: "Teleport participants to a position, spawn by default",
					Options:     append([]*discordgo.ApplicationCommandOption{targetOption}, locationOptions()...),
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "effect",
					Description: "Grant participants an effect for a while",
					Options: []*discordgo.ApplicationCommandOption{
						{Type: discordgo.ApplicationCommandOptionString, Name: "effect", Description: "Effect name, e.g. speed", Required: true},
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "seconds", Description: "How long it lasts", Required: true, MinValue: &minEffectSeconds},
						targetOption,
						{Type: discordgo.ApplicationCommandOptionInteger, Name: "amplifier", Description: "Effect level, starting at 0"},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "spawn",
					Description: "Show or set the spawn point",
					Options:     locationOptions(&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionBoolean, Name: "clear", Description: "Clear the spawn point"}),
				},
			},
		},
		events:         events,
		roster:         roster,
		placementLimit: placementLimit,
	}
}

// Handle processes a Discord interaction for the event command
func (c *EventCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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

func (c *EventCommand) execute(ctx context.Context, data discordgo.ApplicationCommandInteractionData) (*reply, error) {
	name, opts := subcommand(data)
	slog.InfoContext(ctx, "event command", "subcommand", name)

	switch name {
	case "start":
		if err := c.events.Start(ctx, opts.getString("title")); err != nil {
			return nil, err
		}
		return textReply("Event started."), nil

	case "stop":
		if err := c.events.Stop(ctx); err != nil {
			return nil, err
		}
		return textReply("Event stopped."), nil

	case "eliminate":
		target := opts.getString("participant")
		if strings.EqualFold(target, everyone) {
			n, err := c.events.EliminateAll(ctx)
			if err != nil {
				return nil, err
			}
			return textReply("Eliminated %d participants.", n), nil
		}
		if target == "" {
			return nil, errMissingArgument
		}
		if err := c.events.Eliminate(ctx, models.ParticipantID(target)); err != nil {
			return nil, err
		}
		return textReply("Eliminated `%s`.", target), nil

	case "revive":
		target := opts.getString("participant")
		if strings.EqualFold(target, everyone) {
			n, err := c.events.ReviveAll(ctx)
			if err != nil {
				return nil, err
			}
			return textReply("Revived %d participants.", n), nil
		}
		if target == "" {
			return nil, errMissingArgument
		}
		if err := c.events.Revive(ctx, models.ParticipantID(target)); err != nil {
			return nil, err
		}
		return textReply("Revived `%s`.", target), nil

	case "list":
		filter := models.ParticipantFilterAlive
		if f := opts.getString("filter"); f != "" {
			filter = models.ParticipantFilter(strings.ToLower(f))
		}
		switch filter {
		case models.ParticipantFilterAlive, models.ParticipantFilterEliminated, models.ParticipantFilterAll:
		default:
			return nil, errUnknownFilter
		}
		participants, err := c.events.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &reply{embed: renderParticipants(filter, participants), ephemeral: true}, nil

	case "status":
		status, err := c.events.Status(ctx)
		if err != nil {
			return nil, err
		}
		return &reply{embed: renderStatus(status)}, nil

	case "placements":
		placements, err := c.events.Placements(ctx, c.placementLimit)
		if err != nil {
			return nil, err
		}
		return &reply{embed: renderPlacements(placements)}, nil

	case "results":
		results, err := c.events.Results(ctx, opts.getInt("limit", DefaultResultsLimit))
		if err != nil {
			return nil, err
		}
		return &reply{embed: renderResults(results)}, nil

	case "mute":
		if c.events.ToggleMute(ctx) {
			return textReply("Chat muted."), nil
		}
		return textReply("Chat unmuted."), nil

	case "spawn":
		return c.spawn(ctx, opts)

	case "clearchat":
		c.events.ClearChat(ctx)
		return textReply("Chat cleared."), nil

	case "heal":
		target, err := parseTarget(opts.getString("target"))
		if err != nil {
			return nil, err
		}
		n, err := c.events.Heal(ctx, target)
		if err != nil {
			return nil, err
		}
		return textReply("Healed %d participants.", n), nil

	case "freeze":
		target, err := parseTarget(opts.getString("target"))
		if err != nil {
			return nil, err
		}
		output, err := c.events.Freeze(ctx, target)
		if err != nil {
			return nil, err
		}
		return textReply("Froze %d, unfroze %d.", output.Frozen, output.Unfrozen), nil

	case "bring":
		return c.bring(ctx, opts)

	case "effect":
		target, err := parseTarget(opts.getString("target"))
		if err != nil {
			return nil, err
		}
		effect := models.Effect{
			Type:      strings.ToLower(opts.getString("effect")),
			Amplifier: opts.getInt("amplifier", 0),
			Seconds:   opts.getInt("seconds", 0),
		}
		n, err := c.events.TimedEffect(ctx, target, effect)
		if err != nil {
			return nil, err
		}
		return textReply("Applied %s to %d participants for %d seconds.", effect, n, effect.Seconds), nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
}

func (c *EventCommand) spawn(ctx context.Context, opts options) (*reply, error) {
	if opts.getBool("clear") {
		c.events.SetSpawn(nil)
		return textReply("Spawn point cleared."), nil
	}

	if len(opts) == 0 {
		spawn := c.events.Spawn()
		if spawn == nil {
			return &reply{content: "No spawn point set.", ephemeral: true}, nil
		}
		return &reply{content: "Spawn point: " + formatLocation(*spawn), ephemeral: true}, nil
	}

	loc, err := locate(ctx, c.roster, opts)
	if err != nil {
		return nil, err
	}
	c.events.SetSpawn(loc)
	return textReply("Spawn point set to %s.", formatLocation(*loc)), nil
}

func (c *EventCommand) bring(ctx context.Context, opts options) (*reply, error) {
	target, err := parseTarget(opts.getString("target"))
	if err != nil {
		return nil, err
	}

	// with only a target, bring goes to spawn
	var loc *models.Location
	destination := "spawn"
	if len(opts) > 1 {
		loc, err = locate(ctx, c.roster, opts)
		if err != nil {
			return nil, err
		}
		destination = formatLocation(*loc)
	}

	n, err := c.events.Bring(ctx, target, loc)
	if err != nil {
		return nil, err
	}
	return textReply("Brought %d participants to %s.", n, destination), nil
}

// parseTarget reads a participant ID or one of the group names
func parseTarget(raw string) (event.Target, error) {
	switch filter := models.ParticipantFilter(strings.ToLower(raw)); filter {
	case "":
		return event.Target{}, errMissingArgument
	case models.ParticipantFilterAll, models.ParticipantFilterAlive, models.ParticipantFilterEliminated:
		return event.Target{Filter: filter}, nil
	}
	return event.Target{ID: models.ParticipantID(raw)}, nil
}

// locationOptions are the options that name a position, plus extra
func locationOptions(extra ...*discordgo.ApplicationCommandOption) []*discordgo.ApplicationCommandOption {
	opts := []*discordgo.ApplicationCommandOption{
		{Type: discordgo.ApplicationCommandOptionString, Name: "participant", Description: "Use this participant's position"},
		{Type: discordgo.ApplicationCommandOptionString, Name: "world", Description: "World name"},
		{Type: discordgo.ApplicationCommandOptionNumber, Name: "x", Description: "X coordinate"},
		{Type: discordgo.ApplicationCommandOptionNumber, Name: "y", Description: "Y coordinate"},
		{Type: discordgo.ApplicationCommandOptionNumber, Name: "z", Description: "Z coordinate"},
	}
	return append(opts, extra...)
}

// locate resolves a position from a participant or explicit coordinates
func locate(ctx context.Context, roster platform.Roster, opts options) (*models.Location, error) {
	if id := opts.getString("participant"); id != "" {
		p, err := roster.Get(ctx, models.ParticipantID(id))
		if err != nil {
			return nil, err
		}
		loc := p.Location
		return &loc, nil
	}

	world := opts.getString("world")
	x, okX := opts.getFloat("x")
	y, okY := opts.getFloat("y")
	z, okZ := opts.getFloat("z")
	if world == "" || !okX || !okY || !okZ {
		return nil, errNoLocation
	}
	return &models.Location{World: world, X: x, Y: y, Z: z}, nil
}

func formatLocation(l models.Location) string {
	return fmt.Sprintf("%s (%.1f, %.1f, %.1f)", l.World, l.X, l.Y, l.Z)
}
