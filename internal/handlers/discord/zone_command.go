package discord

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/services/zone"
)

// ZoneService is the part of the zone engine the commands drive
type ZoneService interface {
	Create(ctx context.Context, input *zone.CreateZoneInput) (*models.Zone, error)
	Delete(ctx context.Context, name string) error
	Toggle(ctx context.Context, name string) (bool, error)
	Zones() []*models.Zone
}

// ZoneCommand handles the /zone command
type ZoneCommand struct {
	BaseCommand
	zones  ZoneService
	roster platform.Roster
}

// NewZoneCommand creates the /zone command handler
func NewZoneCommand(zones ZoneService, roster platform.Roster) *ZoneCommand {
	nameOption := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "name",
		Description: "Zone name",
		Required:    true,
	}

	createOptions := []*discordgo.ApplicationCommandOption{
		nameOption,
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "type",
			Description: "What the zone does",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "effect", Value: models.ZoneTypeEffect.String()},
				{Name: "must stay", Value: models.ZoneTypeMustStay.String()},
				{Name: "safe", Value: models.ZoneTypeSafe.String()},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "shape",
			Description: "Zone shape",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "circle", Value: models.ShapeCircle.String()},
				{Name: "square", Value: models.ShapeSquare.String()},
			},
		},
		{Type: discordgo.ApplicationCommandOptionInteger, Name: "radius", Description: "Zone radius in blocks", Required: true},
	}
	createOptions = append(createOptions, locationOptions(
		&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionString, Name: "effect", Description: "Effect for effect zones, e.g. speed"},
		&discordgo.ApplicationCommandOption{Type: discordgo.ApplicationCommandOptionInteger, Name: "amplifier", Description: "Effect level, starting at 0"},
	)...)

	return &ZoneCommand{
		BaseCommand: BaseCommand{
			Name:        "zone",
			Description: "Manage event zones",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "create",
					Description: "Create a zone centered on a participant or coordinates",
					Options:     createOptions,
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "delete",
					Description: "Delete a zone",
					Options:     []*discordgo.ApplicationCommandOption{nameOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "toggle",
					Description: "Turn a zone on or off",
					Options:     []*discordgo.ApplicationCommandOption{nameOption},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "list",
					Description: "List the zones",
				},
			},
		},
		zones:  zones,
		roster: roster,
	}
}

// Handle processes a Discord interaction for the zone command
func (c *ZoneCommand) Handle(s *discordgo.Session, i *discordgo.InteractionCreate) error {
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

func (c *ZoneCommand) execute(ctx context.Context, data discordgo.ApplicationCommandInteractionData) (*reply, error) {
	name, opts := subcommand(data)

	switch name {
	case "create":
		return c.create(ctx, opts)

	case "delete":
		zoneName := opts.getString("name")
		if err := c.zones.Delete(ctx, zoneName); err != nil {
			return nil, err
		}
		return textReply("Zone %s deleted.", zoneName), nil

	case "toggle":
		zoneName := opts.getString("name")
		active, err := c.zones.Toggle(ctx, zoneName)
		if err != nil {
			return nil, err
		}
		if active {
			return textReply("Zone %s is now active.", zoneName), nil
		}
		return textReply("Zone %s is now inactive.", zoneName), nil

	case "list":
		return &reply{embed: renderZones(c.zones.Zones()), ephemeral: true}, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownCommand, name)
}

func (c *ZoneCommand) create(ctx context.Context, opts options) (*reply, error) {
	zoneType, err := models.ParseZoneType(opts.getString("type"))
	if err != nil {
		return nil, err
	}
	shape, err := models.ParseShape(opts.getString("shape"))
	if err != nil {
		return nil, err
	}
	center, err := locate(ctx, c.roster, opts)
	if err != nil {
		return nil, err
	}

	input := &zone.CreateZoneInput{
		Name:   opts.getString("name"),
		Center: *center,
		Shape:  shape,
		Radius: opts.getInt("radius", 0),
		Type:   zoneType,
	}
	if effect := opts.getString("effect"); effect != "" {
		input.Effect = &models.Effect{Type: effect, Amplifier: opts.getInt("amplifier", 0)}
	}

	z, err := c.zones.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	return textReply("Zone created: %s", zone.Describe(z)), nil
}
