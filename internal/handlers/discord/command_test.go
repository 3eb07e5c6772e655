package discord

import (
	"context"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/repositories/participant"
	"github.com/KirkDiggler/eventtools/internal/services/event"
	"github.com/KirkDiggler/eventtools/internal/services/team"
	"github.com/KirkDiggler/eventtools/internal/services/zone"
)

func invoke(command, sub string, opts ...*discordgo.ApplicationCommandInteractionDataOption) discordgo.ApplicationCommandInteractionData {
	return discordgo.ApplicationCommandInteractionData{
		Name: command,
		Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: sub, Type: discordgo.ApplicationCommandOptionSubCommand, Options: opts},
		},
	}
}

func strOpt(name, value string) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionString, Value: value}
}

func intOpt(name string, value int) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionInteger, Value: float64(value)}
}

func numOpt(name string, value float64) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionNumber, Value: value}
}

func boolOpt(name string, value bool) *discordgo.ApplicationCommandInteractionDataOption {
	return &discordgo.ApplicationCommandInteractionDataOption{Name: name, Type: discordgo.ApplicationCommandOptionBoolean, Value: value}
}

type fakeEvents struct {
	started    string
	stopped    bool
	eliminated []models.ParticipantID
	revived    []models.ParticipantID
	spawn      *models.Location
	muted      bool
	filter     models.ParticipantFilter
	limit      int
	target     event.Target
	brought    *models.Location
	effect     models.Effect
	cleared    bool
	err        error
}

func (f *fakeEvents) Start(_ context.Context, title string) error {
	f.started = title
	return f.err
}

func (f *fakeEvents) Stop(context.Context) error {
	f.stopped = true
	return f.err
}

func (f *fakeEvents) Eliminate(_ context.Context, id models.ParticipantID) error {
	f.eliminated = append(f.eliminated, id)
	return f.err
}

func (f *fakeEvents) EliminateAll(context.Context) (int, error) { return 3, f.err }

func (f *fakeEvents) Revive(_ context.Context, id models.ParticipantID) error {
	f.revived = append(f.revived, id)
	return f.err
}

func (f *fakeEvents) ReviveAll(context.Context) (int, error) { return 2, f.err }

func (f *fakeEvents) Placements(_ context.Context, limit int) ([]models.Placement, error) {
	f.limit = limit
	return []models.Placement{{Rank: 1, ParticipantID: "a", Name: "Alice", Label: models.PlacementFirst}}, f.err
}

func (f *fakeEvents) SetSpawn(loc *models.Location) { f.spawn = loc }

func (f *fakeEvents) Spawn() *models.Location { return f.spawn }

func (f *fakeEvents) ToggleMute(context.Context) bool {
	f.muted = !f.muted
	return f.muted
}

func (f *fakeEvents) Status(context.Context) (*models.EventStatus, error) {
	return &models.EventStatus{Active: true, Title: "Spleef", AliveCount: 2, TotalCount: 3, EliminatedCount: 1}, f.err
}

func (f *fakeEvents) List(_ context.Context, filter models.ParticipantFilter) ([]*models.Participant, error) {
	f.filter = filter
	return []*models.Participant{{ID: "a", Name: "Alice"}}, f.err
}

func (f *fakeEvents) Results(_ context.Context, limit int) ([]*models.EventResult, error) {
	f.limit = limit
	return nil, f.err
}

func (f *fakeEvents) Heal(_ context.Context, target event.Target) (int, error) {
	f.target = target
	return 4, f.err
}

func (f *fakeEvents) Freeze(_ context.Context, target event.Target) (*event.FreezeOutput, error) {
	f.target = target
	return &event.FreezeOutput{Frozen: 3, Unfrozen: 1}, f.err
}

func (f *fakeEvents) Bring(_ context.Context, target event.Target, loc *models.Location) (int, error) {
	f.target = target
	f.brought = loc
	return 2, f.err
}

func (f *fakeEvents) TimedEffect(_ context.Context, target event.Target, effect models.Effect) (int, error) {
	f.target = target
	f.effect = effect
	return 1, f.err
}

func (f *fakeEvents) ClearChat(context.Context) { f.cleared = true }

type fakeTeams struct {
	teams    []*models.Team
	assigned map[models.ParticipantID]string
	balanced bool
	deleted  string
}

func (f *fakeTeams) CreateTeam(_ context.Context, input *team.CreateTeamInput) (*models.Team, error) {
	color := input.Color
	if color == "" {
		color = models.TeamColorWhite
	}
	t := &models.Team{Name: input.Name, Color: color}
	f.teams = append(f.teams, t)
	return t, nil
}

func (f *fakeTeams) Assign(_ context.Context, id models.ParticipantID, name string) error {
	f.assigned[id] = name
	return nil
}

func (f *fakeTeams) Balance(context.Context) error {
	f.balanced = true
	return nil
}

func (f *fakeTeams) SetColor(_ context.Context, name string, color models.TeamColor) error {
	for _, t := range f.teams {
		if t.Name == name {
			t.Color = color
		}
	}
	return nil
}

func (f *fakeTeams) Teams() []*models.Team { return f.teams }

func (f *fakeTeams) DeleteTeam(_ context.Context, name string) (*team.DeleteTeamOutput, error) {
	f.deleted = name
	return &team.DeleteTeamOutput{
		Deleted:    []string{name},
		Reassigned: map[models.ParticipantID]string{"a": "Blue"},
	}, nil
}

type fakeZones struct {
	created *zone.CreateZoneInput
	deleted string
	active  bool
}

func (f *fakeZones) Create(_ context.Context, input *zone.CreateZoneInput) (*models.Zone, error) {
	f.created = input
	return &models.Zone{Name: input.Name, Center: input.Center, Shape: input.Shape, Radius: input.Radius, Type: input.Type, Effect: input.Effect, Active: true}, nil
}

func (f *fakeZones) Delete(_ context.Context, name string) error {
	f.deleted = name
	return nil
}

func (f *fakeZones) Toggle(context.Context, string) (bool, error) {
	f.active = !f.active
	return f.active, nil
}

func (f *fakeZones) Zones() []*models.Zone { return nil }

type fakeActivities struct {
	question  string
	guessMax  int
	countdown int
}

func (f *fakeActivities) Start(_ context.Context, question string) error {
	f.question = question
	return nil
}

func (f *fakeActivities) End(context.Context) (*models.VoteResult, error) {
	return &models.VoteResult{Question: f.question, Yes: 3, No: 1, YesPercent: 75, NoPercent: 25, TotalVoters: 4, TotalConnected: 5}, nil
}

func (f *fakeActivities) StartGuess(_ context.Context, max int) error {
	f.guessMax = max
	return nil
}

func (f *fakeActivities) StartCountdown(_ context.Context, seconds int) error {
	f.countdown = seconds
	return nil
}

type CommandTestSuite struct {
	suite.Suite
	ctx        context.Context
	roster     participant.Repository
	events     *fakeEvents
	teams      *fakeTeams
	zones      *fakeZones
	activities *fakeActivities

	eventCmd    *EventCommand
	teamCmd     *TeamCommand
	zoneCmd     *ZoneCommand
	activityCmd *ActivityCommand
}

func (s *CommandTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.roster = participant.NewMemory()
	s.events = &fakeEvents{}
	s.teams = &fakeTeams{assigned: make(map[models.ParticipantID]string)}
	s.zones = &fakeZones{}
	s.activities = &fakeActivities{}

	s.Require().NoError(s.roster.Upsert(s.ctx, &participant.UpsertInput{
		Participant: &models.Participant{ID: "steve", Name: "Steve", Location: models.Location{World: "arena", X: 1, Y: 64, Z: -3}},
	}))

	s.eventCmd = NewEventCommand(s.events, s.roster, 4)
	s.teamCmd = NewTeamCommand(s.teams, s.teams)
	s.zoneCmd = NewZoneCommand(s.zones, s.roster)
	s.activityCmd = NewActivityCommand(s.activities, s.activities)
}

func (s *CommandTestSuite) TestCommandsRequireManageServer() {
	for _, cmd := range []CommandHandler{s.eventCmd, s.teamCmd, s.zoneCmd, s.activityCmd} {
		def := cmd.GetCommand()
		s.Equal(cmd.GetName(), def.Name)
		s.Require().NotNil(def.DefaultMemberPermissions)
		s.Equal(int64(discordgo.PermissionManageServer), *def.DefaultMemberPermissions)
	}
}

func (s *CommandTestSuite) TestEventStartAndStop() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "start", strOpt("title", " Spleef ")))
	s.Require().NoError(err)
	s.Equal("Event started.", r.content)
	s.Equal("Spleef", s.events.started)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "stop"))
	s.Require().NoError(err)
	s.True(s.events.stopped)
}

func (s *CommandTestSuite) TestEventEliminateAndRevive() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "eliminate", strOpt("participant", "steve")))
	s.Require().NoError(err)
	s.Equal([]models.ParticipantID{"steve"}, s.events.eliminated)
	s.Contains(r.content, "steve")

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "eliminate", strOpt("participant", "ALL")))
	s.Require().NoError(err)
	s.Equal("Eliminated 3 participants.", r.content)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "revive", strOpt("participant", "all")))
	s.Require().NoError(err)
	s.Equal("Revived 2 participants.", r.content)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "revive", strOpt("participant", "")))
	s.ErrorIs(err, errMissingArgument)
}

func (s *CommandTestSuite) TestEventErrorsPassThrough() {
	s.events.err = errUnknownFilter
	_, err := s.eventCmd.execute(s.ctx, invoke("event", "start"))
	s.ErrorIs(err, errUnknownFilter)
}

func (s *CommandTestSuite) TestEventList() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "list"))
	s.Require().NoError(err)
	s.Equal(models.ParticipantFilterAlive, s.events.filter)
	s.True(r.ephemeral)
	s.Require().NotNil(r.embed)
	s.Contains(r.embed.Description, "Alice")

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "list", strOpt("filter", "Eliminated")))
	s.Require().NoError(err)
	s.Equal(models.ParticipantFilterEliminated, s.events.filter)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "list", strOpt("filter", "zombies")))
	s.ErrorIs(err, errUnknownFilter)
}

func (s *CommandTestSuite) TestEventStatusPlacementsResults() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "status"))
	s.Require().NoError(err)
	s.Equal("Spleef", r.embed.Title)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "placements"))
	s.Require().NoError(err)
	s.Equal(4, s.events.limit)
	s.Contains(r.embed.Description, "**1st** Alice")

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "results"))
	s.Require().NoError(err)
	s.Equal(DefaultResultsLimit, s.events.limit)
	s.Equal("No finished events yet.", r.embed.Description)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "results", intOpt("limit", 2)))
	s.Require().NoError(err)
	s.Equal(2, s.events.limit)
}

func (s *CommandTestSuite) TestEventMuteToggles() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "mute"))
	s.Require().NoError(err)
	s.Equal("Chat muted.", r.content)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "mute"))
	s.Require().NoError(err)
	s.Equal("Chat unmuted.", r.content)
}

func (s *CommandTestSuite) TestEventSpawn() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "spawn"))
	s.Require().NoError(err)
	s.Equal("No spawn point set.", r.content)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "spawn", strOpt("participant", "steve")))
	s.Require().NoError(err)
	s.Require().NotNil(s.events.spawn)
	s.Equal("arena", s.events.spawn.World)
	s.Equal(64.0, s.events.spawn.Y)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "spawn",
		strOpt("world", "lobby"), numOpt("x", 0.5), numOpt("y", 70), numOpt("z", 2)))
	s.Require().NoError(err)
	s.Equal(models.Location{World: "lobby", X: 0.5, Y: 70, Z: 2}, *s.events.spawn)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "spawn"))
	s.Require().NoError(err)
	s.Equal("Spawn point: lobby (0.5, 70.0, 2.0)", r.content)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "spawn", strOpt("world", "lobby"), numOpt("x", 1)))
	s.ErrorIs(err, errNoLocation)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "spawn", boolOpt("clear", true)))
	s.Require().NoError(err)
	s.Nil(s.events.spawn)
}

func (s *CommandTestSuite) TestEventGroupActions() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "heal", strOpt("target", "Alive")))
	s.Require().NoError(err)
	s.Equal("Healed 4 participants.", r.content)
	s.Equal(event.Target{Filter: models.ParticipantFilterAlive}, s.events.target)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "freeze", strOpt("target", "steve")))
	s.Require().NoError(err)
	s.Equal("Froze 3, unfroze 1.", r.content)
	s.Equal(event.Target{ID: "steve"}, s.events.target)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "heal", strOpt("target", "")))
	s.ErrorIs(err, errMissingArgument)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "effect",
		strOpt("effect", "SPEED"), intOpt("seconds", 30), strOpt("target", "eliminated"), intOpt("amplifier", 1)))
	s.Require().NoError(err)
	s.Equal(models.Effect{Type: "speed", Amplifier: 1, Seconds: 30}, s.events.effect)
	s.Equal(event.Target{Filter: models.ParticipantFilterEliminated}, s.events.target)
	s.Equal("Applied speed:1 to 1 participants for 30 seconds.", r.content)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "clearchat"))
	s.Require().NoError(err)
	s.True(s.events.cleared)
	s.Equal("Chat cleared.", r.content)
}

func (s *CommandTestSuite) TestEventBring() {
	r, err := s.eventCmd.execute(s.ctx, invoke("event", "bring", strOpt("target", "all")))
	s.Require().NoError(err)
	s.Nil(s.events.brought)
	s.Equal("Brought 2 participants to spawn.", r.content)

	r, err = s.eventCmd.execute(s.ctx, invoke("event", "bring", strOpt("target", "alive"), strOpt("participant", "steve")))
	s.Require().NoError(err)
	s.Require().NotNil(s.events.brought)
	s.Equal(models.Location{World: "arena", X: 1, Y: 64, Z: -3}, *s.events.brought)
	s.Equal("Brought 2 participants to arena (1.0, 64.0, -3.0).", r.content)

	_, err = s.eventCmd.execute(s.ctx, invoke("event", "bring", strOpt("target", "all"), strOpt("world", "lobby")))
	s.ErrorIs(err, errNoLocation)

	s.events.err = event.ErrNoDestination
	_, err = s.eventCmd.execute(s.ctx, invoke("event", "bring", strOpt("target", "all")))
	s.ErrorIs(err, event.ErrNoDestination)
}

func (s *CommandTestSuite) TestUnknownSubcommand() {
	_, err := s.eventCmd.execute(s.ctx, invoke("event", "teleport"))
	s.ErrorIs(err, errUnknownCommand)

	_, err = s.zoneCmd.execute(s.ctx, invoke("zone", "teleport"))
	s.ErrorIs(err, errUnknownCommand)
}

func (s *CommandTestSuite) TestTeamCommands() {
	r, err := s.teamCmd.execute(s.ctx, invoke("team", "create", strOpt("name", "Red"), strOpt("color", "RED")))
	s.Require().NoError(err)
	s.Equal("Team Red (red) created.", r.content)

	_, err = s.teamCmd.execute(s.ctx, invoke("team", "create", strOpt("name", "Mauve"), strOpt("color", "mauve")))
	s.Error(err)

	_, err = s.teamCmd.execute(s.ctx, invoke("team", "assign", strOpt("participant", "steve"), strOpt("name", "Red")))
	s.Require().NoError(err)
	s.Equal("Red", s.teams.assigned["steve"])

	r, err = s.teamCmd.execute(s.ctx, invoke("team", "balance"))
	s.Require().NoError(err)
	s.True(s.teams.balanced)
	s.Len(r.embed.Fields, 1)

	_, err = s.teamCmd.execute(s.ctx, invoke("team", "color", strOpt("name", "Red"), strOpt("color", "gold")))
	s.Require().NoError(err)
	s.Equal(models.TeamColor("gold"), s.teams.teams[0].Color)

	r, err = s.teamCmd.execute(s.ctx, invoke("team", "delete", strOpt("name", "Red")))
	s.Require().NoError(err)
	s.Equal("Red", s.teams.deleted)
	s.Equal("Deleted Red. 1 members moved to other teams.", r.content)
}

func (s *CommandTestSuite) TestZoneCreateFromParticipant() {
	r, err := s.zoneCmd.execute(s.ctx, invoke("zone", "create",
		strOpt("name", "Boost"), strOpt("type", "effect"), strOpt("shape", "circle"), intOpt("radius", 5),
		strOpt("participant", "steve"), strOpt("effect", "speed"), intOpt("amplifier", 1)))
	s.Require().NoError(err)

	input := s.zones.created
	s.Require().NotNil(input)
	s.Equal(models.ZoneTypeEffect, input.Type)
	s.Equal(models.ShapeCircle, input.Shape)
	s.Equal(5, input.Radius)
	s.Equal("arena", input.Center.World)
	s.Require().NotNil(input.Effect)
	s.Equal(models.Effect{Type: "speed", Amplifier: 1}, *input.Effect)
	s.Contains(r.content, "Boost")
}

func (s *CommandTestSuite) TestZoneCreateFromCoordinates() {
	_, err := s.zoneCmd.execute(s.ctx, invoke("zone", "create",
		strOpt("name", "Ring"), strOpt("type", "must_stay"), strOpt("shape", "square"), intOpt("radius", 20),
		strOpt("world", "arena"), numOpt("x", 0), numOpt("y", 64), numOpt("z", 0)))
	s.Require().NoError(err)
	s.Equal(models.ZoneTypeMustStay, s.zones.created.Type)
	s.Nil(s.zones.created.Effect)

	_, err = s.zoneCmd.execute(s.ctx, invoke("zone", "create",
		strOpt("name", "Ring"), strOpt("type", "lava"), strOpt("shape", "square"), intOpt("radius", 20)))
	s.Error(err)

	_, err = s.zoneCmd.execute(s.ctx, invoke("zone", "create",
		strOpt("name", "Ring"), strOpt("type", "safe"), strOpt("shape", "square"), intOpt("radius", 20)))
	s.ErrorIs(err, errNoLocation)
}

func (s *CommandTestSuite) TestZoneToggleDeleteList() {
	r, err := s.zoneCmd.execute(s.ctx, invoke("zone", "toggle", strOpt("name", "Ring")))
	s.Require().NoError(err)
	s.Equal("Zone Ring is now active.", r.content)

	r, err = s.zoneCmd.execute(s.ctx, invoke("zone", "toggle", strOpt("name", "Ring")))
	s.Require().NoError(err)
	s.Equal("Zone Ring is now inactive.", r.content)

	_, err = s.zoneCmd.execute(s.ctx, invoke("zone", "delete", strOpt("name", "Ring")))
	s.Require().NoError(err)
	s.Equal("Ring", s.zones.deleted)

	r, err = s.zoneCmd.execute(s.ctx, invoke("zone", "list"))
	s.Require().NoError(err)
	s.Equal("No zones.", r.embed.Description)
}

func (s *CommandTestSuite) TestActivityCommands() {
	r, err := s.activityCmd.execute(s.ctx, invoke("activity", "vote", strOpt("question", "Lava round?")))
	s.Require().NoError(err)
	s.Equal("Vote started: Lava round?", r.content)

	_, err = s.activityCmd.execute(s.ctx, invoke("activity", "vote"))
	s.ErrorIs(err, errMissingArgument)

	r, err = s.activityCmd.execute(s.ctx, invoke("activity", "voteend"))
	s.Require().NoError(err)
	s.Equal("Lava round?", r.embed.Description)
	s.Equal("3 (75.0%)", r.embed.Fields[0].Value)
	s.Equal("4 of 5", r.embed.Fields[2].Value)

	_, err = s.activityCmd.execute(s.ctx, invoke("activity", "guess", intOpt("max", 100)))
	s.Require().NoError(err)
	s.Equal(100, s.activities.guessMax)

	r, err = s.activityCmd.execute(s.ctx, invoke("activity", "countdown", intOpt("seconds", 10)))
	s.Require().NoError(err)
	s.Equal(10, s.activities.countdown)
	s.Equal("Counting down from 10.", r.content)
}

func TestCommandTestSuite(t *testing.T) {
	suite.Run(t, new(CommandTestSuite))
}
