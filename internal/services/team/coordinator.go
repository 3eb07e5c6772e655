// Package team owns team rosters, balancing and the team standing used for
// team victory.
package team

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/KirkDiggler/eventtools/internal/common/names"
	"github.com/KirkDiggler/eventtools/internal/dice"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
)

// Coordinator owns the team rosters. A participant belongs to at most one team.
// Display markers are pushed while the roster lock is held so markers follow
// roster order.
type Coordinator struct {
	gate         *lifecycle.Gate
	eliminations EliminationReader
	roster       platform.Roster
	effects      platform.Effects
	roller       dice.Roller
	maxTeams     int

	mu       sync.RWMutex
	teams    map[string]*models.Team
	order    []string
	memberOf map[models.ParticipantID]string
}

// New creates a team coordinator
func New(cfg *Config) (*Coordinator, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Gate == nil {
		return nil, ErrNilGate
	}
	if cfg.Eliminations == nil {
		return nil, ErrNilEliminations
	}
	if cfg.Roster == nil {
		return nil, ErrNilRoster
	}
	if cfg.Effects == nil {
		return nil, ErrNilEffects
	}
	if cfg.Roller == nil {
		return nil, ErrNilRoller
	}

	maxTeams := cfg.MaxTeams
	if maxTeams <= 0 {
		maxTeams = DefaultMaxTeams
	}

	return &Coordinator{
		gate:         cfg.Gate,
		eliminations: cfg.Eliminations,
		roster:       cfg.Roster,
		effects:      cfg.Effects,
		roller:       cfg.Roller,
		maxTeams:     maxTeams,
		teams:        make(map[string]*models.Team),
		memberOf:     make(map[models.ParticipantID]string),
	}, nil
}

// CreateTeam adds an empty team
func (c *Coordinator) CreateTeam(ctx context.Context, input *CreateTeamInput) (*models.Team, error) {
	if input == nil || !names.Valid(input.Name) {
		return nil, ErrInvalidTeamName
	}

	color := input.Color
	if color == "" {
		color = models.TeamColorWhite
	} else if _, err := models.ParseTeamColor(string(color)); err != nil {
		return nil, ErrInvalidColor
	}

	key := names.Key(input.Name)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.teams[key]; ok {
		return nil, ErrTeamExists
	}
	if len(c.teams) >= c.maxTeams {
		return nil, ErrTeamLimit
	}

	t := &models.Team{Name: input.Name, Color: color}
	c.teams[key] = t
	c.order = append(c.order, key)

	slog.InfoContext(ctx, "team created", "team", t.Name, "color", t.Color)
	return cloneTeam(t), nil
}

// DeleteTeam removes a team and clears its members' markers. During an event,
// deleting down to a single team tears that team down as well; otherwise the
// orphaned members are moved onto the smallest remaining teams.
func (c *Coordinator) DeleteTeam(ctx context.Context, name string) (*DeleteTeamOutput, error) {
	key := names.Key(name)

	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.teams[key]
	if !ok {
		return nil, ErrTeamNotFound
	}

	output := &DeleteTeamOutput{
		Deleted:    []string{t.Name},
		Reassigned: make(map[models.ParticipantID]string),
	}
	orphans := slices.Clone(t.Members)
	c.removeTeamLocked(ctx, key)

	if !c.gate.IsActive() {
		return output, nil
	}

	if len(c.teams) == 1 {
		last := c.order[0]
		output.Deleted = append(output.Deleted, c.teams[last].Name)
		c.removeTeamLocked(ctx, last)
		slog.InfoContext(ctx, "team mode ended, one team left", "deleted", output.Deleted)
		return output, nil
	}

	for _, id := range orphans {
		if c.eliminations.IsEliminated(id) {
			continue
		}
		if _, err := c.roster.Get(ctx, id); err != nil {
			continue
		}
		if target := c.smallestLocked(); target != nil {
			c.addLocked(ctx, id, target)
			output.Reassigned[id] = target.Name
		}
	}

	return output, nil
}

// Assign moves a participant onto the named team
func (c *Coordinator) Assign(ctx context.Context, id models.ParticipantID, name string) error {
	p, err := c.roster.Get(ctx, id)
	if errors.Is(err, platform.ErrParticipantNotFound) {
		return ErrParticipantNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to look up participant %s: %w", id, err)
	}
	if p.Exempt {
		return ErrParticipantExempt
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.teams[names.Key(name)]
	if !ok {
		return ErrTeamNotFound
	}

	c.addLocked(ctx, id, t)
	return nil
}

// Balance redistributes every connected non-exempt participant and every
// current member round-robin over the teams. Participant order and team order
// are shuffled independently and existing rosters are overwritten.
func (c *Coordinator) Balance(ctx context.Context) error {
	online, err := c.roster.Online(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.teams) == 0 {
		return ErrNoTeams
	}

	seen := make(map[models.ParticipantID]struct{})
	var pool []models.ParticipantID
	for _, p := range online {
		if p.Exempt {
			continue
		}
		if _, ok := seen[p.ID]; !ok {
			seen[p.ID] = struct{}{}
			pool = append(pool, p.ID)
		}
	}
	for _, key := range c.order {
		for _, id := range c.teams[key].Members {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				pool = append(pool, id)
			}
		}
	}

	targets := make([]*models.Team, 0, len(c.order))
	for _, key := range c.order {
		t := c.teams[key]
		t.Members = nil
		targets = append(targets, t)
	}
	clear(c.memberOf)

	c.roller.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	c.roller.Shuffle(len(targets), func(i, j int) { targets[i], targets[j] = targets[j], targets[i] })

	for i, id := range pool {
		c.addLocked(ctx, id, targets[i%len(targets)])
	}

	slog.InfoContext(ctx, "teams balanced", "participants", len(pool), "teams", len(targets))
	return nil
}

// AutoAssign puts a participant on the smallest team. It only acts during an
// event, when teams exist, and for non-exempt, unassigned, non-eliminated
// participants.
func (c *Coordinator) AutoAssign(ctx context.Context, p *models.Participant) bool {
	if p == nil || p.Exempt || !c.gate.IsActive() {
		return false
	}
	if c.eliminations.IsEliminated(p.ID) {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	return c.autoAssignLocked(ctx, p.ID)
}

func (c *Coordinator) autoAssignLocked(ctx context.Context, id models.ParticipantID) bool {
	if _, ok := c.memberOf[id]; ok {
		return false
	}
	target := c.smallestLocked()
	if target == nil {
		return false
	}
	c.addLocked(ctx, id, target)
	return true
}

// Validate prunes disconnected and eliminated members, then auto-assigns every
// connected participant still without a team. It only runs during an event.
func (c *Coordinator) Validate(ctx context.Context) {
	if !c.gate.IsActive() {
		return
	}

	online, err := c.roster.Online(ctx)
	if err != nil {
		slog.WarnContext(ctx, "team validation skipped", "error", err)
		return
	}
	connected := make(map[models.ParticipantID]*models.Participant, len(online))
	for _, p := range online {
		connected[p.ID] = p
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.teams) == 0 {
		return
	}

	for _, key := range c.order {
		t := c.teams[key]
		kept := t.Members[:0]
		for _, id := range t.Members {
			p, ok := connected[id]
			switch {
			case !ok:
				delete(c.memberOf, id)
			case c.eliminations.IsEliminated(id) || p.Exempt:
				delete(c.memberOf, id)
				c.display(ctx, id, nil)
			default:
				kept = append(kept, id)
			}
		}
		t.Members = kept
	}

	for _, p := range online {
		if p.Exempt || c.eliminations.IsEliminated(p.ID) {
			continue
		}
		c.autoAssignLocked(ctx, p.ID)
	}
}

// SetColor changes a team's color and refreshes its members' markers
func (c *Coordinator) SetColor(ctx context.Context, name string, color models.TeamColor) error {
	if _, err := models.ParseTeamColor(string(color)); err != nil {
		return ErrInvalidColor
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	t, ok := c.teams[names.Key(name)]
	if !ok {
		return ErrTeamNotFound
	}
	t.Color = color
	for _, id := range t.Members {
		c.display(ctx, id, &models.TeamDisplay{TeamName: t.Name, Color: t.Color})
	}
	return nil
}

// Team returns a copy of the named team
func (c *Coordinator) Team(name string) (*models.Team, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	t, ok := c.teams[names.Key(name)]
	if !ok {
		return nil, false
	}
	return cloneTeam(t), true
}

// Teams returns copies of every team in creation order
func (c *Coordinator) Teams() []*models.Team {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*models.Team, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, cloneTeam(c.teams[key]))
	}
	return out
}

// ActiveTeams returns copies of every team with at least one member
func (c *Coordinator) ActiveTeams() []*models.Team {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.Team
	for _, key := range c.order {
		if t := c.teams[key]; len(t.Members) > 0 {
			out = append(out, cloneTeam(t))
		}
	}
	return out
}

// TeamOf returns a copy of the participant's team
func (c *Coordinator) TeamOf(id models.ParticipantID) (*models.Team, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	key, ok := c.memberOf[id]
	if !ok {
		return nil, false
	}
	return cloneTeam(c.teams[key]), true
}

// HasTeams reports whether any team exists
func (c *Coordinator) HasTeams() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.teams) > 0
}

// StandingTeams returns the teams that still have a connected, non-eliminated
// member. Each returned team lists only those standing members.
func (c *Coordinator) StandingTeams(ctx context.Context) ([]*models.Team, error) {
	online, err := c.roster.Online(ctx)
	if err != nil {
		return nil, err
	}
	connected := make(map[models.ParticipantID]struct{}, len(online))
	for _, p := range online {
		connected[p.ID] = struct{}{}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []*models.Team
	for _, key := range c.order {
		t := c.teams[key]
		standing := &models.Team{Name: t.Name, Color: t.Color}
		for _, id := range t.Members {
			if _, ok := connected[id]; !ok {
				continue
			}
			if c.eliminations.IsEliminated(id) {
				continue
			}
			standing.Members = append(standing.Members, id)
		}
		if len(standing.Members) > 0 {
			out = append(out, standing)
		}
	}
	return out, nil
}

// Snapshot returns copies of the teams that currently have members. The
// event takes one at start to fix which teams compete.
func (c *Coordinator) Snapshot() []*models.Team {
	return c.ActiveTeams()
}

// TearDown deletes every team and clears every marker
func (c *Coordinator) TearDown(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.order) > 0 {
		c.removeTeamLocked(ctx, c.order[0])
	}
}

func (c *Coordinator) addLocked(ctx context.Context, id models.ParticipantID, t *models.Team) {
	key := names.Key(t.Name)
	if prev, ok := c.memberOf[id]; ok {
		if prev == key {
			return
		}
		if old, ok := c.teams[prev]; ok {
			old.Members = slices.DeleteFunc(old.Members, func(m models.ParticipantID) bool { return m == id })
		}
	}

	t.Members = append(t.Members, id)
	c.memberOf[id] = key
	c.display(ctx, id, &models.TeamDisplay{TeamName: t.Name, Color: t.Color})
}

func (c *Coordinator) removeTeamLocked(ctx context.Context, key string) {
	t := c.teams[key]
	for _, id := range t.Members {
		delete(c.memberOf, id)
		c.display(ctx, id, nil)
	}
	delete(c.teams, key)
	c.order = slices.DeleteFunc(c.order, func(k string) bool { return k == key })
}

// smallestLocked returns the team with the fewest members, first created wins ties
func (c *Coordinator) smallestLocked() *models.Team {
	var smallest *models.Team
	for _, key := range c.order {
		t := c.teams[key]
		if smallest == nil || len(t.Members) < len(smallest.Members) {
			smallest = t
		}
	}
	return smallest
}

func (c *Coordinator) display(ctx context.Context, id models.ParticipantID, display *models.TeamDisplay) {
	if err := c.effects.SetTeamDisplay(ctx, id, display); err != nil {
		slog.WarnContext(ctx, "failed to set team display", "participant", id, "error", err)
	}
}

func cloneTeam(t *models.Team) *models.Team {
	return &models.Team{
		Name:    t.Name,
		Color:   t.Color,
		Members: slices.Clone(t.Members),
	}
}
