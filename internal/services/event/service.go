// Package event runs the Idle/Active event lifecycle.
//
// Every terminal transition, whether a manual stop, the last survivor or the
// last standing team, goes through lifecycle.Gate.Close. Exactly one caller
// wins that compare-and-swap and owns the teardown; every other concurrent
// trigger observes Idle and returns.
package event

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/KirkDiggler/eventtools/internal/common/clock"
	"github.com/KirkDiggler/eventtools/internal/common/names"
	"github.com/KirkDiggler/eventtools/internal/common/uuid"
	"github.com/KirkDiggler/eventtools/internal/lifecycle"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/platform"
	"github.com/KirkDiggler/eventtools/internal/scheduler"
	"github.com/KirkDiggler/eventtools/internal/services/elimination"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
	"github.com/KirkDiggler/eventtools/internal/services/minigame"
	"github.com/KirkDiggler/eventtools/internal/services/team"
	"github.com/KirkDiggler/eventtools/internal/services/vote"
)

const tracerName = "github.com/KirkDiggler/eventtools/internal/services/event"

// service implements the Service interface
type service struct {
	gate      *lifecycle.Gate
	tracker   *elimination.Tracker
	teams     *team.Coordinator
	votes     *vote.Controller
	minigames *minigame.Controller

	roster    platform.Roster
	effects   platform.Effects
	announcer platform.Announcer
	messaging messaging.Service
	scheduler scheduler.TaskScheduler
	clock     clock.Clock
	uuid      uuid.UUID
	results   ResultArchive
	tracer    trace.Tracer

	placementLimit   int
	celebrationTicks int

	// startMu serializes Start so two starts cannot interleave their resets
	startMu sync.Mutex

	muted          atomic.Bool
	finalizeQueued atomic.Bool

	mu        sync.RWMutex
	spawn     *models.Location
	competing map[string]struct{} // team keys at start
	names     map[models.ParticipantID]string
	frozen    map[models.ParticipantID]struct{}

	celebrationEpoch atomic.Uint64
	celebrationMu    sync.Mutex
	stopCelebration  func()
}

// New creates a new event service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	switch {
	case cfg.Gate == nil:
		return nil, ErrNilGate
	case cfg.Tracker == nil:
		return nil, ErrNilTracker
	case cfg.Teams == nil:
		return nil, ErrNilTeams
	case cfg.Votes == nil:
		return nil, ErrNilVotes
	case cfg.Minigames == nil:
		return nil, ErrNilMinigames
	case cfg.Roster == nil:
		return nil, ErrNilRoster
	case cfg.Effects == nil:
		return nil, ErrNilEffects
	case cfg.Announcer == nil:
		return nil, ErrNilAnnouncer
	case cfg.Messaging == nil:
		return nil, ErrNilMessaging
	case cfg.Scheduler == nil:
		return nil, ErrNilScheduler
	case cfg.Clock == nil:
		return nil, ErrNilClock
	case cfg.UUIDGenerator == nil:
		return nil, ErrNilUUIDGenerator
	}

	s := &service{
		gate:             cfg.Gate,
		tracker:          cfg.Tracker,
		teams:            cfg.Teams,
		votes:            cfg.Votes,
		minigames:        cfg.Minigames,
		roster:           cfg.Roster,
		effects:          cfg.Effects,
		announcer:        cfg.Announcer,
		messaging:        cfg.Messaging,
		scheduler:        cfg.Scheduler,
		clock:            cfg.Clock,
		uuid:             cfg.UUIDGenerator,
		results:          cfg.Results,
		tracer:           otel.Tracer(tracerName),
		placementLimit:   cfg.PlacementLimit,
		celebrationTicks: cfg.CelebrationTicks,
		names:            make(map[models.ParticipantID]string),
		frozen:           make(map[models.ParticipantID]struct{}),
	}
	if s.placementLimit <= 0 {
		s.placementLimit = DefaultPlacementLimit
	}
	if s.celebrationTicks <= 0 {
		s.celebrationTicks = DefaultCelebrationTicks
	}
	return s, nil
}

// Start moves the event from Idle to Active. When any team has members, at
// least two teams must have members.
func (s *service) Start(ctx context.Context, title string) error {
	ctx, span := s.tracer.Start(ctx, "event.Start")
	defer span.End()

	s.startMu.Lock()
	defer s.startMu.Unlock()

	if s.gate.IsActive() {
		return ErrEventActive
	}

	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	competing := s.teams.Snapshot()
	if len(competing) == 1 {
		return ErrNotEnoughTeams
	}

	s.cancelCelebration()
	s.tracker.Reset()
	s.votes.Reset(ctx)
	s.minigames.Reset(ctx)
	s.muted.Store(false)
	s.finalizeQueued.Store(false)

	s.mu.Lock()
	s.competing = make(map[string]struct{}, len(competing))
	for _, t := range competing {
		s.competing[names.Key(t.Name)] = struct{}{}
	}
	clear(s.names)
	s.mu.Unlock()

	runID := s.uuid.NewUUID()
	if !s.gate.Open(title, s.clock.Now(), runID) {
		return ErrEventActive
	}

	span.SetAttributes(
		attribute.String("event.title", title),
		attribute.String("event.run_id", runID),
		attribute.Int("event.teams", len(competing)),
	)
	slog.InfoContext(ctx, "event started", "title", title, "run_id", runID, "teams", len(competing))

	started := s.messaging.GetEventStartedMessage(title)
	s.title(ctx, started.Title, started.Subtitle)
	return nil
}

// Stop moves the event from Active to Idle and tears it down
func (s *service) Stop(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "event.Stop")
	defer span.End()

	if !s.gate.Close() {
		return ErrEventNotActive
	}
	s.cancelCelebration()

	state := s.gate.Snapshot()
	alive, err := s.alive(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read roster for placements", "error", err)
	}
	placements := s.rank(ctx, alive, s.placementLimit)

	s.teardown(ctx)
	s.broadcast(ctx, s.messaging.GetEventStoppedMessage(state.Title))
	s.archive(ctx, &models.EventResult{
		RunID:      state.RunID,
		Title:      state.Title,
		Outcome:    models.EventOutcomeStopped,
		Placements: placements,
		StartedAt:  state.StartedAt,
		EndedAt:    s.clock.Now(),
	})

	slog.InfoContext(ctx, "event stopped", "title", state.Title, "run_id", state.RunID)
	return nil
}

// IsActive reports whether an event is running
func (s *service) IsActive() bool {
	return s.gate.IsActive()
}

// Eliminate eliminates a participant on behalf of an administrator
func (s *service) Eliminate(ctx context.Context, id models.ParticipantID) error {
	if !s.gate.IsActive() {
		return ErrEventNotActive
	}
	p, err := s.participant(ctx, id)
	if err != nil {
		return err
	}
	if p.Exempt {
		return ErrParticipantExempt
	}
	if !s.HandleElimination(ctx, p, "") {
		return ErrAlreadyEliminated
	}
	return nil
}

// EliminateAll eliminates every connected, non-exempt participant
func (s *service) EliminateAll(ctx context.Context) (int, error) {
	if !s.gate.IsActive() {
		return 0, ErrEventNotActive
	}
	alive, err := s.alive(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range alive {
		if s.HandleElimination(ctx, p, "") {
			count++
		}
	}
	return count, nil
}

// Revive brings an eliminated participant back into play at the spawn point
func (s *service) Revive(ctx context.Context, id models.ParticipantID) error {
	if !s.gate.IsActive() {
		return ErrEventNotActive
	}
	p, err := s.participant(ctx, id)
	if err != nil {
		return err
	}
	if p.Exempt {
		return ErrParticipantExempt
	}
	if !s.revive(ctx, p) {
		return ErrNotEliminated
	}
	return nil
}

// ReviveAll revives every connected, eliminated participant
func (s *service) ReviveAll(ctx context.Context) (int, error) {
	if !s.gate.IsActive() {
		return 0, ErrEventNotActive
	}
	online, err := s.roster.Online(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, p := range online {
		if s.tracker.IsEliminated(p.ID) && s.revive(ctx, p) {
			count++
		}
	}
	return count, nil
}

func (s *service) revive(ctx context.Context, p *models.Participant) bool {
	if !s.tracker.Revive(p) {
		return false
	}
	if err := s.effects.Restore(ctx, p.ID, s.Spawn()); err != nil {
		slog.WarnContext(ctx, "failed to restore revived participant", "participant", p.ID, "error", err)
	}
	s.teams.AutoAssign(ctx, p)
	s.broadcast(ctx, s.messaging.GetRevivalMessage(p.Name))
	return true
}

// HandleElimination is the shared elimination path used by admin commands,
// deaths and zone violations
func (s *service) HandleElimination(ctx context.Context, p *models.Participant, reason string) bool {
	if p == nil || !s.gate.IsActive() {
		return false
	}
	if !s.tracker.Eliminate(p) {
		return false
	}
	s.remember(p)

	if err := s.effects.SetEliminated(ctx, p.ID); err != nil {
		slog.WarnContext(ctx, "failed to mark participant eliminated", "participant", p.ID, "error", err)
	}

	input := &messaging.GetEliminationMessageInput{
		PlayerName: p.Name,
		Reason:     reason,
	}
	if t, ok := s.teams.TeamOf(p.ID); ok {
		input.TeamName = t.Name
	}
	if alive, err := s.alive(ctx); err == nil {
		input.Remaining = len(alive)
	}

	slog.InfoContext(ctx, "participant eliminated", "participant", p.ID, "reason", reason)
	s.broadcast(ctx, s.messaging.GetEliminationMessage(input))

	s.CheckForEventEnd(ctx)
	return true
}

// Placements ranks the current finishers
func (s *service) Placements(ctx context.Context, limit int) ([]models.Placement, error) {
	alive, err := s.alive(ctx)
	if err != nil {
		return nil, err
	}
	return s.rank(ctx, alive, limit), nil
}

// DeleteTeam deletes a team and re-runs victory detection, since losing a
// team can end team play or the event
func (s *service) DeleteTeam(ctx context.Context, name string) (*team.DeleteTeamOutput, error) {
	output, err := s.teams.DeleteTeam(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(output.Deleted) > 1 {
		s.broadcast(ctx, s.messaging.GetTeamModeEndedMessage(output.Deleted))
	}
	s.CheckForEventEnd(ctx)
	return output, nil
}

// SetSpawn sets the location participants are returned to, nil clears it
func (s *service) SetSpawn(loc *models.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if loc == nil {
		s.spawn = nil
		return
	}
	spawn := *loc
	s.spawn = &spawn
}

// Spawn returns a copy of the spawn point, nil when unset
func (s *service) Spawn() *models.Location {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.spawn == nil {
		return nil
	}
	spawn := *s.spawn
	return &spawn
}

// ToggleMute flips the chat mute and returns the new value
func (s *service) ToggleMute(ctx context.Context) bool {
	for {
		old := s.muted.Load()
		if s.muted.CompareAndSwap(old, !old) {
			s.broadcast(ctx, s.messaging.GetChatMutedMessage(!old))
			return !old
		}
	}
}

// Status returns the flattened engine state
func (s *service) Status(ctx context.Context) (*models.EventStatus, error) {
	online, err := s.roster.Online(ctx)
	if err != nil {
		return nil, err
	}

	state := s.gate.Snapshot()
	status := &models.EventStatus{
		Active:  state.Active,
		Title:   state.Title,
		Elapsed: state.Elapsed(s.clock.Now()),
		Vote:    s.votes.Status(),
	}
	for _, p := range online {
		if p.Exempt {
			continue
		}
		status.TotalCount++
		if s.tracker.IsEliminated(p.ID) {
			status.EliminatedCount++
		} else {
			status.AliveCount++
		}
	}
	return status, nil
}

// List returns connected, non-exempt participants matching filter
func (s *service) List(ctx context.Context, filter models.ParticipantFilter) ([]*models.Participant, error) {
	online, err := s.roster.Online(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.Participant
	for _, p := range online {
		if p.Exempt {
			continue
		}
		eliminated := s.tracker.IsEliminated(p.ID)
		switch filter {
		case models.ParticipantFilterAlive:
			if eliminated {
				continue
			}
		case models.ParticipantFilterEliminated:
			if !eliminated {
				continue
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// Results returns recently archived events, newest first
func (s *service) Results(ctx context.Context, limit int) ([]*models.EventResult, error) {
	if s.results == nil {
		return nil, nil
	}
	return s.results.GetRecent(ctx, limit)
}

// Shutdown tears down a running event without announcing a winner
func (s *service) Shutdown(ctx context.Context) {
	s.cancelCelebration()
	if s.gate.Close() {
		s.teardown(ctx)
		slog.InfoContext(ctx, "event torn down on shutdown")
	}
}

// teardown returns every connected, non-exempt participant to baseline and
// clears all per-event state. Only the winner of gate.Close calls it.
func (s *service) teardown(ctx context.Context) {
	spawn := s.Spawn()

	online, err := s.roster.Online(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read roster for teardown", "error", err)
	}
	for _, p := range online {
		if p.Exempt {
			continue
		}
		if err := s.effects.Restore(ctx, p.ID, spawn); err != nil {
			slog.WarnContext(ctx, "failed to restore participant", "participant", p.ID, "error", err)
			continue
		}
		// restore resets movement
		s.mu.Lock()
		delete(s.frozen, p.ID)
		s.mu.Unlock()
	}

	s.teams.TearDown(ctx)
	s.votes.Reset(ctx)
	s.minigames.Reset(ctx)
	s.tracker.Reset()
	s.muted.Store(false)

	s.mu.Lock()
	s.competing = nil
	s.mu.Unlock()
}

// alive returns connected, non-exempt, non-eliminated participants
func (s *service) alive(ctx context.Context) ([]*models.Participant, error) {
	online, err := s.roster.Online(ctx)
	if err != nil {
		return nil, err
	}

	var out []*models.Participant
	for _, p := range online {
		if p.Exempt || s.tracker.IsEliminated(p.ID) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *service) rank(ctx context.Context, alive []*models.Participant, limit int) []models.Placement {
	remaining := make([]models.ParticipantID, 0, len(alive))
	for _, p := range alive {
		remaining = append(remaining, p.ID)
		s.remember(p)
	}

	ids := s.tracker.Placements(remaining, limit)
	placements := make([]models.Placement, 0, len(ids))
	for i, id := range ids {
		label, ok := models.LabelForRank(i + 1)
		if !ok {
			break
		}
		placements = append(placements, models.Placement{
			Rank:          i + 1,
			ParticipantID: id,
			Name:          s.nameOf(ctx, id),
			Label:         label,
		})
	}
	return placements
}

func (s *service) participant(ctx context.Context, id models.ParticipantID) (*models.Participant, error) {
	p, err := s.roster.Get(ctx, id)
	if err != nil {
		if errors.Is(err, platform.ErrParticipantNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, err
	}
	s.remember(p)
	return p, nil
}

func (s *service) remember(p *models.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.names[p.ID] = p.Name
}

// nameOf returns the last known display name, which outlives the connection
func (s *service) nameOf(ctx context.Context, id models.ParticipantID) string {
	s.mu.RLock()
	name, ok := s.names[id]
	s.mu.RUnlock()
	if ok {
		return name
	}
	if p, err := s.roster.Get(ctx, id); err == nil {
		return p.Name
	}
	return id.String()
}

func (s *service) archive(ctx context.Context, result *models.EventResult) {
	if s.results == nil {
		return
	}
	if err := s.results.SaveResult(ctx, result); err != nil {
		slog.ErrorContext(ctx, "failed to archive event result", "run_id", result.RunID, "error", err)
	}
}

func (s *service) broadcast(ctx context.Context, message string) {
	if message == "" {
		return
	}
	if err := s.announcer.Broadcast(ctx, message); err != nil {
		slog.WarnContext(ctx, "failed to broadcast", "error", err)
	}
}

func (s *service) title(ctx context.Context, title, subtitle string) {
	if err := s.announcer.Title(ctx, title, subtitle); err != nil {
		slog.WarnContext(ctx, "failed to show title", "error", err)
	}
}

func (s *service) tell(ctx context.Context, id models.ParticipantID, message string) {
	if err := s.announcer.Tell(ctx, id, message); err != nil {
		slog.WarnContext(ctx, "failed to tell participant", "participant", id, "error", err)
	}
}
