package event

import (
	"context"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"

	"github.com/KirkDiggler/eventtools/internal/common/names"
	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/services/messaging"
)

// CheckForEventEnd runs victory detection. In team play the last standing team
// wins immediately. Otherwise, once at most one participant remains,
// finalization is deferred to the next tick so the triggering elimination
// settles first. Redundant calls are harmless.
func (s *service) CheckForEventEnd(ctx context.Context) {
	if !s.gate.IsActive() {
		return
	}

	if s.teamMode() {
		s.checkTeamVictory(ctx)
		return
	}

	alive, err := s.alive(ctx)
	if err != nil {
		slog.WarnContext(ctx, "victory check skipped", "error", err)
		return
	}
	if len(alive) > 1 {
		return
	}
	if !s.finalizeQueued.CompareAndSwap(false, true) {
		return
	}

	epoch := s.gate.Epoch()
	s.scheduler.NextTick(func(ctx context.Context) {
		s.finalize(ctx, epoch)
	})
}

// teamMode reports whether the event started with at least two competing
// teams and one of them still exists
func (s *service) teamMode() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.competing) < 2 {
		return false
	}
	for _, t := range s.teams.Teams() {
		if _, ok := s.competing[names.Key(t.Name)]; ok {
			return true
		}
	}
	return false
}

// standingCompetitors returns the standing teams that were competing at start.
// Teams created mid-event never count toward victory.
func (s *service) standingCompetitors(ctx context.Context) ([]*models.Team, error) {
	standing, err := s.teams.StandingTeams(ctx)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.DeleteFunc(standing, func(t *models.Team) bool {
		_, ok := s.competing[names.Key(t.Name)]
		return !ok
	}), nil
}

// finalize ends a solo event. The survivor count is re-read since a revive may
// have happened after the check; the survivor is whoever is still connected now.
func (s *service) finalize(ctx context.Context, epoch uint64) {
	s.finalizeQueued.Store(false)
	if s.gate.Epoch() != epoch || !s.gate.IsActive() {
		return
	}

	alive, err := s.alive(ctx)
	if err != nil {
		slog.WarnContext(ctx, "finalization skipped", "error", err)
		return
	}
	if len(alive) > 1 {
		return
	}

	if !s.gate.Close() {
		return
	}

	ctx, span := s.tracer.Start(ctx, "event.finalize")
	defer span.End()
	s.cancelCelebration()

	state := s.gate.Snapshot()
	placements := s.rank(ctx, alive, s.placementLimit)

	result := &models.EventResult{
		RunID:      state.RunID,
		Title:      state.Title,
		Outcome:    models.EventOutcomeNoWinner,
		Placements: placements,
		StartedAt:  state.StartedAt,
	}
	input := &messaging.GetWinnerMessageInput{Kind: messaging.WinnerKindNone, EventTitle: state.Title}

	var winners []models.ParticipantID
	if len(alive) == 1 {
		winner := alive[0]
		result.Outcome = models.EventOutcomeWinner
		result.Winner = winner
		input.Kind = messaging.WinnerKindSolo
		input.Name = winner.Name
		winners = append(winners, winner.ID)
	}

	span.SetAttributes(attribute.String("event.run_id", state.RunID), attribute.String("event.outcome", string(result.Outcome)))
	slog.InfoContext(ctx, "event finished", "run_id", state.RunID, "outcome", result.Outcome)

	announcement := s.messaging.GetWinnerMessage(input)
	s.title(ctx, announcement.Title, announcement.Subtitle)
	s.broadcast(ctx, announcement.Title)
	s.broadcast(ctx, s.messaging.GetPlacementsMessage(placements))

	s.teardown(ctx)
	result.EndedAt = s.clock.Now()
	s.archive(ctx, result)
	s.celebrate(winners, MaxFireworks)
}

// checkTeamVictory ends a team event once at most one team has a connected,
// non-eliminated member
func (s *service) checkTeamVictory(ctx context.Context) {
	standing, err := s.standingCompetitors(ctx)
	if err != nil {
		slog.WarnContext(ctx, "team victory check skipped", "error", err)
		return
	}
	if len(standing) > 1 {
		return
	}

	if !s.gate.Close() {
		return
	}

	ctx, span := s.tracer.Start(ctx, "event.teamVictory")
	defer span.End()
	s.cancelCelebration()

	state := s.gate.Snapshot()
	alive, err := s.alive(ctx)
	if err != nil {
		slog.WarnContext(ctx, "failed to read roster for placements", "error", err)
	}
	placements := s.rank(ctx, alive, s.placementLimit)

	result := &models.EventResult{
		RunID:      state.RunID,
		Title:      state.Title,
		Outcome:    models.EventOutcomeNoWinner,
		Placements: placements,
		StartedAt:  state.StartedAt,
	}
	input := &messaging.GetWinnerMessageInput{Kind: messaging.WinnerKindNoTeam, EventTitle: state.Title}

	var winners []models.ParticipantID
	if len(standing) == 1 {
		result.Outcome = models.EventOutcomeTeamWinner
		result.WinningTeam = standing[0].Name
		input.Kind = messaging.WinnerKindTeam
		input.Name = standing[0].Name
		winners = standing[0].Members
	}

	span.SetAttributes(attribute.String("event.run_id", state.RunID), attribute.String("event.outcome", string(result.Outcome)))
	slog.InfoContext(ctx, "team event finished", "run_id", state.RunID, "team", result.WinningTeam)

	announcement := s.messaging.GetWinnerMessage(input)
	s.title(ctx, announcement.Title, announcement.Subtitle)
	s.broadcast(ctx, announcement.Title)
	s.broadcast(ctx, s.messaging.GetPlacementsMessage(placements))

	s.teardown(ctx)
	result.EndedAt = s.clock.Now()
	s.archive(ctx, result)
	s.celebrate(winners, min(MaxFireworks, FireworksPerTeamMember*len(winners)))
}

// celebrate launches bursts round-robin over winners, one every
// celebrationTicks. The sequence stops as soon as its epoch is superseded.
func (s *service) celebrate(winners []models.ParticipantID, bursts int) {
	if len(winners) == 0 || bursts <= 0 {
		return
	}

	epoch := s.celebrationEpoch.Add(1)
	fired := 0

	stop := s.scheduler.Repeat(s.celebrationTicks, func(ctx context.Context) bool {
		if s.celebrationEpoch.Load() != epoch || fired >= bursts {
			return false
		}
		id := winners[fired%len(winners)]
		if err := s.announcer.Firework(ctx, id); err != nil {
			slog.DebugContext(ctx, "firework failed", "participant", id, "error", err)
		}
		fired++
		return fired < bursts
	})

	s.celebrationMu.Lock()
	s.stopCelebration = stop
	s.celebrationMu.Unlock()
}

func (s *service) cancelCelebration() {
	s.celebrationEpoch.Add(1)

	s.celebrationMu.Lock()
	stop := s.stopCelebration
	s.stopCelebration = nil
	s.celebrationMu.Unlock()

	if stop != nil {
		stop()
	}
}
