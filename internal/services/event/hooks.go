package event

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// The hooks run after the roster reflects the change they report.

// OnJoin handles a participant connecting. During an event, a participant who
// left while eliminated stays eliminated and anyone else joining mid-event is
// eliminated on arrival.
func (s *service) OnJoin(ctx context.Context, p *models.Participant) {
	if p == nil {
		return
	}
	s.remember(p)

	if !s.gate.IsActive() || p.Exempt {
		return
	}

	if s.tracker.ConsumeDisconnected(p.ID) || s.tracker.IsEliminated(p.ID) {
		s.markEliminated(ctx, p.ID)
		return
	}

	if s.tracker.Eliminate(p) {
		slog.InfoContext(ctx, "participant joined mid-event", "participant", p.ID)
		s.markEliminated(ctx, p.ID)
		if err := s.announcer.Tell(ctx, p.ID, "An event is in progress. You will be able to play in the next one."); err != nil {
			slog.WarnContext(ctx, "failed to tell late joiner", "participant", p.ID, "error", err)
		}
	}
}

func (s *service) markEliminated(ctx context.Context, id models.ParticipantID) {
	if err := s.effects.SetEliminated(ctx, id); err != nil {
		slog.WarnContext(ctx, "failed to mark participant eliminated", "participant", id, "error", err)
	}
}

// OnQuit handles a participant disconnecting. Eliminated participants are
// remembered so a rejoin is not treated as a late join; a survivor leaving
// re-runs victory detection.
func (s *service) OnQuit(ctx context.Context, id models.ParticipantID) {
	if !s.gate.IsActive() {
		return
	}
	if s.tracker.MarkDisconnected(id) {
		return
	}
	s.CheckForEventEnd(ctx)
}

// OnDeath eliminates an incapacitated participant
func (s *service) OnDeath(ctx context.Context, id models.ParticipantID) {
	if !s.gate.IsActive() {
		return
	}
	p, err := s.participant(ctx, id)
	if err != nil {
		slog.WarnContext(ctx, "death of unknown participant", "participant", id, "error", err)
		return
	}
	s.HandleElimination(ctx, p, "")
}

// OnChat interprets a chat message: the mute swallows non-exempt messages, then
// the guess round and the vote get a chance to consume it
func (s *service) OnChat(ctx context.Context, p *models.Participant, message string) bool {
	if p == nil {
		return false
	}

	if s.muted.Load() && !p.Exempt {
		if err := s.announcer.Tell(ctx, p.ID, s.messaging.GetMutedNoticeMessage()); err != nil {
			slog.WarnContext(ctx, "failed to send mute notice", "participant", p.ID, "error", err)
		}
		return true
	}

	if s.minigames.InterpretChat(ctx, p, message) {
		return true
	}
	return s.votes.InterpretChat(ctx, p.ID, message)
}
