package event

import (
	"context"
	"log/slog"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// Heal restores every targeted participant and returns how many were healed
func (s *service) Heal(ctx context.Context, target Target) (int, error) {
	targets, err := s.resolve(ctx, target)
	if err != nil {
		return 0, err
	}

	healed := 0
	for _, p := range targets {
		if err := s.effects.Heal(ctx, p.ID); err != nil {
			slog.WarnContext(ctx, "failed to heal participant", "participant", p.ID, "error", err)
			continue
		}
		s.tell(ctx, p.ID, s.messaging.GetHealedMessage())
		healed++
	}
	return healed, nil
}

// Freeze toggles movement of every targeted participant. Each participant
// flips on its own, so a mixed group ends up inverted.
func (s *service) Freeze(ctx context.Context, target Target) (*FreezeOutput, error) {
	targets, err := s.resolve(ctx, target)
	if err != nil {
		return nil, err
	}

	output := &FreezeOutput{}
	for _, p := range targets {
		s.mu.Lock()
		_, frozen := s.frozen[p.ID]
		s.mu.Unlock()

		if err := s.effects.SetFrozen(ctx, p.ID, !frozen); err != nil {
			slog.WarnContext(ctx, "failed to toggle freeze", "participant", p.ID, "error", err)
			continue
		}

		s.mu.Lock()
		if frozen {
			delete(s.frozen, p.ID)
			output.Unfrozen++
		} else {
			s.frozen[p.ID] = struct{}{}
			output.Frozen++
		}
		s.mu.Unlock()

		s.tell(ctx, p.ID, s.messaging.GetFrozenMessage(!frozen))
	}
	return output, nil
}

// Bring teleports every targeted participant to loc, or to spawn when loc is nil
func (s *service) Bring(ctx context.Context, target Target, loc *models.Location) (int, error) {
	destination := "spawn"
	if loc == nil {
		loc = s.Spawn()
	} else {
		destination = loc.World
	}
	if loc == nil {
		return 0, ErrNoDestination
	}

	targets, err := s.resolve(ctx, target)
	if err != nil {
		return 0, err
	}

	brought := 0
	for _, p := range targets {
		if err := s.effects.Teleport(ctx, p.ID, loc); err != nil {
			slog.WarnContext(ctx, "failed to teleport participant", "participant", p.ID, "error", err)
			continue
		}
		s.tell(ctx, p.ID, s.messaging.GetBroughtMessage(destination))
		brought++
	}
	return brought, nil
}

// TimedEffect grants an effect that the platform expires after effect.Seconds
func (s *service) TimedEffect(ctx context.Context, target Target, effect models.Effect) (int, error) {
	if effect.Type == "" || effect.Seconds <= 0 || effect.Amplifier < 0 {
		return 0, ErrInvalidEffect
	}

	targets, err := s.resolve(ctx, target)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, p := range targets {
		if err := s.effects.ApplyEffect(ctx, p.ID, effect); err != nil {
			slog.WarnContext(ctx, "failed to apply timed effect", "participant", p.ID, "effect", effect, "error", err)
			continue
		}
		s.tell(ctx, p.ID, s.messaging.GetTimedEffectMessage(effect))
		applied++
	}
	return applied, nil
}

// ClearChat pushes the chat history off screen
func (s *service) ClearChat(ctx context.Context) {
	for range ClearChatLines {
		if err := s.announcer.Broadcast(ctx, ""); err != nil {
			slog.WarnContext(ctx, "failed to clear chat", "error", err)
			break
		}
	}
	s.broadcast(ctx, s.messaging.GetChatClearedMessage())
}

// resolve returns the participants a group action applies to. A named
// participant may be exempt; groups never include exempt participants.
func (s *service) resolve(ctx context.Context, target Target) ([]*models.Participant, error) {
	if target.ID != "" {
		p, err := s.participant(ctx, target.ID)
		if err != nil {
			return nil, err
		}
		return []*models.Participant{p}, nil
	}

	switch target.Filter {
	case models.ParticipantFilterAll, models.ParticipantFilterAlive, models.ParticipantFilterEliminated:
		return s.List(ctx, target.Filter)
	}
	return nil, ErrInvalidTarget
}
