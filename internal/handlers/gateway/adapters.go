package gateway

import (
	"context"

	"github.com/KirkDiggler/eventtools/internal/models"
)

// ApplyEffect grants a buff on the platform
func (h *Hub) ApplyEffect(ctx context.Context, id models.ParticipantID, effect models.Effect) error {
	return h.send(ctx, &Frame{Type: FrameEffectApply, ID: id, Effect: &effect})
}

// ClearEffect removes a buff by type
func (h *Hub) ClearEffect(ctx context.Context, id models.ParticipantID, effectType string) error {
	return h.send(ctx, &Frame{Type: FrameEffectClear, ID: id, EffectType: effectType})
}

// SetInvulnerable toggles damage immunity
func (h *Hub) SetInvulnerable(ctx context.Context, id models.ParticipantID, invulnerable bool) error {
	return h.send(ctx, &Frame{Type: FrameInvulnerable, ID: id, Invulnerable: invulnerable})
}

// SetEliminated moves the participant out of play
func (h *Hub) SetEliminated(ctx context.Context, id models.ParticipantID) error {
	return h.send(ctx, &Frame{Type: FrameEliminated, ID: id})
}

// Restore returns the participant to baseline
func (h *Hub) Restore(ctx context.Context, id models.ParticipantID, spawn *models.Location) error {
	return h.send(ctx, &Frame{Type: FrameRestore, ID: id, Spawn: spawn})
}

// SetTeamDisplay sets or clears the team marker
func (h *Hub) SetTeamDisplay(ctx context.Context, id models.ParticipantID, display *models.TeamDisplay) error {
	return h.send(ctx, &Frame{Type: FrameTeamDisplay, ID: id, Team: display})
}

// Heal restores the participant's health
func (h *Hub) Heal(ctx context.Context, id models.ParticipantID) error {
	return h.send(ctx, &Frame{Type: FrameHeal, ID: id})
}

// SetFrozen locks or releases movement
func (h *Hub) SetFrozen(ctx context.Context, id models.ParticipantID, frozen bool) error {
	return h.send(ctx, &Frame{Type: FrameFreeze, ID: id, Frozen: frozen})
}

// Teleport moves the participant
func (h *Hub) Teleport(ctx context.Context, id models.ParticipantID, loc *models.Location) error {
	return h.send(ctx, &Frame{Type: FrameTeleport, ID: id, Location: loc})
}

// Broadcast sends a chat line to everyone
func (h *Hub) Broadcast(ctx context.Context, message string) error {
	return h.send(ctx, &Frame{Type: FrameBroadcast, Text: message})
}

// Title shows a title to everyone
func (h *Hub) Title(ctx context.Context, title, subtitle string) error {
	return h.send(ctx, &Frame{Type: FrameTitle, Title: title, Subtitle: subtitle})
}

// Tell sends a chat line to one participant
func (h *Hub) Tell(ctx context.Context, id models.ParticipantID, message string) error {
	return h.send(ctx, &Frame{Type: FrameTell, ID: id, Text: message})
}

// Firework launches a burst at the participant
func (h *Hub) Firework(ctx context.Context, id models.ParticipantID) error {
	return h.send(ctx, &Frame{Type: FrameFirework, ID: id})
}
