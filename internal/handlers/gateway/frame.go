package gateway

import "github.com/KirkDiggler/eventtools/internal/models"

// FrameType names a gateway message
type FrameType string

// Inbound frames, sent by the platform bridge
const (
	FrameJoin  FrameType = "join"
	FrameQuit  FrameType = "quit"
	FrameMove  FrameType = "move"
	FrameDeath FrameType = "death"
	FrameChat  FrameType = "chat"
)

// Outbound frames, sent to the platform bridge
const (
	FrameChatResult   FrameType = "chat_result"
	FrameEffectApply  FrameType = "effect_apply"
	FrameEffectClear  FrameType = "effect_clear"
	FrameInvulnerable FrameType = "invulnerable"
	FrameEliminated   FrameType = "eliminated"
	FrameRestore      FrameType = "restore"
	FrameTeamDisplay  FrameType = "team_display"
	FrameHeal         FrameType = "heal"
	FrameFreeze       FrameType = "freeze"
	FrameTeleport     FrameType = "teleport"
	FrameBroadcast    FrameType = "broadcast"
	FrameTitle        FrameType = "title"
	FrameTell         FrameType = "tell"
	FrameFirework     FrameType = "firework"
)

// Frame is one JSON text message on the gateway. Only the fields of its type
// are set.
type Frame struct {
	Type FrameType `json:"type"`

	// Participant is the joining participant
	Participant *models.Participant `json:"participant,omitempty"`

	// ID targets a participant
	ID models.ParticipantID `json:"id,omitempty"`

	// Location is the new position for move and the destination for teleport
	Location *models.Location `json:"location,omitempty"`

	// Text is the chat line or the announced message
	Text string `json:"text,omitempty"`

	// Ref correlates a chat frame with its chat_result
	Ref string `json:"ref,omitempty"`

	// Consumed tells the bridge to suppress the chat line
	Consumed bool `json:"consumed,omitempty"`

	Effect       *models.Effect      `json:"effect,omitempty"`
	EffectType   string              `json:"effect_type,omitempty"`
	Invulnerable bool                `json:"invulnerable,omitempty"`
	Frozen       bool                `json:"frozen,omitempty"`
	Spawn        *models.Location    `json:"spawn,omitempty"`
	Team         *models.TeamDisplay `json:"team,omitempty"`

	Title    string `json:"title,omitempty"`
	Subtitle string `json:"subtitle,omitempty"`
}
