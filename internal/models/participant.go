package models

import "math"

// ParticipantID is the opaque, stable identifier the host platform assigns to a
// connected session-holder
type ParticipantID string

// String returns the raw identifier
func (id ParticipantID) String() string {
	return string(id)
}

// Participant represents a connected session-holder as reported by the platform
type Participant struct {
	// ID is the platform identifier of the participant
	ID ParticipantID `json:"id"`

	// Name is the display name of the participant
	Name string `json:"name"`

	// Exempt marks an administrative bypass; exempt participants are never
	// eliminated and never receive zone effects
	Exempt bool `json:"exempt"`

	// Location is the last position reported by the platform
	Location Location `json:"location"`
}

// Location is a position inside a named world
type Location struct {
	// World is the identity of the space the coordinates belong to
	World string `json:"world"`

	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// DistanceTo returns the Euclidean distance to other, or +Inf when the two
// locations are in different worlds
func (l Location) DistanceTo(other Location) float64 {
	if l.World != other.World {
		return math.Inf(1)
	}
	dx := l.X - other.X
	dy := l.Y - other.Y
	dz := l.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// ParticipantFilter selects participants by elimination status
type ParticipantFilter string

const (
	// ParticipantFilterAll selects every non-exempt participant
	ParticipantFilterAll ParticipantFilter = "all"

	// ParticipantFilterAlive selects non-eliminated participants
	ParticipantFilterAlive ParticipantFilter = "alive"

	// ParticipantFilterEliminated selects eliminated participants
	ParticipantFilterEliminated ParticipantFilter = "eliminated"
)
