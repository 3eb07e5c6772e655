package participant

import "github.com/KirkDiggler/eventtools/internal/models"

// UpsertInput contains parameters for recording a connection
type UpsertInput struct {
	Participant *models.Participant
}

// RemoveInput contains parameters for dropping a connection
type RemoveInput struct {
	ParticipantID models.ParticipantID
}

// UpdateLocationInput contains parameters for moving a participant
type UpdateLocationInput struct {
	ParticipantID models.ParticipantID
	Location      models.Location
}
