package models

import "fmt"

// PlacementLabel is the ordinal suffix shown next to a rank
type PlacementLabel int

const (
	PlacementFirst PlacementLabel = iota + 1
	PlacementSecond
	PlacementThird
	PlacementFourth
	PlacementFifth
)

// LabelForRank returns the label of a 1-based rank, false past the fifth place
func LabelForRank(rank int) (PlacementLabel, bool) {
	if rank < int(PlacementFirst) || rank > int(PlacementFifth) {
		return 0, false
	}
	return PlacementLabel(rank), true
}

// String returns the ordinal text of the label
func (l PlacementLabel) String() string {
	switch l {
	case PlacementFirst:
		return "1st"
	case PlacementSecond:
		return "2nd"
	case PlacementThird:
		return "3rd"
	case PlacementFourth:
		return "4th"
	case PlacementFifth:
		return "5th"
	default:
		return fmt.Sprintf("%dth", int(l))
	}
}

// Placement is one ranked finisher of an event
type Placement struct {
	// Rank is the 1-based finishing position
	Rank int `json:"rank"`

	// ParticipantID identifies the finisher
	ParticipantID ParticipantID `json:"participant_id"`

	// Name is the display name at the time the event ended
	Name string `json:"name"`

	// Label is the ordinal suffix for the rank
	Label PlacementLabel `json:"label"`
}
