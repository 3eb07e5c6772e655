package models

import (
	"fmt"
	"time"
)

// EventState is the lifecycle snapshot of the current event
type EventState struct {
	// Active reports whether an event is running
	Active bool

	// Title is the display title of the running event
	Title string

	// StartedAt is when the event started, zero when no event ran
	StartedAt time.Time

	// RunID identifies one activation of the event
	RunID string

	// Epoch increments on every activation
	Epoch uint64
}

// Elapsed returns the running time of the event at now, zero when inactive
func (s EventState) Elapsed(now time.Time) time.Duration {
	if !s.Active || s.StartedAt.IsZero() {
		return 0
	}
	return now.Sub(s.StartedAt)
}

// EventStatus is the flattened view of the engine used by status displays
type EventStatus struct {
	Active bool
	Title  string

	AliveCount      int
	EliminatedCount int
	TotalCount      int

	// Elapsed is the running time of the event
	Elapsed time.Duration

	// Vote is the state of the current vote
	Vote VoteStatus
}

// ElapsedClock renders the running time as mm:ss
func (s EventStatus) ElapsedClock() string {
	total := int(s.Elapsed / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// EventOutcome describes how an event ended
type EventOutcome string

const (
	// EventOutcomeWinner means a single participant survived
	EventOutcomeWinner EventOutcome = "winner"

	// EventOutcomeTeamWinner means a single team survived
	EventOutcomeTeamWinner EventOutcome = "team_winner"

	// EventOutcomeNoWinner means nobody survived or the survivor left
	EventOutcomeNoWinner EventOutcome = "no_winner"

	// EventOutcomeStopped means an administrator stopped the event
	EventOutcomeStopped EventOutcome = "stopped"
)

// EventResult is the archived summary of a finished event
type EventResult struct {
	// RunID identifies the activation the result belongs to
	RunID string `json:"run_id"`

	// Title is the title the event ran under
	Title string `json:"title"`

	// Outcome is how the event ended
	Outcome EventOutcome `json:"outcome"`

	// Winner is the surviving participant for solo wins
	Winner *Participant `json:"winner,omitempty"`

	// WinningTeam is the name of the surviving team for team wins
	WinningTeam string `json:"winning_team,omitempty"`

	// Placements are the ranked finishers
	Placements []Placement `json:"placements,omitempty"`

	// StartedAt is when the event started
	StartedAt time.Time `json:"started_at"`

	// EndedAt is when the event ended
	EndedAt time.Time `json:"ended_at"`
}
