package models

// VoteStatus is a point-in-time view of the current vote
type VoteStatus struct {
	// Question is the question being voted on, empty when no vote ran
	Question string

	// InProgress reports whether ballots are being accepted
	InProgress bool

	// SecondsRemaining is the countdown until the vote closes
	SecondsRemaining int

	// Yes is the number of yes ballots cast so far
	Yes int

	// No is the number of no ballots cast so far
	No int
}

// Total returns the number of ballots cast
func (s VoteStatus) Total() int {
	return s.Yes + s.No
}

// YesPercent returns the share of yes ballots, 0 when nobody voted
func (s VoteStatus) YesPercent() float64 {
	return percent(s.Yes, s.Total())
}

// Leading returns "YES", "NO" or "Tie"
func (s VoteStatus) Leading() string {
	switch {
	case s.Yes > s.No:
		return "YES"
	case s.No > s.Yes:
		return "NO"
	default:
		return "Tie"
	}
}

// VoteResult is the tally announced when a vote ends
type VoteResult struct {
	Question string

	Yes int
	No  int

	YesPercent float64
	NoPercent  float64

	// TotalVoters is the number of ballots cast
	TotalVoters int

	// TotalConnected is the number of connected participants when the vote ended
	TotalConnected int
}

// NewVoteResult tallies ballots into a result
func NewVoteResult(question string, ballots map[ParticipantID]bool, connected int) *VoteResult {
	result := &VoteResult{
		Question:       question,
		TotalVoters:    len(ballots),
		TotalConnected: connected,
	}
	for _, yes := range ballots {
		if yes {
			result.Yes++
		} else {
			result.No++
		}
	}
	result.YesPercent = percent(result.Yes, result.TotalVoters)
	result.NoPercent = percent(result.No, result.TotalVoters)
	return result
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) * 100 / float64(total)
}
