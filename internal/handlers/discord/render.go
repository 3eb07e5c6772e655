package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/KirkDiggler/eventtools/internal/models"
	"github.com/KirkDiggler/eventtools/internal/services/zone"
)

const (
	colorOK      = 0x00ff00
	colorError   = 0xff0000
	colorNeutral = 0x5865f2
	colorGold    = 0xf1c40f
)

// maxListed caps names shown in one embed field
const maxListed = 40

// renderStatus renders the status snapshot
func renderStatus(status *models.EventStatus) *discordgo.MessageEmbed {
	state := "Idle"
	color := colorNeutral
	if status.Active {
		state = "Active"
		color = colorOK
	}

	title := "Event status"
	if status.Title != "" && status.Active {
		title = status.Title
	}

	fields := []*discordgo.MessageEmbedField{
		{Name: "State", Value: state, Inline: true},
		{Name: "Alive", Value: fmt.Sprintf("%d", status.AliveCount), Inline: true},
		{Name: "Eliminated", Value: fmt.Sprintf("%d", status.EliminatedCount), Inline: true},
		{Name: "Total", Value: fmt.Sprintf("%d", status.TotalCount), Inline: true},
	}
	if status.Active {
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Elapsed", Value: status.ElapsedClock(), Inline: true})
	}

	if v := status.Vote; v.InProgress {
		value := fmt.Sprintf("%s\n%ds left, %d votes, %.1f%% yes, leading: %s",
			v.Question, v.SecondsRemaining, v.Total(), v.YesPercent(), v.Leading())
		fields = append(fields, &discordgo.MessageEmbedField{Name: "Vote", Value: value})
	}

	return &discordgo.MessageEmbed{
		Title:  title,
		Color:  color,
		Fields: fields,
	}
}

// renderPlacements renders ranked finishers
func renderPlacements(placements []models.Placement) *discordgo.MessageEmbed {
	if len(placements) == 0 {
		return &discordgo.MessageEmbed{Title: "Placements", Description: "Nobody has been eliminated yet.", Color: colorNeutral}
	}

	var b strings.Builder
	for _, p := range placements {
		fmt.Fprintf(&b, "**%s** %s\n", p.Label, p.Name)
	}
	return &discordgo.MessageEmbed{Title: "Placements", Description: b.String(), Color: colorGold}
}

// renderParticipants renders a filtered participant listing
func renderParticipants(filter models.ParticipantFilter, participants []*models.Participant) *discordgo.MessageEmbed {
	title := fmt.Sprintf("Participants (%s): %d", filter, len(participants))
	if len(participants) == 0 {
		return &discordgo.MessageEmbed{Title: title, Description: "Nobody.", Color: colorNeutral}
	}

	names := make([]string, 0, min(len(participants), maxListed))
	for i, p := range participants {
		if i == maxListed {
			names = append(names, fmt.Sprintf("and %d more", len(participants)-maxListed))
			break
		}
		names = append(names, fmt.Sprintf("%s (`%s`)", p.Name, p.ID))
	}
	return &discordgo.MessageEmbed{Title: title, Description: strings.Join(names, "\n"), Color: colorNeutral}
}

// renderResults renders archived events, newest first
func renderResults(results []*models.EventResult) *discordgo.MessageEmbed {
	if len(results) == 0 {
		return &discordgo.MessageEmbed{Title: "Recent events", Description: "No finished events yet.", Color: colorNeutral}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(results))
	for _, r := range results {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:  fmt.Sprintf("%s (%s)", r.Title, r.EndedAt.Format("2006-01-02 15:04")),
			Value: describeOutcome(r),
		})
	}
	return &discordgo.MessageEmbed{Title: "Recent events", Color: colorGold, Fields: fields}
}

func describeOutcome(r *models.EventResult) string {
	switch r.Outcome {
	case models.EventOutcomeWinner:
		if r.Winner != nil {
			return fmt.Sprintf("Winner: %s", r.Winner.Name)
		}
	case models.EventOutcomeTeamWinner:
		return fmt.Sprintf("Winning team: %s", r.WinningTeam)
	case models.EventOutcomeStopped:
		return "Stopped"
	}
	return "No winner"
}

// renderTeams renders every team with its roster size
func renderTeams(teams []*models.Team) *discordgo.MessageEmbed {
	if len(teams) == 0 {
		return &discordgo.MessageEmbed{Title: "Teams", Description: "No teams.", Color: colorNeutral}
	}

	fields := make([]*discordgo.MessageEmbedField, 0, len(teams))
	for _, t := range teams {
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("%s (%s)", t.Name, t.Color),
			Value:  fmt.Sprintf("%d members", t.Size()),
			Inline: true,
		})
	}
	return &discordgo.MessageEmbed{Title: "Teams", Color: colorNeutral, Fields: fields}
}

// renderZones renders every zone on its own line
func renderZones(zones []*models.Zone) *discordgo.MessageEmbed {
	if len(zones) == 0 {
		return &discordgo.MessageEmbed{Title: "Zones", Description: "No zones.", Color: colorNeutral}
	}

	lines := make([]string, 0, len(zones))
	for _, z := range zones {
		lines = append(lines, zone.Describe(z))
	}
	return &discordgo.MessageEmbed{Title: "Zones", Description: strings.Join(lines, "\n"), Color: colorNeutral}
}

// renderVoteResult renders the tally of a finished vote
func renderVoteResult(r *models.VoteResult) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "Vote results",
		Description: r.Question,
		Color:       colorGold,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Yes", Value: fmt.Sprintf("%d (%.1f%%)", r.Yes, r.YesPercent), Inline: true},
			{Name: "No", Value: fmt.Sprintf("%d (%.1f%%)", r.No, r.NoPercent), Inline: true},
			{Name: "Turnout", Value: fmt.Sprintf("%d of %d", r.TotalVoters, r.TotalConnected), Inline: true},
		},
	}
}
