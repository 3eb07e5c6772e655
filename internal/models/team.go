package models

import (
	"fmt"
	"strings"
)

// TeamColor is the display color of a team
type TeamColor string

// Team colors understood by the platform
const (
	TeamColorBlack       TeamColor = "black"
	TeamColorDarkBlue    TeamColor = "dark_blue"
	TeamColorDarkGreen   TeamColor = "dark_green"
	TeamColorDarkAqua    TeamColor = "dark_aqua"
	TeamColorDarkRed     TeamColor = "dark_red"
	TeamColorDarkPurple  TeamColor = "dark_purple"
	TeamColorGold        TeamColor = "gold"
	TeamColorGray        TeamColor = "gray"
	TeamColorDarkGray    TeamColor = "dark_gray"
	TeamColorBlue        TeamColor = "blue"
	TeamColorGreen       TeamColor = "green"
	TeamColorAqua        TeamColor = "aqua"
	TeamColorRed         TeamColor = "red"
	TeamColorLightPurple TeamColor = "light_purple"
	TeamColorYellow      TeamColor = "yellow"
	TeamColorWhite       TeamColor = "white"
)

// TeamColors lists every valid team color in display order
var TeamColors = []TeamColor{
	TeamColorBlack, TeamColorDarkBlue, TeamColorDarkGreen, TeamColorDarkAqua,
	TeamColorDarkRed, TeamColorDarkPurple, TeamColorGold, TeamColorGray,
	TeamColorDarkGray, TeamColorBlue, TeamColorGreen, TeamColorAqua,
	TeamColorRed, TeamColorLightPurple, TeamColorYellow, TeamColorWhite,
}

// ParseTeamColor parses a team color name
func ParseTeamColor(s string) (TeamColor, error) {
	c := TeamColor(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range TeamColors {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown team color %q", s)
}

// Team is a named group of participants competing together
type Team struct {
	// Name is the display name of the team, unique case-insensitively
	Name string

	// Color is the display color of the team
	Color TeamColor

	// Members are the participants currently on the team
	Members []ParticipantID
}

// Size returns the number of members
func (t *Team) Size() int {
	return len(t.Members)
}

// Has reports whether id is a member of the team
func (t *Team) Has(id ParticipantID) bool {
	for _, m := range t.Members {
		if m == id {
			return true
		}
	}
	return false
}

// TeamDisplay is the marker the platform shows next to a team member's name
type TeamDisplay struct {
	TeamName string    `json:"team_name"`
	Color    TeamColor `json:"color"`
}
