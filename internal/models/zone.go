package models

import (
	"fmt"
	"math"
	"strings"
)

// ZoneType is the behavioral contract of a zone
type ZoneType int

const (
	// ZoneTypeEffect grants a buff to participants inside the zone
	ZoneTypeEffect ZoneType = iota + 1

	// ZoneTypeMustStay eliminates participants found outside the zone
	ZoneTypeMustStay

	// ZoneTypeSafe makes participants inside the zone invulnerable
	ZoneTypeSafe
)

// String returns the command-facing name of the zone type
func (t ZoneType) String() string {
	switch t {
	case ZoneTypeEffect:
		return "effect"
	case ZoneTypeMustStay:
		return "must_stay"
	case ZoneTypeSafe:
		return "safe"
	default:
		return fmt.Sprintf("ZoneType(%d)", int(t))
	}
}

// ParseZoneType parses the command-facing name of a zone type
func ParseZoneType(s string) (ZoneType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "effect":
		return ZoneTypeEffect, nil
	case "must_stay", "muststay", "must-stay":
		return ZoneTypeMustStay, nil
	case "safe":
		return ZoneTypeSafe, nil
	default:
		return 0, fmt.Errorf("unknown zone type %q", s)
	}
}

// Shape is the geometry used for containment tests
type Shape int

const (
	// ShapeCircle contains locations within Euclidean distance of the center
	ShapeCircle Shape = iota + 1

	// ShapeSquare contains locations within Chebyshev distance of the center
	// on the horizontal plane
	ShapeSquare
)

// String returns the command-facing name of the shape
func (s Shape) String() string {
	switch s {
	case ShapeCircle:
		return "circle"
	case ShapeSquare:
		return "square"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape parses the command-facing name of a shape
func ParseShape(s string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "circle":
		return ShapeCircle, nil
	case "square":
		return ShapeSquare, nil
	default:
		return 0, fmt.Errorf("unknown shape %q", s)
	}
}

// Effect is a buff applied by an effect zone
type Effect struct {
	// Type is the platform name of the effect, e.g. "speed"
	Type string `json:"type"`

	// Amplifier is the effect level, starting at 0
	Amplifier int `json:"amplifier"`

	// Seconds limits how long the platform keeps the effect, 0 until cleared
	Seconds int `json:"seconds,omitempty"`
}

// String renders the effect as type:amplifier
func (e Effect) String() string {
	return fmt.Sprintf("%s:%d", e.Type, e.Amplifier)
}

// Zone is a geofenced region with a behavioral contract
type Zone struct {
	// Name is the display name of the zone, unique case-insensitively
	Name string

	// Center is the middle of the zone
	Center Location

	// Shape determines the containment test
	Shape Shape

	// Radius is the clamped radius of the zone
	Radius int

	// Type is the behavioral contract of the zone
	Type ZoneType

	// Effect is the buff granted by effect zones, nil for other types
	Effect *Effect

	// Active reports whether the zone is currently enforced
	Active bool

	// Occupants are the participants the zone last applied its contract to
	Occupants []ParticipantID
}

// Contains reports whether loc lies inside the zone
func (z *Zone) Contains(loc Location) bool {
	if loc.World != z.Center.World {
		return false
	}

	radius := float64(z.Radius)
	switch z.Shape {
	case ShapeCircle:
		return loc.DistanceTo(z.Center) <= radius
	case ShapeSquare:
		dx := math.Abs(loc.X - z.Center.X)
		dz := math.Abs(loc.Z - z.Center.Z)
		return math.Max(dx, dz) <= radius
	default:
		return false
	}
}
