// Package model contains domain models passed between layers.
package model

import "strings"

// Category is the coarse role of a player or a slot.
type Category string

// Coarse categories.
const (
	Goalkeeper Category = "goalkeeper"
	Defender   Category = "defender"
	Midfielder Category = "midfielder"
	Forward    Category = "forward"
)

// Categories lists the coarse categories in reporting order.
var Categories = []Category{Goalkeeper, Defender, Midfielder, Forward}

// Level is an ordered rating used for both form and morale.
type Level string

// Levels from best to worst. An empty Level reads as Average.
const (
	Excellent Level = "excellent"
	Good      Level = "good"
	Average   Level = "average"
	Poor      Level = "poor"
	Terrible  Level = "terrible"
)

// Normalize maps the zero value and unknown spellings to Average.
func (l Level) Normalize() Level {
	switch Level(strings.ToLower(string(l))) {
	case Excellent:
		return Excellent
	case Good:
		return Good
	case Poor:
		return Poor
	case Terrible:
		return Terrible
	default:
		return Average
	}
}

// Status is a player's availability. Anything other than StatusAvailable
// (or empty) counts as unavailable.
type Status string

// Known statuses.
const (
	StatusAvailable   Status = "available"
	StatusInjured     Status = "injured"
	StatusSuspended   Status = "suspended"
	StatusUnavailable Status = "unavailable"
)

// Attribute names accepted by Attributes.Get and by weight tables.
const (
	AttrSpeed       = "speed"
	AttrPassing     = "passing"
	AttrTackling    = "tackling"
	AttrShooting    = "shooting"
	AttrDribbling   = "dribbling"
	AttrPositioning = "positioning"
	AttrStamina     = "stamina"
)

// AttributeNames lists every attribute in vector order.
var AttributeNames = []string{
	AttrSpeed, AttrPassing, AttrTackling, AttrShooting, AttrDribbling, AttrPositioning, AttrStamina,
}

// Attributes is the fixed skill vector, each value conventionally 0-100.
type Attributes struct {
	Speed       float64 `json:"speed"`
	Passing     float64 `json:"passing"`
	Tackling    float64 `json:"tackling"`
	Shooting    float64 `json:"shooting"`
	Dribbling   float64 `json:"dribbling"`
	Positioning float64 `json:"positioning"`
	Stamina     float64 `json:"stamina"`
}

// Get returns the attribute by name, or 0 for unknown names.
func (a Attributes) Get(name string) float64 {
	switch name {
	case AttrSpeed:
		return a.Speed
	case AttrPassing:
		return a.Passing
	case AttrTackling:
		return a.Tackling
	case AttrShooting:
		return a.Shooting
	case AttrDribbling:
		return a.Dribbling
	case AttrPositioning:
		return a.Positioning
	case AttrStamina:
		return a.Stamina
	}
	return 0
}

// Position is a point on the normalized field.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Player is a rostered entity.
type Player struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Role       string     `json:"role"`
	Team       string     `json:"team"`
	Status     Status     `json:"status,omitempty"`
	Form       Level      `json:"form,omitempty"`
	Morale     Level      `json:"morale,omitempty"`
	Attributes Attributes `json:"attributes"`
	Position   Position   `json:"position"`
}

// Available reports whether the player can be picked without penalty.
func (p Player) Available() bool {
	return p.Status == "" || p.Status == StatusAvailable
}

// FindPlayer returns the index of the player with id, or -1.
func FindPlayer(roster []Player, id string) int {
	if id == "" {
		return -1
	}
	for i := range roster {
		if roster[i].ID == id {
			return i
		}
	}
	return -1
}
