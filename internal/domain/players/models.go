package players

import "errors"

// ErrPlayerNotFound is returned when a roster lookup has no match.
var ErrPlayerNotFound = errors.New("player not found")

// Role classifies a roster entry.
type Role string

const (
	RoleCoach    Role = "coach"
	RoleRoster   Role = "roster"
	RoleTraining Role = "training"
)

// Player is one entry of a season roster as stored in the per-year JSON files.
// NumberDisp is the printed uniform number ("00", "122"); NumberCalc is the value used in arithmetic.
type Player struct {
	Year        int    `json:"year"`
	Name        string `json:"name"`
	NameKana    string `json:"nameKana"`
	UniformName string `json:"uniformName"`
	NumberDisp  string `json:"numberDisp"`
	NumberCalc  int    `json:"numberCalc"`
	Role        Role   `json:"role"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	HeightCM    int    `json:"heightCm,omitempty"`
	WeightKG    int    `json:"weightKg,omitempty"`
}

// RoleFilter selects which roles take part in a listing or a drill.
type RoleFilter string

const (
	FilterRoster RoleFilter = "roster"
	FilterAll    RoleFilter = "all"
)

// Valid reports whether f is a known filter.
func (f RoleFilter) Valid() bool {
	return f == FilterRoster || f == FilterAll
}

// Allows reports whether a player with role r passes the filter.
func (f RoleFilter) Allows(r Role) bool {
	switch f {
	case FilterRoster:
		return r == RoleRoster
	case FilterAll:
		return r == RoleCoach || r == RoleRoster || r == RoleTraining
	default:
		return false
	}
}

// Filter returns the players allowed by f, preserving order.
func Filter(items []Player, f RoleFilter) []Player {
	out := make([]Player, 0, len(items))
	for _, p := range items {
		if f.Allows(p.Role) {
			out = append(out, p)
		}
	}
	return out
}
