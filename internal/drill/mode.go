package drill

import (
	"fmt"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

const (
	MinPlayerNum = 2
	MaxPlayerNum = 4
)

// Mode is the user-controlled drill configuration.
type Mode struct {
	Role        players.RoleFilter  `json:"role"`
	PlayerNum   int                 `json:"playerNum"`
	Operators   []Operator          `json:"operators"`
	NameDisplay players.NameDisplay `json:"nameDisplay"`
}

// DefaultMode is two roster players with addition only.
func DefaultMode() Mode {
	return Mode{
		Role:        players.FilterRoster,
		PlayerNum:   MinPlayerNum,
		Operators:   []Operator{Add},
		NameDisplay: players.DefaultNameDisplay,
	}
}

// Validate checks the mode against the generator's contract.
func (m Mode) Validate() error {
	if !m.Role.Valid() {
		return fmt.Errorf("%w: role %q", ErrInvalidMode, m.Role)
	}
	if m.PlayerNum < MinPlayerNum || m.PlayerNum > MaxPlayerNum {
		return fmt.Errorf("%w: playerNum %d not in %d..%d", ErrInvalidMode, m.PlayerNum, MinPlayerNum, MaxPlayerNum)
	}
	if len(m.Operators) == 0 {
		return fmt.Errorf("%w: no operators enabled", ErrInvalidMode)
	}
	for _, op := range m.Operators {
		if !op.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidOperator, string(op))
		}
	}
	return nil
}
