package drill

import (
	"errors"
	"fmt"
)

// Contract errors: the caller passed something the generator never accepts.
var (
	ErrInvalidMode       = errors.New("invalid drill mode")
	ErrInvalidOperator   = errors.New("invalid operator")
	ErrInvalidTransition = errors.New("invalid drill session transition")
)

// Data errors: the inputs are well formed but cannot produce a question.
var (
	ErrInsufficientPlayers = errors.New("insufficient players")
	ErrNonIntegerResult    = errors.New("expression does not evaluate to an integer")
)

// InsufficientPlayersError reports that fewer eligible players exist than the mode needs.
type InsufficientPlayersError struct {
	Need int
	Have int
}

func (e *InsufficientPlayersError) Error() string {
	return fmt.Sprintf("insufficient players: need %d, have %d", e.Need, e.Have)
}

// Is lets errors.Is match ErrInsufficientPlayers.
func (e *InsufficientPlayersError) Is(target error) bool {
	return target == ErrInsufficientPlayers
}

// AsInsufficientPlayersError attempts to unwrap an error into an InsufficientPlayersError.
func AsInsufficientPlayersError(err error) (*InsufficientPlayersError, bool) {
	var ipErr *InsufficientPlayersError
	if errors.As(err, &ipErr) {
		return ipErr, true
	}
	return nil, false
}
