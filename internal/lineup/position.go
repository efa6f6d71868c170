package lineup

import "fmt"

// Position is a fielding position or the designated hitter.
type Position string

const (
	Pitcher   Position = "pitcher"
	Catcher   Position = "catcher"
	First     Position = "first"
	Second    Position = "second"
	Third     Position = "third"
	Shortstop Position = "shortstop"
	Left      Position = "left"
	Center    Position = "center"
	Right     Position = "right"
	DH        Position = "dh"
)

// FieldingPositions is the canonical order of the nine fielding positions.
var FieldingPositions = []Position{Pitcher, Catcher, First, Second, Third, Shortstop, Left, Center, Right}

// AllPositions is every position that can appear in a lineup.
var AllPositions = append(append([]Position(nil), FieldingPositions...), DH)

var positionCodes = map[Position]byte{
	Pitcher:   'p',
	Catcher:   'c',
	First:     'f',
	Second:    'n',
	Third:     't',
	Shortstop: 's',
	Left:      'l',
	Center:    'm',
	Right:     'r',
	DH:        'd',
}

var codePositions = reverseCodes(positionCodes)

func init() {
	if err := validateCodes(AllPositions, positionCodes, codePositions); err != nil {
		panic(err)
	}
}

func reverseCodes(codes map[Position]byte) map[byte]Position {
	out := make(map[byte]Position, len(codes))
	for pos, code := range codes {
		out[code] = pos
	}
	return out
}

// validateCodes checks that every position has a unique code and every code maps back.
func validateCodes(all []Position, forward map[Position]byte, reverse map[byte]Position) error {
	if len(forward) != len(all) || len(reverse) != len(all) {
		return fmt.Errorf("lineup: position code tables incomplete (%d positions, %d codes, %d reverse)", len(all), len(forward), len(reverse))
	}
	for _, pos := range all {
		code, ok := forward[pos]
		if !ok {
			return fmt.Errorf("lineup: position %q has no code", pos)
		}
		if back, ok := reverse[code]; !ok || back != pos {
			return fmt.Errorf("lineup: code %q does not map back to %q", code, pos)
		}
	}
	return nil
}

// Code returns the single-letter URL code of the position.
func (p Position) Code() (byte, bool) {
	c, ok := positionCodes[p]
	return c, ok
}

// PositionForCode resolves a URL code.
func PositionForCode(code byte) (Position, bool) {
	p, ok := codePositions[code]
	return p, ok
}

// Valid reports whether p is a known position.
func (p Position) Valid() bool {
	_, ok := positionCodes[p]
	return ok
}

// ActivePositions returns the nine positions in play: all fielders, or the fielders minus
// the pitcher plus DH.
func ActivePositions(hasDH bool) []Position {
	if !hasDH {
		return append([]Position(nil), FieldingPositions...)
	}
	out := make([]Position, 0, len(FieldingPositions))
	for _, p := range FieldingPositions {
		if p != Pitcher {
			out = append(out, p)
		}
	}
	return append(out, DH)
}

func isActive(p Position, hasDH bool) bool {
	switch p {
	case Pitcher:
		return !hasDH
	case DH:
		return hasDH
	default:
		return p.Valid()
	}
}
