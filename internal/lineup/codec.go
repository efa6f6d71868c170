package lineup

import (
	"errors"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// Query parameter keys of a shared lineup.
const (
	ParamLineup          = "lineup"
	ParamStartingPitcher = "sp"
	ParamDH              = "dh"
	ParamFarm            = "farm"
	ParamNameDisplay     = "name"
	ParamTitle           = "title"
)

const tokenSeparator = "."

// tokenPattern: order digits, one position letter, then the display number.
var tokenPattern = regexp.MustCompile(`^(\d+)([a-z])(.+)$`)

// ErrUnencodableSlot marks a slot whose token would not survive decoding: a negative order, an
// empty display number, or one containing the token separator.
var ErrUnencodableSlot = errors.New("lineup slot cannot be encoded")

// Token is one parsed lineup entry.
type Token struct {
	Order      *int
	Position   Position
	NumberDisp string
}

// Encode serializes s into query parameters. Empty slots are not written; when no slot holds a
// player the lineup parameter is omitted entirely. Flags and defaults are omitted rather than
// written as zero values. Slots that would not decode back are dropped.
func Encode(s State) url.Values {
	params, _ := EncodeWithReport(s)
	return params
}

// EncodeWithReport is Encode plus the number of occupied slots it had to drop.
func EncodeWithReport(s State) (params url.Values, dropped int) {
	params = url.Values{}

	tokens := make([]string, 0, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.Player == nil {
			continue
		}
		tok, ok := encodeSlot(slot)
		if !ok {
			dropped++
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) > 0 {
		params.Set(ParamLineup, strings.Join(tokens, tokenSeparator))
	}

	if s.StartingPitcher != nil {
		params.Set(ParamStartingPitcher, s.StartingPitcher.NumberDisp)
	}
	if s.HasDH {
		params.Set(ParamDH, "1")
	}
	if s.IsFarmMode {
		params.Set(ParamFarm, "1")
	}
	if s.NameDisplay != "" && s.NameDisplay != players.DefaultNameDisplay {
		params.Set(ParamNameDisplay, string(s.NameDisplay))
	}
	if s.CustomTitle != "" {
		params.Set(ParamTitle, s.CustomTitle)
	}
	return params, dropped
}

func encodeSlot(slot Slot) (string, bool) {
	code, ok := slot.Position.Code()
	if !ok {
		return "", false
	}
	order := 0
	if slot.Order != nil {
		order = *slot.Order
	}
	number := slot.Player.NumberDisp
	if order < 0 || strings.Contains(number, tokenSeparator) {
		return "", false
	}
	tok := strconv.Itoa(order) + string(code) + number
	if _, ok := parseToken(tok); !ok {
		return "", false
	}
	return tok, true
}

// ParseTokens splits a lineup parameter into tokens. Tokens that do not match the pattern or carry
// an unknown position code are dropped and counted in skipped.
func ParseTokens(raw string) (tokens []Token, skipped int) {
	if raw == "" {
		return nil, 0
	}
	for _, part := range strings.Split(raw, tokenSeparator) {
		tok, ok := parseToken(part)
		if !ok {
			skipped++
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens, skipped
}

func parseToken(raw string) (Token, bool) {
	m := tokenPattern.FindStringSubmatch(raw)
	if m == nil {
		return Token{}, false
	}
	order, err := strconv.Atoi(m[1])
	if err != nil {
		return Token{}, false
	}
	pos, ok := PositionForCode(m[2][0])
	if !ok {
		return Token{}, false
	}
	tok := Token{Position: pos, NumberDisp: m[3]}
	if order != 0 {
		tok.Order = &order
	}
	return tok, true
}

// Decode restores a lineup from query parameters against roster. It returns nil when the lineup
// parameter is absent. Malformed tokens are skipped, unknown numbers keep their slot with a nil
// player, and missing positions are padded with empty slots.
func Decode(params url.Values, roster []players.Player) *State {
	s, _ := DecodeWithReport(params, roster)
	return s
}

// Report describes what a decode had to discard.
type Report struct {
	Tokens  int `json:"tokens"`  // tokens kept
	Skipped int `json:"skipped"` // malformed, unknown-code, duplicate or inactive-position tokens
	Missing int `json:"missing"` // kept tokens whose number is not on the roster
}

// DecodeWithReport is Decode plus a Report of discarded input.
func DecodeWithReport(params url.Values, roster []players.Player) (*State, Report) {
	var report Report
	if _, ok := params[ParamLineup]; !ok {
		return nil, report
	}

	byNumber := make(map[string]players.Player, len(roster))
	for _, p := range roster {
		if _, dup := byNumber[p.NumberDisp]; !dup {
			byNumber[p.NumberDisp] = p
		}
	}
	lookup := func(numberDisp string) *players.Player {
		if p, ok := byNumber[numberDisp]; ok {
			return &p
		}
		return nil
	}

	s := &State{
		HasDH:       params.Get(ParamDH) == "1",
		IsFarmMode:  params.Get(ParamFarm) == "1",
		CustomTitle: params.Get(ParamTitle),
	}
	s.NameDisplay, _ = players.ParseNameDisplay(params.Get(ParamNameDisplay))
	if sp := params.Get(ParamStartingPitcher); sp != "" {
		s.StartingPitcher = lookup(sp)
	}

	tokens, skipped := ParseTokens(params.Get(ParamLineup))
	report.Skipped = skipped

	placed := make(map[Position]Slot, len(tokens))
	for _, tok := range tokens {
		if _, dup := placed[tok.Position]; dup || !isActive(tok.Position, s.HasDH) {
			report.Skipped++
			continue
		}
		slot := Slot{Order: tok.Order, Position: tok.Position, Player: lookup(tok.NumberDisp)}
		if slot.Player == nil {
			report.Missing++
		}
		placed[tok.Position] = slot
		report.Tokens++
	}

	positions := ActivePositions(s.HasDH)
	s.Slots = make([]Slot, len(positions))
	for i, pos := range positions {
		if slot, ok := placed[pos]; ok {
			s.Slots[i] = slot
			continue
		}
		s.Slots[i] = Slot{Position: pos}
	}
	return s, report
}

// QueryString renders params in the stable order url.Values.Encode uses.
func QueryString(params url.Values) string {
	return params.Encode()
}
