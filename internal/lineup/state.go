package lineup

import (
	"sort"

	"github.com/preston-bernstein/sebango-service/internal/domain/players"
)

// MaxOrder is the last batting order spot.
const MaxOrder = 9

// Slot is one position's assignment. A nil Order means no batting order yet.
type Slot struct {
	Order    *int            `json:"order"`
	Player   *players.Player `json:"player"`
	Position Position        `json:"position"`
}

// State is the editable lineup carried in the page and its share URL.
type State struct {
	Slots           []Slot              `json:"slots"`
	StartingPitcher *players.Player     `json:"startingPitcher"`
	HasDH           bool                `json:"hasDH"`
	IsFarmMode      bool                `json:"isFarmMode"`
	NameDisplay     players.NameDisplay `json:"nameDisplay"`
	CustomTitle     string              `json:"customTitle"`
}

// NewState returns a fresh lineup with one empty slot per active position.
func NewState(hasDH bool) *State {
	s := &State{HasDH: hasDH, NameDisplay: players.DefaultNameDisplay}
	s.Slots = emptySlots(ActivePositions(hasDH))
	return s
}

func emptySlots(positions []Position) []Slot {
	out := make([]Slot, len(positions))
	for i, p := range positions {
		out[i] = Slot{Position: p}
	}
	return out
}

// Reset clears every assignment and setting except the DH flag.
func (s *State) Reset() {
	*s = *NewState(s.HasDH)
}

// Slot returns the slot at pos, or nil when pos is not in the lineup.
func (s *State) Slot(pos Position) *Slot {
	for i := range s.Slots {
		if s.Slots[i].Position == pos {
			return &s.Slots[i]
		}
	}
	return nil
}

// AssignPlayer puts p at pos (nil clears it). A player already placed elsewhere is moved.
func (s *State) AssignPlayer(pos Position, p *players.Player) bool {
	slot := s.Slot(pos)
	if slot == nil {
		return false
	}
	if p != nil {
		for i := range s.Slots {
			other := &s.Slots[i]
			if other.Position != pos && other.Player != nil && other.Player.NumberDisp == p.NumberDisp {
				other.Player = nil
			}
		}
		cp := *p
		p = &cp
	}
	slot.Player = p
	return true
}

// AssignOrder sets the batting order of pos (nil clears it). Another slot holding the same
// order loses it, keeping orders unique.
func (s *State) AssignOrder(pos Position, order *int) bool {
	slot := s.Slot(pos)
	if slot == nil {
		return false
	}
	if order != nil && (*order < 1 || *order > MaxOrder) {
		return false
	}
	if order != nil {
		for i := range s.Slots {
			other := &s.Slots[i]
			if other.Position != pos && other.Order != nil && *other.Order == *order {
				other.Order = nil
			}
		}
		o := *order
		order = &o
	}
	slot.Order = order
	return true
}

// SwapOrders exchanges the batting orders of two positions, as a drag reorder does.
func (s *State) SwapOrders(a, b Position) bool {
	sa, sb := s.Slot(a), s.Slot(b)
	if sa == nil || sb == nil {
		return false
	}
	sa.Order, sb.Order = sb.Order, sa.Order
	return true
}

// SetDH switches between the nine-fielder and DH position sets. Enabling DH drops the pitcher
// slot and adds an empty DH slot; disabling does the reverse. Other slots are kept.
func (s *State) SetDH(hasDH bool) {
	if s.HasDH == hasDH {
		return
	}
	existing := make(map[Position]Slot, len(s.Slots))
	for _, slot := range s.Slots {
		existing[slot.Position] = slot
	}
	s.HasDH = hasDH
	positions := ActivePositions(hasDH)
	next := make([]Slot, len(positions))
	for i, p := range positions {
		if slot, ok := existing[p]; ok {
			next[i] = slot
			continue
		}
		next[i] = Slot{Position: p}
	}
	s.Slots = next
}

// BattingOrder returns the slots that have an order, ascending by order.
func (s *State) BattingOrder() []Slot {
	out := make([]Slot, 0, len(s.Slots))
	for _, slot := range s.Slots {
		if slot.Order != nil {
			out = append(out, slot)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return *out[i].Order < *out[j].Order })
	return out
}
