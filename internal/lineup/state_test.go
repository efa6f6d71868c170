package lineup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStateIsEmpty(t *testing.T) {
	s := NewState(false)
	require.Len(t, s.Slots, 9)
	for _, slot := range s.Slots {
		assert.Nil(t, slot.Order)
		assert.Nil(t, slot.Player)
	}
	assert.Nil(t, s.StartingPitcher)
}

func TestAssignOrderKeepsOrdersUnique(t *testing.T) {
	s := NewState(false)
	require.True(t, s.AssignOrder(Catcher, intPtr(1)))
	require.True(t, s.AssignOrder(Center, intPtr(1)))

	assert.Nil(t, s.Slot(Catcher).Order)
	assert.Equal(t, 1, *s.Slot(Center).Order)

	assert.False(t, s.AssignOrder(Center, intPtr(10)))
	assert.False(t, s.AssignOrder(Center, intPtr(0)))
	assert.False(t, s.AssignOrder(DH, intPtr(2)), "dh is not active")

	require.True(t, s.AssignOrder(Center, nil))
	assert.Nil(t, s.Slot(Center).Order)
}

func TestAssignPlayerMovesExistingPlayer(t *testing.T) {
	roster := testRoster()
	s := NewState(false)
	p := find(t, roster, "7")

	require.True(t, s.AssignPlayer(Second, p))
	require.True(t, s.AssignPlayer(Third, p))
	assert.Nil(t, s.Slot(Second).Player)
	assert.Equal(t, "7", s.Slot(Third).Player.NumberDisp)

	p.Name = "changed"
	assert.NotEqual(t, "changed", s.Slot(Third).Player.Name, "slot holds its own copy")
}

func TestSwapOrdersAndBattingOrder(t *testing.T) {
	s := NewState(false)
	s.AssignOrder(Shortstop, intPtr(1))
	s.AssignOrder(Center, intPtr(2))
	s.AssignOrder(First, intPtr(3))

	require.True(t, s.SwapOrders(Shortstop, First))
	order := s.BattingOrder()
	require.Len(t, order, 3)
	assert.Equal(t, First, order[0].Position)
	assert.Equal(t, Center, order[1].Position)
	assert.Equal(t, Shortstop, order[2].Position)

	assert.False(t, s.SwapOrders(Shortstop, DH))
}

func TestSetDHReshapesSlots(t *testing.T) {
	roster := testRoster()
	s := NewState(false)
	s.AssignPlayer(Pitcher, find(t, roster, "18"))
	s.AssignPlayer(Catcher, find(t, roster, "50"))

	s.SetDH(true)
	assert.True(t, s.HasDH)
	assert.Len(t, s.Slots, 9)
	assert.Nil(t, s.Slot(Pitcher))
	assert.Nil(t, s.Slot(DH).Player)
	assert.Equal(t, "50", s.Slot(Catcher).Player.NumberDisp)

	s.SetDH(false)
	assert.Nil(t, s.Slot(DH))
	assert.Nil(t, s.Slot(Pitcher).Player)
}

func TestResetKeepsDH(t *testing.T) {
	roster := testRoster()
	s := NewState(true)
	s.AssignPlayer(DH, find(t, roster, "55"))
	s.CustomTitle = "x"
	s.Reset()
	assert.True(t, s.HasDH)
	assert.Equal(t, "", s.CustomTitle)
	assert.Nil(t, s.Slot(DH).Player)
}
