package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSmallBlind = 25
	testBigBlind   = 50
	testStack      = 10000
)

func TestJoinSeatsPlayers(t *testing.T) {
	g := lobby(t, 4)

	require.Len(t, g.Players, 4)
	for i, p := range g.Players {
		assert.Equal(t, testStack, p.Stack, "seat %d", i)
		assert.Nil(t, p.Hole)
	}
	assert.Equal(t, Lobby, g.Phase)
}

func TestJoinDuplicateSeat(t *testing.T) {
	g := lobby(t, 2)

	_, err := g.Join("p0", "p0", testStack)
	assert.ErrorIs(t, err, ErrKind(DuplicateSeat))
}

func TestJoinMidHand(t *testing.T) {
	g := dealt(t, 2)

	_, err := g.Join("late", "late", testStack)
	assert.ErrorIs(t, err, ErrKind(InvalidStateForAction))
}

func TestLeaveLobby(t *testing.T) {
	g := lobby(t, 3)

	g = mustLeave(t, g, "p1")
	require.Len(t, g.Players, 2)
	assert.Nil(t, g.Seat("p1"))
}

func TestLeaveUnknownPlayer(t *testing.T) {
	g := lobby(t, 2)

	_, err := g.Leave("ghost")
	assert.ErrorIs(t, err, ErrKind(PlayerNotFound))
}

func TestLeaveMidHandRejected(t *testing.T) {
	g := dealt(t, 3)

	_, err := g.Leave("p0")
	assert.ErrorIs(t, err, ErrKind(CannotLeaveMidHand))
}

func TestLeaveAfterFolding(t *testing.T) {
	g := dealt(t, 4)
	before := g.TableMoney()

	// p2 is first to act and folds out of the hand, then leaves.
	g = mustFold(t, g)
	g = mustLeave(t, g, "p2")

	require.Len(t, g.Players, 3)
	// The leaver's stack went with them; anything they had contributed
	// stays at stake.
	assert.Equal(t, before-testStack, g.TableMoney())
}

func TestDealNeedsTwoPlayers(t *testing.T) {
	g := lobby(t, 1)

	_, err := g.Deal()
	assert.ErrorIs(t, err, ErrKind(NotEnoughPlayers))
}

func TestDealMidHandRejected(t *testing.T) {
	g := dealt(t, 2)

	_, err := g.Deal()
	assert.ErrorIs(t, err, ErrKind(InvalidStateForAction))
}

// Scenario: join four players, deal, pay blinds.
func TestDealAndBlinds(t *testing.T) {
	g := dealt(t, 4)

	assert.Equal(t, PreFlop, g.Phase)
	assert.Empty(t, g.Board)
	assert.Equal(t, testSmallBlind, g.Players[0].RoundBet)
	assert.Equal(t, testBigBlind, g.Players[1].RoundBet)
	assert.Equal(t, testStack-testSmallBlind, g.Players[0].Stack)
	assert.Equal(t, testStack-testBigBlind, g.Players[1].Stack)
	assert.Equal(t, 2, g.Current)
	require.NotNil(t, g.LastRaise)
	assert.Equal(t, Raise{Position: 1, Amount: testBigBlind}, *g.LastRaise)

	for _, p := range g.Players {
		require.Len(t, p.Hole, 2)
	}
	assert.NotEmpty(t, g.HandID)
}

func TestDealUniqueCards(t *testing.T) {
	g := dealt(t, 4)

	seen := make(map[string]bool)
	for _, p := range g.Players {
		for _, c := range p.Hole {
			assert.False(t, seen[c.String()], "duplicate card %s", c)
			seen[c.String()] = true
		}
	}
}

func TestDealAdvancesSeed(t *testing.T) {
	g := lobby(t, 2)
	first := mustDeal(t, g)
	second := mustDeal(t, g)

	assert.NotEqual(t, g.Seed, first.Seed)
	// Same source state deals the same hand; the carried branch differs
	// from the source.
	assert.Equal(t, first.Seed, second.Seed)
	assert.Equal(t, first.Players[0].Hole, second.Players[0].Hole)
}

func TestShortStackBlindIsAllIn(t *testing.T) {
	g := NewGame(testSmallBlind, testBigBlind, 1)
	g = mustJoin(t, g, "short", 10)
	g = mustJoin(t, g, "big", testStack)
	g = mustBlinds(t, mustDeal(t, g))

	short := g.Players[0]
	assert.Equal(t, 10, short.RoundBet)
	assert.Equal(t, 0, short.Stack)
	assert.True(t, short.AllIn)
	assert.Equal(t, testBigBlind, g.Players[1].RoundBet)
}

func TestRejectedTransitionLeavesGameUntouched(t *testing.T) {
	g := dealt(t, 4)
	snapshot := g.clone()

	_, err := g.Check() // p2 owes the big blind
	require.Error(t, err)
	assert.Equal(t, snapshot.Players, g.Players)
	assert.Equal(t, snapshot.Current, g.Current)
	assert.Equal(t, snapshot.Pot, g.Pot)
}
