package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/cardroom/poker"
)

// riverGame builds a hand frozen at the end of the river with known
// hole cards, contributions already swept into the pot.
func riverGame(board string, players ...*Player) *Game {
	pot := 0
	for _, p := range players {
		pot += p.HandBet
	}
	return &Game{
		Players:    players,
		Phase:      River,
		Board:      poker.MustParseCards(board),
		Pot:        pot,
		SmallBlind: testSmallBlind,
		BigBlind:   testBigBlind,
		Seed:       7,
		HandID:     "test-hand",
	}
}

func showdownPlayer(id PlayerID, hole string, handBet, stack int) *Player {
	return &Player{
		ID:      id,
		Name:    string(id),
		Stack:   stack,
		HandBet: handBet,
		Hole:    poker.MustParseCards(hole),
	}
}

func TestShowdownSingleWinner(t *testing.T) {
	g := riverGame("2c7d9hJsKd",
		showdownPlayer("alice", "AsAd", 100, 900), // pair of aces
		showdownPlayer("bob", "QsQd", 100, 900),   // pair of queens
		showdownPlayer("carol", "4h5s", 100, 900), // king high
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	assert.Equal(t, map[PlayerID]int{"alice": 300}, e.Result.Payouts)
	assert.Equal(t, []PlayerID{"alice"}, e.Result.Winners)
	require.NotNil(t, e.Result.WinningHand)
	assert.Equal(t, poker.Pair, e.Result.WinningHand.Category)
	// Everyone who reached showdown shows their cards, losers included.
	assert.Len(t, e.Result.Revealed, 3)
	assert.Equal(t, 1200, e.Next.Seat("alice").Stack)
}

func TestShowdownSplitPot(t *testing.T) {
	// The board plays for everyone: a broadway straight.
	g := riverGame("TsJhQdKcAd",
		showdownPlayer("alice", "2h7d", 100, 900),
		showdownPlayer("bob", "3c8s", 100, 900),
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	assert.Equal(t, map[PlayerID]int{"alice": 100, "bob": 100}, e.Result.Payouts)
	assert.ElementsMatch(t, []PlayerID{"alice", "bob"}, e.Result.Winners)
	assert.Equal(t, poker.Straight, e.Result.WinningHand.Category)
}

func TestShowdownOddChipGoesToEarliestSeat(t *testing.T) {
	// carol folded after contributing an odd amount, leaving a 301 chip
	// pot that two tied hands cannot split evenly.
	carol := showdownPlayer("carol", "4c9s", 101, 900)
	carol.Folded = true
	g := riverGame("TsJhQdKcAd",
		showdownPlayer("alice", "2h7d", 100, 900),
		showdownPlayer("bob", "3c8s", 100, 900),
		carol,
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	assert.Equal(t, 151, e.Result.Payouts["alice"])
	assert.Equal(t, 150, e.Result.Payouts["bob"])
	assert.Zero(t, e.Result.Payouts["carol"])
}

func TestShowdownSidePots(t *testing.T) {
	// alice was all-in for 50; bob and carol kept betting to 100.
	alice := showdownPlayer("alice", "AsAd", 50, 0) // best hand, capped winnings
	alice.AllIn = true
	g := riverGame("2c3c4d9hKs",
		alice,
		showdownPlayer("bob", "KdQh", 100, 900),   // pair of kings
		showdownPlayer("carol", "QsJs", 100, 900), // queen high
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	// Main pot 150 to alice; the 100 side pot is out of her reach and
	// goes to the best of the rest.
	assert.Equal(t, 150, e.Result.Payouts["alice"])
	assert.Equal(t, 100, e.Result.Payouts["bob"])
	assert.Zero(t, e.Result.Payouts["carol"])
	assert.Equal(t, []PlayerID{"alice"}, e.Result.Winners)
}

func TestShowdownFoldedMoneyStaysInPot(t *testing.T) {
	folded := showdownPlayer("dave", "9c9d", 100, 900)
	folded.Folded = true
	g := riverGame("2c7d9hJsKd",
		showdownPlayer("alice", "AsAd", 100, 900),
		showdownPlayer("bob", "QsQd", 100, 900),
		folded,
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	// dave's 100 is in the pot but his hand never competes.
	assert.Equal(t, 300, e.Result.Payouts["alice"])
	assert.NotContains(t, e.Result.Revealed, PlayerID("dave"))
}

func TestShowdownBustedPlayerDropped(t *testing.T) {
	alice := showdownPlayer("alice", "AsAd", 100, 900)
	bob := showdownPlayer("bob", "QsQd", 100, 0) // lost their whole stack
	bob.AllIn = true
	g := riverGame("2c7d9hJsKd", alice, bob)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)

	require.Len(t, e.Next.Players, 1)
	assert.Nil(t, e.Next.Seat("bob"))
	assert.Equal(t, 1100, e.Next.Seat("alice").Stack)
}

func TestShowdownCarriesRandomStream(t *testing.T) {
	g := riverGame("2c7d9hJsKd",
		showdownPlayer("alice", "AsAd", 100, 900),
		showdownPlayer("bob", "QsQd", 100, 900),
	)

	upd, err := g.showdown(nil)
	e := applyEnded(t, upd, err)
	assert.Equal(t, g.Seed, e.Next.Seed)
	assert.Equal(t, Lobby, e.Next.Phase)
}

func TestBuildPotsLayersByContribution(t *testing.T) {
	players := []*Player{
		showdownPlayer("a", "2h3h", 30, 0),
		showdownPlayer("b", "4h5h", 70, 0),
		showdownPlayer("c", "6h7h", 100, 0),
		showdownPlayer("d", "8h9h", 100, 0),
	}
	players[0].AllIn = true
	players[1].AllIn = true

	pots := buildPots(players, 0)

	require.Len(t, pots, 3)
	assert.Equal(t, 120, pots[0].amount) // 30 × 4
	assert.Len(t, pots[0].eligible, 4)
	assert.Equal(t, 120, pots[1].amount) // 40 × 3
	assert.Len(t, pots[1].eligible, 3)
	assert.Equal(t, 60, pots[2].amount) // 30 × 2
	assert.Len(t, pots[2].eligible, 2)
}

func TestBuildPotsMergesEqualLayers(t *testing.T) {
	players := []*Player{
		showdownPlayer("a", "2h3h", 100, 0),
		showdownPlayer("b", "4h5h", 100, 0),
	}

	pots := buildPots(players, 0)

	require.Len(t, pots, 1)
	assert.Equal(t, 200, pots[0].amount)
}

func TestBuildPotsFoldedLayerNotOrphaned(t *testing.T) {
	// The folder put in more than anyone still holding cards; their
	// excess falls into the last contested pot.
	folded := showdownPlayer("big", "2h3h", 500, 0)
	folded.Folded = true
	players := []*Player{
		showdownPlayer("a", "4h5h", 100, 0),
		showdownPlayer("b", "6h7h", 100, 0),
		folded,
	}

	pots := buildPots(players, 0)

	total := 0
	for _, pot := range pots {
		total += pot.amount
	}
	assert.Equal(t, 700, total)
	require.Len(t, pots, 1)
	assert.Len(t, pots[0].eligible, 2)
}
