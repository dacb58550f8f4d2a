package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// apply unwraps a transition expected to succeed without ending the hand.
func apply(t *testing.T, upd Update, err error) *Game {
	t.Helper()
	require.NoError(t, err)
	u, ok := upd.(Updated)
	require.True(t, ok, "expected Updated, got %T", upd)
	return u.Game
}

// applyEnded unwraps a transition expected to finish the hand.
func applyEnded(t *testing.T, upd Update, err error) Ended {
	t.Helper()
	require.NoError(t, err)
	e, ok := upd.(Ended)
	require.True(t, ok, "expected Ended, got %T", upd)
	return e
}

func mustJoin(t *testing.T, g *Game, id PlayerID, buyIn int) *Game {
	t.Helper()
	upd, err := g.Join(id, string(id), buyIn)
	return apply(t, upd, err)
}

func mustLeave(t *testing.T, g *Game, id PlayerID) *Game {
	t.Helper()
	upd, err := g.Leave(id)
	return apply(t, upd, err)
}

func mustDeal(t *testing.T, g *Game) *Game {
	t.Helper()
	upd, err := g.Deal()
	return apply(t, upd, err)
}

func mustBlinds(t *testing.T, g *Game) *Game {
	t.Helper()
	upd, err := g.PayBlinds()
	return apply(t, upd, err)
}

func mustCheck(t *testing.T, g *Game) *Game {
	t.Helper()
	upd, err := g.Check()
	return apply(t, upd, err)
}

func mustCall(t *testing.T, g *Game) *Game {
	t.Helper()
	upd, err := g.Call()
	return apply(t, upd, err)
}

func mustRaise(t *testing.T, g *Game, amount int) *Game {
	t.Helper()
	upd, err := g.Raise(amount)
	return apply(t, upd, err)
}

func mustFold(t *testing.T, g *Game) *Game {
	t.Helper()
	upd, err := g.Fold()
	return apply(t, upd, err)
}

// lobby seats n players p0..p3 with 10000 chips each.
func lobby(t *testing.T, n int) *Game {
	t.Helper()
	g := NewGame(testSmallBlind, testBigBlind, 1)
	names := []PlayerID{"p0", "p1", "p2", "p3"}
	for i := range n {
		g = mustJoin(t, g, names[i], testStack)
	}
	return g
}

// dealt runs Deal and PayBlinds on a fresh n-player lobby.
func dealt(t *testing.T, n int) *Game {
	t.Helper()
	g := lobby(t, n)
	return mustBlinds(t, mustDeal(t, g))
}

// callAround has every pre-flop caller match the big blind, closing
// the round onto the flop.
func callAround(t *testing.T, g *Game) *Game {
	t.Helper()
	for g.Phase == PreFlop {
		g = mustCall(t, g)
	}
	require.Equal(t, Flop, g.Phase)
	return g
}

// checkAround checks every position until the phase changes.
func checkAround(t *testing.T, g *Game) *Game {
	t.Helper()
	phase := g.Phase
	for g.Phase == phase {
		g = mustCheck(t, g)
	}
	return g
}
