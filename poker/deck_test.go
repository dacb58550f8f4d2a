package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cardroom/cardroom/internal/randutil"
)

func TestNewDeckHasAllCards(t *testing.T) {
	d := NewDeck(randutil.New(1))

	seen := make(map[Card]bool)
	for d.CardsRemaining() > 0 {
		seen[d.DealOne()] = true
	}
	assert.Len(t, seen, 52)
}

func TestDeckDeterministicForSeed(t *testing.T) {
	a := NewDeck(randutil.New(42))
	b := NewDeck(randutil.New(42))
	assert.Equal(t, a.Deal(52), b.Deal(52))
}

func TestDeckSeedsDiffer(t *testing.T) {
	a := NewDeck(randutil.New(1))
	b := NewDeck(randutil.New(2))
	assert.NotEqual(t, a.Deal(52), b.Deal(52))
}

func TestDealConsumesDeck(t *testing.T) {
	d := NewDeck(randutil.New(7))

	hole := d.Deal(2)
	require.Len(t, hole, 2)
	assert.Equal(t, 50, d.CardsRemaining())

	// Over-dealing returns nil and leaves the deck untouched
	assert.Nil(t, d.Deal(51))
	assert.Equal(t, 50, d.CardsRemaining())
}
