package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		rank Rank
		suit Suit
	}{
		{"As", Ace, Spades},
		{"Th", Ten, Hearts},
		{"9d", Nine, Diamonds},
		{"2c", Two, Clubs},
		{"kc", King, Clubs},
	}

	for _, tt := range tests {
		card, err := ParseCard(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.rank, card.Rank)
		assert.Equal(t, tt.suit, card.Suit)
	}
}

func TestParseCardInvalid(t *testing.T) {
	for _, in := range []string{"", "A", "Asd", "1s", "Ax"} {
		_, err := ParseCard(in)
		assert.Error(t, err, "%q should not parse", in)
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "Ah", Card{Rank: Ace, Suit: Hearts}.String())
	assert.Equal(t, "Tc", Card{Rank: Ten, Suit: Clubs}.String())
	assert.Equal(t, "2s", Card{Rank: Two, Suit: Spades}.String())
}

func TestStringRoundTrip(t *testing.T) {
	for suit := Clubs; suit <= Spades; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			card := Card{Rank: rank, Suit: suit}
			parsed, err := ParseCard(card.String())
			require.NoError(t, err)
			assert.Equal(t, card, parsed)
		}
	}
}
