package poker

import (
	rand "math/rand/v2"
)

// Deck is an ordered 52-card deck consumed front to back.
type Deck struct {
	cards [52]Card
	next  int
}

// NewDeck creates a full deck shuffled with the supplied RNG.
// The caller owns the RNG; hand each deck an independent stream so
// concurrent games never share generator state.
func NewDeck(rng *rand.Rand) *Deck {
	d := &Deck{}

	i := 0
	for suit := range uint8(4) {
		for rank := range uint8(13) {
			d.cards[i] = Card{Rank: Rank(rank + 2), Suit: Suit(suit)}
			i++
		}
	}

	// Fisher-Yates
	for i := len(d.cards) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}

	return d
}

// Deal deals n cards from the top of the deck, or nil if exhausted.
func (d *Deck) Deal(n int) []Card {
	if d.next+n > len(d.cards) {
		return nil
	}
	cards := make([]Card, n)
	copy(cards, d.cards[d.next:d.next+n])
	d.next += n
	return cards
}

// DealOne deals a single card from the deck
func (d *Deck) DealOne() Card {
	return d.Deal(1)[0]
}

// CardsRemaining returns the number of cards left in the deck
func (d *Deck) CardsRemaining() int {
	return len(d.cards) - d.next
}
