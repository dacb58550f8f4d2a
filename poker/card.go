package poker

import "fmt"

// Suit represents a card suit
type Suit uint8

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

// String returns the string representation of a suit
func (s Suit) String() string {
	switch s {
	case Clubs:
		return "c"
	case Diamonds:
		return "d"
	case Hearts:
		return "h"
	case Spades:
		return "s"
	default:
		return "?"
	}
}

// Rank represents a card rank. Aces are always high (14).
type Rank uint8

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the string representation of a rank
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Nine:
		return string(rune('0' + r))
	case r == Ten:
		return "T"
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Card is an immutable playing card value
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the short notation for the card, e.g. "Ah" or "Tc"
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// ParseCard parses short card notation like "As", "Th" or "9d"
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}

	var rank Rank
	switch s[0] {
	case '2', '3', '4', '5', '6', '7', '8', '9':
		rank = Rank(s[0] - '0')
	case 'T', 't':
		rank = Ten
	case 'J', 'j':
		rank = Jack
	case 'Q', 'q':
		rank = Queen
	case 'K', 'k':
		rank = King
	case 'A', 'a':
		rank = Ace
	default:
		return Card{}, fmt.Errorf("invalid rank %q", s[0])
	}

	var suit Suit
	switch s[1] {
	case 'c', 'C':
		suit = Clubs
	case 'd', 'D':
		suit = Diamonds
	case 'h', 'H':
		suit = Hearts
	case 's', 'S':
		suit = Spades
	default:
		return Card{}, fmt.Errorf("invalid suit %q", s[1])
	}

	return Card{Rank: rank, Suit: suit}, nil
}

// ParseCards parses a concatenated card string like "AsKh9d"
func ParseCards(s string) ([]Card, error) {
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("odd-length card string %q", s)
	}
	cards := make([]Card, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		c, err := ParseCard(s[i : i+2])
		if err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// MustParseCards is ParseCards that panics on malformed input.
// Intended for tests and fixtures.
func MustParseCards(s string) []Card {
	cards, err := ParseCards(s)
	if err != nil {
		panic(err)
	}
	return cards
}
