package poker

import (
	"math/bits"
	"sort"
	"strings"
)

// Category enumerates poker hand categories ordered from weakest to strongest.
type Category uint8

const (
	HighCard Category = iota
	Pair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// String returns a human-readable category description.
func (c Category) String() string {
	switch c {
	case HighCard:
		return "High Card"
	case Pair:
		return "Pair"
	case TwoPair:
		return "Two Pair"
	case ThreeOfAKind:
		return "Three of a Kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full House"
	case FourOfAKind:
		return "Four of a Kind"
	case StraightFlush:
		return "Straight Flush"
	default:
		return "Unknown"
	}
}

// RankedHand is the evaluated strength of a best-5-of-7 hand. It is a
// totally ordered value: category first, then the kicker sequence in
// significance order. Equal values are genuine ties.
type RankedHand struct {
	Category Category
	Kickers  [5]Rank
}

// Compare returns 1 if h beats o, -1 if o beats h, 0 for a tie.
func (h RankedHand) Compare(o RankedHand) int {
	if h.Category != o.Category {
		if h.Category > o.Category {
			return 1
		}
		return -1
	}
	for i := range h.Kickers {
		if h.Kickers[i] != o.Kickers[i] {
			if h.Kickers[i] > o.Kickers[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// String describes the hand, e.g. "Full House (KKK99)".
func (h RankedHand) String() string {
	var sb strings.Builder
	sb.WriteString(h.Category.String())
	sb.WriteString(" (")
	for _, k := range h.Kickers {
		if k == 0 {
			break
		}
		sb.WriteString(k.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Evaluate selects the best five-card hand from seven cards.
func Evaluate(cards []Card) RankedHand {
	var suitMasks [4]uint16
	var counts [15]int
	for _, c := range cards {
		suitMasks[c.Suit] |= 1 << c.Rank
		counts[c.Rank]++
	}

	var rankMask uint16
	for _, m := range suitMasks {
		rankMask |= m
	}

	// Straight flush beats everything; check each suit's mask.
	for _, m := range suitMasks {
		if bits.OnesCount16(m) >= 5 {
			if high := straightHigh(m); high > 0 {
				return RankedHand{Category: StraightFlush, Kickers: [5]Rank{high}}
			}
		}
	}

	quads := ranksWithCount(counts, 4)
	trips := ranksWithCount(counts, 3)
	pairs := ranksWithCount(counts, 2)

	if len(quads) > 0 {
		quad := quads[0]
		kicker := topRanks(rankMask, 1, quad)
		return RankedHand{Category: FourOfAKind, Kickers: [5]Rank{quad, quad, quad, quad, kicker[0]}}
	}

	if len(trips) > 0 {
		trip := trips[0]
		// Second trip counts as the pair of a full house.
		fill := append([]Rank{}, trips[1:]...)
		fill = append(fill, pairs...)
		sort.Slice(fill, func(i, j int) bool { return fill[i] > fill[j] })
		if len(fill) > 0 {
			pair := fill[0]
			return RankedHand{Category: FullHouse, Kickers: [5]Rank{trip, trip, trip, pair, pair}}
		}
	}

	for _, m := range suitMasks {
		if bits.OnesCount16(m) >= 5 {
			top := topRanks(m, 5)
			return RankedHand{Category: Flush, Kickers: [5]Rank{top[0], top[1], top[2], top[3], top[4]}}
		}
	}

	if high := straightHigh(rankMask); high > 0 {
		return RankedHand{Category: Straight, Kickers: [5]Rank{high}}
	}

	if len(trips) > 0 {
		trip := trips[0]
		ks := topRanks(rankMask, 2, trip)
		return RankedHand{Category: ThreeOfAKind, Kickers: [5]Rank{trip, trip, trip, ks[0], ks[1]}}
	}

	if len(pairs) >= 2 {
		high, low := pairs[0], pairs[1]
		kicker := topRanks(rankMask, 1, high, low)
		return RankedHand{Category: TwoPair, Kickers: [5]Rank{high, high, low, low, kicker[0]}}
	}

	if len(pairs) == 1 {
		pair := pairs[0]
		ks := topRanks(rankMask, 3, pair)
		return RankedHand{Category: Pair, Kickers: [5]Rank{pair, pair, ks[0], ks[1], ks[2]}}
	}

	top := topRanks(rankMask, 5)
	return RankedHand{Category: HighCard, Kickers: [5]Rank{top[0], top[1], top[2], top[3], top[4]}}
}

// straightHigh returns the high card of the best straight in the rank
// mask, or 0 when there is none. The wheel (A-2-3-4-5) reports Five.
func straightHigh(mask uint16) Rank {
	const wheel = 1<<Ace | 1<<Two | 1<<Three | 1<<Four | 1<<Five

	// Bitwise cascade finds five consecutive set bits in one pass.
	seq := mask & (mask >> 1) & (mask >> 2) & (mask >> 3) & (mask >> 4)
	if seq != 0 {
		return Rank(bits.Len16(seq) - 1 + 4)
	}
	if mask&wheel == wheel {
		return Five
	}
	return 0
}

// ranksWithCount returns ranks appearing exactly n times, descending.
func ranksWithCount(counts [15]int, n int) []Rank {
	var ranks []Rank
	for r := Ace; r >= Two; r-- {
		if counts[r] == n {
			ranks = append(ranks, r)
		}
	}
	return ranks
}

// topRanks returns the n highest ranks in the mask, descending,
// excluding any listed ranks.
func topRanks(mask uint16, n int, exclude ...Rank) []Rank {
	for _, ex := range exclude {
		mask &^= 1 << ex
	}
	ranks := make([]Rank, 0, n)
	for len(ranks) < n {
		if mask == 0 {
			ranks = append(ranks, 0)
			continue
		}
		top := Rank(bits.Len16(mask) - 1)
		ranks = append(ranks, top)
		mask &^= 1 << top
	}
	return ranks
}
