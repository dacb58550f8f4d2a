package game

import (
	"sort"

	"github.com/cardroom/cardroom/poker"
)

// Result is the immutable terminal snapshot of a finished hand.
type Result struct {
	HandID  string
	Payouts map[PlayerID]int
	// Winners took (a share of) the main pot.
	Winners []PlayerID
	// WinningHand is the strength that won the main pot; nil when the
	// hand ended on folds and no cards were shown.
	WinningHand *poker.RankedHand
	// Revealed holds every hand shown at showdown, losers included.
	Revealed map[PlayerID][]poker.Card
}

// sidePot is one layer of the pot. Players whose total hand
// contribution reached the layer's level are eligible for it.
type sidePot struct {
	amount   int
	eligible []int // seat numbers, seating order
}

// buildPots layers the hand's contributions into a main pot and side
// pots. Folded players' money stays in whichever layers they reached
// but they are never eligible. A layer only folders reached is folded
// into the nearest eligible pot so no chip is orphaned.
func buildPots(players []*Player, dead int) []sidePot {
	var levels []int
	seen := make(map[int]bool)
	for _, p := range players {
		if p.HandBet > 0 && !seen[p.HandBet] {
			seen[p.HandBet] = true
			levels = append(levels, p.HandBet)
		}
	}
	sort.Ints(levels)

	var pots []sidePot
	carry := 0
	prev := 0
	for _, level := range levels {
		amount := carry
		carry = 0
		for _, p := range players {
			amount += clamp(p.HandBet-prev, 0, level-prev)
		}

		var eligible []int
		for seat, p := range players {
			if p.InHand() && p.HandBet >= level {
				eligible = append(eligible, seat)
			}
		}

		switch {
		case len(eligible) == 0 && len(pots) > 0:
			pots[len(pots)-1].amount += amount
		case len(eligible) == 0:
			carry = amount
		case len(pots) > 0 && len(pots[len(pots)-1].eligible) == len(eligible):
			// Same eligibility as the previous layer: one pot.
			pots[len(pots)-1].amount += amount
		default:
			pots = append(pots, sidePot{amount: amount, eligible: eligible})
		}
		prev = level
	}
	if len(pots) > 0 {
		pots[0].amount += dead
	}
	return pots
}

// showdown resolves a hand that reached the end of the river round.
// Each pot goes to the best eligible hand; ties split in equal integer
// shares with the odd chips going to the earliest eligible seat.
func (g *Game) showdown(events []Event) (Update, error) {
	seats := g.inHand()
	if len(seats) == 0 {
		return nil, fatalf("showdown with no live hands (hand %s)", g.HandID)
	}
	if len(g.Board) != 5 {
		return nil, fatalf("showdown on a %d-card board (hand %s)", len(g.Board), g.HandID)
	}

	stake := g.Pot

	ranks := make(map[int]poker.RankedHand, len(seats))
	revealed := make(map[PlayerID][]poker.Card, len(seats))
	for _, seat := range seats {
		p := g.Players[seat]
		ranks[seat] = poker.Evaluate(append(append([]poker.Card(nil), p.Hole...), g.Board...))
		revealed[p.ID] = append([]poker.Card(nil), p.Hole...)
	}

	payouts := make(map[PlayerID]int)
	var mainWinners []PlayerID
	var mainHand poker.RankedHand
	for i, pot := range buildPots(g.Players, g.deadBets) {
		winners := bestSeats(pot.eligible, ranks)
		if len(winners) == 0 {
			return nil, fatalf("pot with no determinable winner (hand %s)", g.HandID)
		}

		share := pot.amount / len(winners)
		remainder := pot.amount % len(winners)
		for j, seat := range winners {
			won := share
			if j == 0 {
				won += remainder
			}
			payouts[g.Players[seat].ID] += won
		}

		if i == 0 {
			for _, seat := range winners {
				mainWinners = append(mainWinners, g.Players[seat].ID)
			}
			mainHand = ranks[winners[0]]
		}
	}

	distributed := 0
	for _, won := range payouts {
		distributed += won
	}
	if distributed != stake {
		return nil, fatalf("payouts %d do not match pot %d (hand %s)", distributed, stake, g.HandID)
	}

	g.Pot = 0
	for _, p := range g.Players {
		p.Stack += payouts[p.ID]
	}

	events = append(events, ShowdownHeld{
		HandID:      g.HandID,
		Revealed:    revealed,
		WinningHand: mainHand,
		Winners:     mainWinners,
	})
	for _, seat := range seats {
		p := g.Players[seat]
		if won, ok := payouts[p.ID]; ok {
			events = append(events, PotAwarded{Player: p.ID, Amount: won})
		}
	}

	result := &Result{
		HandID:      g.HandID,
		Payouts:     payouts,
		Winners:     mainWinners,
		WinningHand: &mainHand,
		Revealed:    revealed,
	}
	return Ended{Result: result, Next: g.nextHand(), Events: events}, nil
}

// bestSeats returns the seats holding the strongest hand, in seating
// order.
func bestSeats(eligible []int, ranks map[int]poker.RankedHand) []int {
	var best []int
	for _, seat := range eligible {
		if len(best) == 0 {
			best = []int{seat}
			continue
		}
		switch ranks[seat].Compare(ranks[best[0]]) {
		case 1:
			best = []int{seat}
		case 0:
			best = append(best, seat)
		}
	}
	return best
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
