package game

import (
	"github.com/cardroom/cardroom/poker"
)

// PotTotal is the money at stake right now: the pot plus every live
// round bet. Folding never changes it.
func (g *Game) PotTotal() int {
	total := g.Pot
	for _, p := range g.Players {
		total += p.RoundBet
	}
	return total
}

// betsLevel reports whether every player who can still act has matched
// the table's highest round bet. All-in players are exempt; they stand
// behind whatever they managed to post.
func (g *Game) betsLevel() bool {
	max := g.maxRoundBet()
	for _, p := range g.Players {
		if p.CanAct() && p.RoundBet != max {
			return false
		}
	}
	return true
}

// closePosition is the position that bounds the current round: the
// last raiser's, or the round opener's when nobody has raised.
func (g *Game) closePosition() int {
	if g.LastRaise != nil {
		return g.LastRaise.Position
	}
	return g.roundStart
}

// Check passes the action. Legal only when nothing is owed; with an
// outstanding bet the player must call first.
func (g *Game) Check() (Update, error) {
	if err := g.requireBettingRound(); err != nil {
		return nil, err
	}
	p := g.Actor()
	if owed := g.maxRoundBet() - p.RoundBet; owed > 0 {
		return nil, &Error{Kind: CallFirst, Owed: owed}
	}

	next := g.clone()
	events := []Event{ActionTaken{
		Player: p.ID,
		Action: ActionCheck,
		Pot:    next.PotTotal(),
	}}
	return next.advance(events)
}

// Call matches the outstanding bet, going all-in when the stack is
// short. With nothing owed the player should check instead.
func (g *Game) Call() (Update, error) {
	if err := g.requireBettingRound(); err != nil {
		return nil, err
	}
	if owed := g.maxRoundBet() - g.Actor().RoundBet; owed == 0 {
		return nil, &Error{Kind: CheckInstead}
	}

	next := g.clone()
	p := next.Actor()
	paid := p.pay(next.maxRoundBet() - p.RoundBet)
	events := []Event{ActionTaken{
		Player: p.ID,
		Action: ActionCall,
		Amount: paid,
		AllIn:  p.AllIn,
		Pot:    next.PotTotal(),
	}}
	return next.advance(events)
}

// Raise calls any outstanding bet and puts amount more on top. The
// amount must reach the bigger of the big blind and the round's last
// raise, and the stack must cover the whole movement.
func (g *Game) Raise(amount int) (Update, error) {
	if err := g.requireBettingRound(); err != nil {
		return nil, err
	}

	minimum := g.BigBlind
	if g.LastRaise != nil && g.LastRaise.Amount > minimum {
		minimum = g.LastRaise.Amount
	}
	if amount < minimum {
		return nil, &Error{Kind: RaiseTooSmall, Minimum: minimum}
	}

	p := g.Actor()
	required := g.maxRoundBet() - p.RoundBet + amount
	if required > p.Stack {
		return nil, &Error{Kind: InsufficientFunds, Required: required, Available: p.Stack}
	}

	next := g.clone()
	p = next.Actor()
	p.pay(required)
	next.LastRaise = &Raise{Position: next.Current, Amount: amount}

	events := []Event{ActionTaken{
		Player: p.ID,
		Action: ActionRaise,
		Amount: amount,
		AllIn:  p.AllIn,
		Pot:    next.PotTotal(),
	}}
	return next.advance(events)
}

// Fold surrenders the hand. The folder drops out of the position
// ordering, so stored positions after theirs shift down by one. When
// a single player remains the hand ends immediately in their favour,
// without a showdown.
func (g *Game) Fold() (Update, error) {
	if err := g.requireBettingRound(); err != nil {
		return nil, err
	}

	next := g.clone()
	p := next.Actor()
	p.Folded = true

	events := []Event{ActionTaken{
		Player: p.ID,
		Action: ActionFold,
		Pot:    next.PotTotal(),
	}}

	seats := next.inHand()
	if len(seats) == 1 {
		return next.foldWin(seats[0], events)
	}

	// Re-resolve positions against the shrunken ordering.
	idx := next.Current
	if next.LastRaise != nil && next.LastRaise.Position > idx {
		next.LastRaise.Position--
	}
	if next.roundStart > idx {
		next.roundStart--
	}
	if next.LastRaise != nil {
		next.LastRaise.Position %= len(seats)
	}
	next.roundStart %= len(seats)
	next.Current = idx % len(seats)

	return next.settle(events)
}

// advance moves the action to the next position and settles the round.
func (g *Game) advance(events []Event) (Update, error) {
	g.Current = (g.Current + 1) % len(g.inHand())
	return g.settle(events)
}

// settle finds the next player to act, closing the round when the
// action cycle has returned to the bounding position with level bets,
// and skipping players who cannot act. When no seat can act at all the
// remaining streets run out automatically.
func (g *Game) settle(events []Event) (Update, error) {
	seats := g.inHand()
	for range len(seats) {
		if g.Current == g.closePosition() && g.betsLevel() {
			return g.closeRound(events)
		}
		if g.Players[seats[g.Current]].CanAct() {
			return Updated{Game: g, Events: events}, nil
		}
		g.Current = (g.Current + 1) % len(seats)
	}
	// Nobody left who can act: betting is over for good.
	return g.closeRound(events)
}

// closeRound sweeps the round bets into the pot and advances the
// board. River closure resolves the showdown. When one player or
// fewer can still bet, later streets close immediately so the board
// runs out to the showdown.
func (g *Game) closeRound(events []Event) (Update, error) {
	for {
		for _, p := range g.Players {
			g.Pot += p.RoundBet
			p.RoundBet = 0
		}
		g.LastRaise = nil

		if g.Phase == River {
			return g.showdown(events)
		}

		g.Phase++
		var reveal []poker.Card
		switch g.Phase {
		case Flop:
			reveal = g.deck.Deal(3)
		case Turn, River:
			reveal = g.deck.Deal(1)
		}
		g.Board = append(g.Board, reveal...)
		events = append(events, PhaseDealt{
			Phase: g.Phase,
			Cards: reveal,
			Board: append([]poker.Card(nil), g.Board...),
			Pot:   g.Pot,
		})

		seats := g.inHand()
		g.Current = 2 % len(seats)
		g.roundStart = g.Current
		g.skipAllIn()

		actors := 0
		for _, seat := range seats {
			if g.Players[seat].CanAct() {
				actors++
			}
		}
		if actors >= 2 {
			return Updated{Game: g, Events: events}, nil
		}
	}
}

// foldWin ends the hand with everyone but one player folded. The
// survivor collects the pot and every live bet; no cards are shown.
func (g *Game) foldWin(seat int, events []Event) (Update, error) {
	total := g.Pot
	for _, p := range g.Players {
		total += p.RoundBet
		p.RoundBet = 0
	}
	g.Pot = 0

	winner := g.Players[seat]
	winner.Stack += total
	events = append(events, PotAwarded{Player: winner.ID, Amount: total})

	result := &Result{
		HandID:  g.HandID,
		Payouts: map[PlayerID]int{winner.ID: total},
		Winners: []PlayerID{winner.ID},
	}
	return Ended{Result: result, Next: g.nextHand(), Events: events}, nil
}

// requireBettingRound rejects actions outside a live betting round.
func (g *Game) requireBettingRound() error {
	if g.Phase == Lobby || g.Actor() == nil {
		return &Error{Kind: InvalidStateForAction}
	}
	return nil
}

// nextHand builds the lobby game that follows a finished hand,
// carrying the derived random stream and post-hand stacks. Busted
// seats are dropped; a rebuy means joining again.
func (g *Game) nextHand() *Game {
	next := NewGame(g.SmallBlind, g.BigBlind, g.Seed)
	for _, p := range g.Players {
		if p.Stack == 0 {
			continue
		}
		next.Players = append(next.Players, &Player{
			ID:    p.ID,
			Name:  p.Name,
			Stack: p.Stack,
		})
	}
	return next
}
