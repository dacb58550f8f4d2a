package game

import (
	"github.com/google/uuid"

	"github.com/cardroom/cardroom/internal/randutil"
	"github.com/cardroom/cardroom/poker"
)

// Phase is the stage of the current hand. The board only ever advances
// Lobby → PreFlop → Flop → Turn → River within one hand.
type Phase int

const (
	Lobby Phase = iota
	PreFlop
	Flop
	Turn
	River
)

func (p Phase) String() string {
	return [...]string{"lobby", "preflop", "flop", "turn", "river"}[p]
}

// Raise records the last raise of the current round. Position indexes
// the in-hand ordering, so it re-resolves as players fold out of it:
// the field represents remaining relative ordering, not a fixed seat.
type Raise struct {
	Position int
	Amount   int
}

// Game is the complete state of one table. All transitions are pure:
// they clone the receiver, mutate the clone and return it, so a
// rejected action leaves the original untouched and callers can retry
// transactions freely.
type Game struct {
	Players []*Player // seating order, fixed once a hand starts
	Phase   Phase
	Board   []poker.Card

	// Current indexes the in-hand (non-folded) ordering, not Players.
	Current   int
	LastRaise *Raise
	// roundStart is the position the current round opened at; it bounds
	// the round when nobody has raised.
	roundStart int

	// Pot is the money from rounds already closed. Live round bets stay
	// on the players until the round closes.
	Pot int
	// deadBets tracks hand contributions of players who folded and then
	// left mid-hand. Their money stays in the pot and falls to the main
	// pot's winners at showdown.
	deadBets int

	SmallBlind int
	BigBlind   int

	// Seed is the state of the table's random stream. Dealing splits it
	// so every shuffle runs on a fresh branch.
	Seed int64

	HandID string
	deck   *poker.Deck
}

// NewGame creates an empty lobby-phase game with the given blinds and
// random stream state.
func NewGame(smallBlind, bigBlind int, seed int64) *Game {
	return &Game{
		Phase:      Lobby,
		SmallBlind: smallBlind,
		BigBlind:   bigBlind,
		Seed:       seed,
	}
}

func (g *Game) clone() *Game {
	c := *g
	c.Players = make([]*Player, len(g.Players))
	for i, p := range g.Players {
		c.Players[i] = p.clone()
	}
	if g.Board != nil {
		c.Board = append([]poker.Card(nil), g.Board...)
	}
	if g.LastRaise != nil {
		r := *g.LastRaise
		c.LastRaise = &r
	}
	if g.deck != nil {
		d := *g.deck
		c.deck = &d
	}
	return &c
}

// inHand returns the seat numbers of players still holding a live
// hand, in seating order. Betting positions index this slice.
func (g *Game) inHand() []int {
	seats := make([]int, 0, len(g.Players))
	for i, p := range g.Players {
		if p.InHand() {
			seats = append(seats, i)
		}
	}
	return seats
}

// Actor returns the player whose turn it is, or nil when no hand is in
// progress.
func (g *Game) Actor() *Player {
	if g.Phase == Lobby {
		return nil
	}
	seats := g.inHand()
	if g.Current < 0 || g.Current >= len(seats) {
		return nil
	}
	return g.Players[seats[g.Current]]
}

// Seat returns the seated player with the given identity, or nil.
func (g *Game) Seat(id PlayerID) *Player {
	for _, p := range g.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// TableMoney is the total money on the table: stacks, live round bets
// and the pot. It is invariant across every transition except the
// payout step of a finished hand.
func (g *Game) TableMoney() int {
	total := g.Pot
	for _, p := range g.Players {
		total += p.Stack + p.RoundBet
	}
	return total
}

// maxRoundBet returns the highest live round bet on the table.
func (g *Game) maxRoundBet() int {
	max := 0
	for _, p := range g.Players {
		if p.RoundBet > max {
			max = p.RoundBet
		}
	}
	return max
}

// Join seats a new player with the supplied buy-in. Only legal between
// hands.
func (g *Game) Join(id PlayerID, name string, buyIn int) (Update, error) {
	if g.Phase != Lobby {
		return nil, &Error{Kind: InvalidStateForAction}
	}
	if g.Seat(id) != nil {
		return nil, &Error{Kind: DuplicateSeat}
	}

	next := g.clone()
	next.Players = append(next.Players, &Player{ID: id, Name: name, Stack: buyIn})
	return Updated{
		Game:   next,
		Events: []Event{PlayerJoined{Player: id, Name: name, Stack: buyIn}},
	}, nil
}

// Leave removes a player from the table. A player holding a live hand
// must fold first; their stack is returned to the caller for banking.
func (g *Game) Leave(id PlayerID) (Update, error) {
	p := g.Seat(id)
	if p == nil {
		return nil, &Error{Kind: PlayerNotFound}
	}
	if p.InHand() {
		return nil, &Error{Kind: CannotLeaveMidHand}
	}

	next := g.clone()
	refund := 0
	for i, np := range next.Players {
		if np.ID == id {
			refund = np.Stack
			// A mid-hand leaver's contributions stay at stake; only the
			// stack goes back.
			next.Pot += np.RoundBet
			next.deadBets += np.HandBet
			next.Players = append(next.Players[:i], next.Players[i+1:]...)
			break
		}
	}
	return Updated{
		Game:   next,
		Events: []Event{PlayerLeft{Player: id, Refund: refund}},
	}, nil
}

// Deal starts a new hand: splits the random stream, shuffles a fresh
// deck on one branch, deals two hole cards to every seat and resets
// the per-hand bookkeeping.
func (g *Game) Deal() (Update, error) {
	if g.Phase != Lobby {
		return nil, &Error{Kind: InvalidStateForAction}
	}
	if len(g.Players) < 2 {
		return nil, &Error{Kind: NotEnoughPlayers}
	}

	next := g.clone()
	shuffleSeed, carry := randutil.Split(next.Seed)
	next.Seed = carry
	next.deck = poker.NewDeck(randutil.New(shuffleSeed))
	next.HandID = uuid.NewString()
	next.Phase = PreFlop
	next.Board = nil
	next.Pot = 0
	next.LastRaise = nil
	next.Current = 0

	ids := make([]PlayerID, len(next.Players))
	for i, p := range next.Players {
		p.Hole = next.deck.Deal(2)
		p.Folded = false
		p.AllIn = false
		p.RoundBet = 0
		p.HandBet = 0
		ids[i] = p.ID
	}

	return Updated{
		Game:   next,
		Events: []Event{HandDealt{HandID: next.HandID, Players: ids}},
	}, nil
}

// PayBlinds posts the forced bets: seat 0 the small blind, seat 1 the
// big blind. A short stack posts what it has and is all-in. The big
// blind counts as the round's opening raise and seat 2 acts first.
func (g *Game) PayBlinds() (Update, error) {
	if g.Phase != PreFlop || g.maxRoundBet() > 0 || g.Pot > 0 {
		return nil, &Error{Kind: InvalidStateForAction}
	}

	next := g.clone()
	sb, bb := next.Players[0], next.Players[1]
	sbPaid := sb.pay(next.SmallBlind)
	bbPaid := bb.pay(next.BigBlind)

	next.LastRaise = &Raise{Position: 1, Amount: next.BigBlind}
	next.Current = 2 % len(next.inHand())
	next.roundStart = next.Current
	next.skipAllIn()

	return Updated{
		Game: next,
		Events: []Event{
			BlindPosted{Player: sb.ID, Amount: sbPaid, Big: false, AllIn: sb.AllIn},
			BlindPosted{Player: bb.ID, Amount: bbPaid, Big: true, AllIn: bb.AllIn},
		},
	}, nil
}

// skipAllIn moves Current forward past players who cannot act. It
// leaves Current in place when nobody at all can act; round closure
// handles that case.
func (g *Game) skipAllIn() {
	seats := g.inHand()
	for range seats {
		if g.Players[seats[g.Current]].CanAct() {
			return
		}
		g.Current = (g.Current + 1) % len(seats)
	}
}
