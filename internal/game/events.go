package game

import (
	"github.com/cardroom/cardroom/poker"
)

// Event is one observable fact produced by a transition. Events are
// abstract values; rendering them as chat text, UI updates or logs is
// entirely the caller's concern.
type Event interface {
	isEvent()
}

// ActionKind is the betting action a player took.
type ActionKind int

const (
	ActionCheck ActionKind = iota
	ActionCall
	ActionRaise
	ActionFold
)

func (a ActionKind) String() string {
	return [...]string{"check", "call", "raise", "fold"}[a]
}

// PlayerJoined reports a new seat at the table.
type PlayerJoined struct {
	Player PlayerID
	Name   string
	Stack  int
}

// PlayerLeft reports a player leaving; Refund is the stack they took
// with them.
type PlayerLeft struct {
	Player PlayerID
	Refund int
}

// HandDealt reports the start of a hand and the seating order locked
// in for it.
type HandDealt struct {
	HandID  string
	Players []PlayerID
}

// BlindPosted reports a forced bet.
type BlindPosted struct {
	Player PlayerID
	Amount int
	Big    bool
	AllIn  bool
}

// ActionTaken reports a voluntary betting action. Pot is the money at
// stake after the action, live round bets included.
type ActionTaken struct {
	Player PlayerID
	Action ActionKind
	Amount int
	AllIn  bool
	Pot    int
}

// PhaseDealt reports a betting round closing and new community cards
// being revealed.
type PhaseDealt struct {
	Phase Phase
	Cards []poker.Card
	Board []poker.Card
	Pot   int
}

// PotAwarded reports one payout from a finished hand.
type PotAwarded struct {
	Player PlayerID
	Amount int
}

// ShowdownHeld reports the hands revealed at showdown and the winning
// strength. Every player still holding cards shows them, win or lose.
type ShowdownHeld struct {
	HandID      string
	Revealed    map[PlayerID][]poker.Card
	WinningHand poker.RankedHand
	Winners     []PlayerID
}

func (PlayerJoined) isEvent() {}
func (PlayerLeft) isEvent()   {}
func (HandDealt) isEvent()    {}
func (BlindPosted) isEvent()  {}
func (ActionTaken) isEvent()  {}
func (PhaseDealt) isEvent()   {}
func (PotAwarded) isEvent()   {}
func (ShowdownHeld) isEvent() {}
