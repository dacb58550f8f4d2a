package game

import (
	"github.com/cardroom/cardroom/poker"
)

// PlayerID is the stable identity of a player across hands. It is
// opaque to the engine; the transport layer decides what goes in it.
type PlayerID string

// Player is a seat at the table.
type Player struct {
	ID   PlayerID
	Name string

	// Stack is the player's remaining chips.
	Stack int
	// RoundBet is the contribution to the current betting round. It is
	// swept into the pot when the round closes.
	RoundBet int
	// HandBet is the total contribution across the whole hand. Side
	// pot layering is computed from it at showdown.
	HandBet int

	// Hole holds the two hole cards while a hand is live, nil otherwise.
	Hole []poker.Card

	Folded bool
	AllIn  bool
}

// InHand reports whether the player still holds a live hand.
func (p *Player) InHand() bool {
	return len(p.Hole) == 2 && !p.Folded
}

// CanAct reports whether the player can take betting actions.
func (p *Player) CanAct() bool {
	return p.InHand() && !p.AllIn
}

// pay moves up to amount from the stack into the round bet, capping at
// the stack and flagging all-in when it empties. Returns the amount
// actually moved.
func (p *Player) pay(amount int) int {
	if amount > p.Stack {
		amount = p.Stack
	}
	p.Stack -= amount
	p.RoundBet += amount
	p.HandBet += amount
	if p.Stack == 0 {
		p.AllIn = true
	}
	return amount
}

func (p *Player) clone() *Player {
	c := *p
	if p.Hole != nil {
		c.Hole = append([]poker.Card(nil), p.Hole...)
	}
	return &c
}
