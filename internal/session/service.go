package session

import (
	"errors"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/cardroom/cardroom/internal/bank"
	"github.com/cardroom/cardroom/internal/game"
)

// ErrInternal is what callers see when an engine invariant breaks.
// Recoverable rule violations keep their precise vocabulary; faults
// deliberately do not.
var ErrInternal = errors.New("session: internal error")

// Config carries the table parameters every session is created with.
type Config struct {
	SmallBlind int
	BigBlind   int
	// BuyIn is withdrawn from a player's bank account when they join.
	BuyIn int
}

// Service is the operation surface the transport layer calls, one
// method per player command. Every method runs as a single atomic
// transaction against the registry; ledger movements and game
// mutations commit together or not at all.
type Service struct {
	registry *Registry
	cfg      Config
	logger   zerolog.Logger
	clock    quartz.Clock
}

// NewService wires a service over a registry. Pass a mock clock in
// tests; nil means real time.
func NewService(registry *Registry, cfg Config, logger zerolog.Logger, clock quartz.Clock) *Service {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Service{
		registry: registry,
		cfg:      cfg,
		logger:   logger.With().Str("component", "session").Logger(),
		clock:    clock,
	}
}

// Join seats the player at the session's table, creating the session
// if it does not exist yet rather than waiting for one. The buy-in
// leaves the player's bank account in the same transaction that seats
// them, so funds and seating can never diverge.
func (s *Service) Join(key Key, player game.PlayerID, name string) ([]game.Event, error) {
	join := func(tx *Tx, g *game.Game) ([]game.Event, error) {
		upd, err := g.Join(player, name, s.cfg.BuyIn)
		if err != nil {
			return nil, err
		}

		ledger, err := tx.Ledger().Withdraw(bank.AccountID(player), s.cfg.BuyIn)
		if err != nil {
			var short *bank.InsufficientBalanceError
			if errors.As(err, &short) {
				return nil, &game.Error{
					Kind:      game.InsufficientFunds,
					Required:  short.Required,
					Available: short.Available,
				}
			}
			return nil, err
		}
		tx.SetLedger(ledger)

		u := upd.(game.Updated)
		tx.SetState(key, Open{Game: u.Game})
		return u.Events, nil
	}

	existing := func(tx *Tx) ([]game.Event, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, ErrRetry
		}
		return join(tx, st.Current())
	}
	fresh := func(tx *Tx) ([]game.Event, error) {
		g := game.NewGame(s.cfg.SmallBlind, s.cfg.BigBlind, tx.SplitSeed())
		return join(tx, g)
	}

	return Atomically(s.registry, OrElse(existing, fresh))
}

// Leave removes the player from the table and deposits their stack
// back into the bank, atomically with the unseating.
func (s *Service) Leave(key Key, player game.PlayerID) ([]game.Event, error) {
	return Atomically(s.registry, func(tx *Tx) ([]game.Event, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, ErrRetry
		}

		upd, err := st.Current().Leave(player)
		if err != nil {
			return nil, err
		}
		u := upd.(game.Updated)

		refund := 0
		for _, ev := range u.Events {
			if left, ok := ev.(game.PlayerLeft); ok {
				refund = left.Refund
			}
		}
		if refund > 0 {
			ledger, err := tx.Ledger().Deposit(bank.AccountID(player), refund)
			if err != nil {
				return nil, err
			}
			tx.SetLedger(ledger)
		}

		tx.SetState(key, Open{Game: u.Game})
		return u.Events, nil
	})
}

// Deal starts the next hand: shuffle, hole cards and blinds in one
// step. Any seated player may deal.
func (s *Service) Deal(key Key, player game.PlayerID) ([]game.Event, error) {
	return Atomically(s.registry, func(tx *Tx) ([]game.Event, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, ErrRetry
		}
		g := st.Current()
		if g.Seat(player) == nil {
			return nil, &game.Error{Kind: game.PlayerNotFound}
		}

		dealt, err := g.Deal()
		if err != nil {
			return nil, err
		}
		events := dealt.UpdateEvents()

		blinds, err := dealt.(game.Updated).Game.PayBlinds()
		if err != nil {
			return nil, err
		}
		u := blinds.(game.Updated)
		events = append(events, u.Events...)

		tx.SetState(key, Open{Game: u.Game})
		return events, nil
	})
}

// Check passes the action for the acting player.
func (s *Service) Check(key Key, player game.PlayerID) ([]game.Event, error) {
	return s.act(key, player, (*game.Game).Check)
}

// Call matches the outstanding bet.
func (s *Service) Call(key Key, player game.PlayerID) ([]game.Event, error) {
	return s.act(key, player, (*game.Game).Call)
}

// Raise puts amount on top of the outstanding bet.
func (s *Service) Raise(key Key, player game.PlayerID, amount int) ([]game.Event, error) {
	return s.act(key, player, func(g *game.Game) (game.Update, error) {
		return g.Raise(amount)
	})
}

// Fold surrenders the player's hand.
func (s *Service) Fold(key Key, player game.PlayerID) ([]game.Event, error) {
	return s.act(key, player, (*game.Game).Fold)
}

// act runs one betting action as a transaction. Turn order is checked
// here, before the engine is invoked; the engine's own transitions
// always act on the player whose turn it is.
func (s *Service) act(key Key, player game.PlayerID, do func(*game.Game) (game.Update, error)) ([]game.Event, error) {
	return Atomically(s.registry, func(tx *Tx) ([]game.Event, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, ErrRetry
		}
		g := st.Current()
		if g.Seat(player) == nil {
			return nil, &game.Error{Kind: game.PlayerNotFound}
		}
		if actor := g.Actor(); actor == nil || actor.ID != player {
			return nil, &game.Error{Kind: game.InvalidStateForAction}
		}

		upd, err := do(g)
		if err != nil {
			return nil, s.fatalToInternal(err)
		}

		switch u := upd.(type) {
		case game.Updated:
			tx.SetState(key, Open{Game: u.Game})
		case game.Ended:
			tx.SetState(key, Settled{Result: u.Result, Game: u.Next})
		}
		return upd.UpdateEvents(), nil
	})
}

// Result returns the settled outcome of the session's last hand, or
// suspends until one exists.
func (s *Service) Result(key Key) (*game.Result, error) {
	return Atomically(s.registry, func(tx *Tx) (*game.Result, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, ErrRetry
		}
		settled, ok := st.(Settled)
		if !ok {
			return nil, ErrRetry
		}
		return settled.Result, nil
	})
}

// Balance reads the player's bank balance.
func (s *Service) Balance(player game.PlayerID) (int, error) {
	return Atomically(s.registry, func(tx *Tx) (int, error) {
		return tx.Ledger().Balance(bank.AccountID(player)), nil
	})
}

// Loan credits the player's bank account and records the debt with the
// service clock's timestamp.
func (s *Service) Loan(player game.PlayerID, amount int) (int, error) {
	return Atomically(s.registry, func(tx *Tx) (int, error) {
		ledger, err := tx.Ledger().Loan(bank.AccountID(player), amount, s.clock.Now())
		if err != nil {
			return 0, err
		}
		tx.SetLedger(ledger)
		return ledger.Balance(bank.AccountID(player)), nil
	})
}

// fatalToInternal hides broken-invariant faults behind a generic
// error. Recoverable rule violations pass through typed.
func (s *Service) fatalToInternal(err error) error {
	var fatal *game.FatalError
	if errors.As(err, &fatal) {
		s.logger.Error().Str("reason", fatal.Reason).Msg("engine invariant violated")
		return ErrInternal
	}
	return err
}
