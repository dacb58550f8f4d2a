package main

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/thoas/go-funk"
	"golang.org/x/sync/errgroup"

	"github.com/cardroom/cardroom/internal/bank"
	"github.com/cardroom/cardroom/internal/config"
	"github.com/cardroom/cardroom/internal/game"
	"github.com/cardroom/cardroom/internal/randutil"
	"github.com/cardroom/cardroom/internal/session"
)

type DemoCmd struct {
	Config  string `short:"c" default:"cardroom.hcl" help:"Card room configuration file"`
	Table   string `short:"t" default:"main" help:"Table to play at"`
	Hands   int    `short:"n" default:"3" help:"Number of hands to play"`
	Players int    `short:"p" default:"4" help:"Number of players to seat"`
	Seed    *int64 `help:"Random seed for reproducible sessions"`
	Debug   bool   `short:"d" help:"Enable debug logging"`
}

var demoRoster = []game.PlayerID{"alice", "bob", "carol", "dave", "erin", "frank"}

func (c *DemoCmd) Run() error {
	level := zerolog.InfoLevel
	if c.Debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	table := cfg.Table(c.Table)
	if table == nil {
		return fmt.Errorf("table %q is not configured", c.Table)
	}
	if c.Players < 2 || c.Players > len(demoRoster) {
		return fmt.Errorf("players must be between 2 and %d", len(demoRoster))
	}
	players := demoRoster[:c.Players]

	seed := cfg.Room.Seed
	if c.Seed != nil {
		seed = *c.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := randutil.New(seed)

	balances := make(map[bank.AccountID]int, len(players))
	for _, p := range players {
		balances[bank.AccountID(p)] = cfg.Room.OpeningBalance
	}
	// dave arrives broke and has to borrow his buy-in.
	if funk.Contains(players, game.PlayerID("dave")) {
		balances["dave"] = 0
	}

	registry := session.NewRegistry(bank.NewMemoryLedger(balances), seed)
	svc := session.NewService(registry, session.Config{
		SmallBlind: table.SmallBlind,
		BigBlind:   table.BigBlind,
		BuyIn:      table.BuyIn,
	}, logger, nil)
	key := session.Key(c.Table)

	// Everyone sits down at once; the first join to commit creates the
	// session and the rest land in it.
	var joins errgroup.Group
	for _, p := range players {
		joins.Go(func() error {
			balance, err := svc.Balance(p)
			if err != nil {
				return err
			}
			if balance < table.BuyIn {
				loan := table.BuyIn - balance
				if loan > cfg.Room.MaxLoan {
					return fmt.Errorf("%s needs %d but the house lends at most %d", p, loan, cfg.Room.MaxLoan)
				}
				if _, err := svc.Loan(p, loan); err != nil {
					return err
				}
				logger.Info().Str("player", string(p)).Int("amount", loan).Msg("loan granted")
			}
			_, err = svc.Join(key, p, string(p))
			return err
		})
	}
	if err := joins.Wait(); err != nil {
		return err
	}
	logger.Info().Int("players", len(players)).Str("table", c.Table).Msg("table seated")

	var lastResult *game.Result
	for hand := 1; hand <= c.Hands; hand++ {
		seated, err := seatedPlayers(registry, key)
		if err != nil {
			return err
		}
		if len(seated) < 2 {
			logger.Info().Msg("not enough players left to deal")
			break
		}

		events, err := svc.Deal(key, seated[0])
		if err != nil {
			return err
		}
		logHandStart(logger, hand, events)

		// The watcher suspends on the open hand and wakes when the
		// settling action commits.
		results := make(chan *game.Result, 1)
		var watcher errgroup.Group
		watcher.Go(func() error {
			result, err := svc.Result(key)
			if err != nil {
				return err
			}
			results <- result
			return nil
		})

		if err := c.playHand(svc, registry, key, rng, logger); err != nil {
			return err
		}
		if err := watcher.Wait(); err != nil {
			return err
		}
		lastResult = <-results
		logResult(logger, hand, lastResult)
	}

	for _, p := range players {
		// Busted players already lost their seat; everyone else cashes
		// their stack back into the bank.
		if _, err := svc.Leave(key, p); err != nil && !errors.Is(err, game.ErrKind(game.PlayerNotFound)) {
			return err
		}
		balance, err := svc.Balance(p)
		if err != nil {
			return err
		}
		won := lastResult != nil && funk.Contains(lastResult.Winners, p)
		logger.Info().
			Str("player", string(p)).
			Int("balance", balance).
			Bool("won_last_hand", won).
			Msg("cashed out")
	}
	return nil
}

// seatedPlayers lists who currently holds a seat, in seating order.
func seatedPlayers(registry *session.Registry, key session.Key) ([]game.PlayerID, error) {
	return session.Atomically(registry, func(tx *session.Tx) ([]game.PlayerID, error) {
		st, ok := tx.State(key)
		if !ok {
			return nil, session.ErrRetry
		}
		var ids []game.PlayerID
		for _, p := range st.Current().Players {
			ids = append(ids, p.ID)
		}
		return ids, nil
	})
}

// turn is the driver's view of an open hand: who acts and what a
// minimum raise would cost them, or that the hand has settled.
type turn struct {
	player   game.PlayerID
	minRaise int
	canRaise bool
	settled  bool
}

func nextTurn(registry *session.Registry, key session.Key) (turn, error) {
	return session.Atomically(registry, func(tx *session.Tx) (turn, error) {
		st, ok := tx.State(key)
		if !ok {
			return turn{}, session.ErrRetry
		}
		if _, ok := st.(session.Settled); ok {
			return turn{settled: true}, nil
		}
		g := st.Current()
		actor := g.Actor()
		if actor == nil {
			return turn{}, errors.New("open hand with nobody to act")
		}

		minRaise := g.BigBlind
		if g.LastRaise != nil && g.LastRaise.Amount > minRaise {
			minRaise = g.LastRaise.Amount
		}
		owed := 0
		for _, p := range g.Players {
			if p.RoundBet > actor.RoundBet+owed {
				owed = p.RoundBet - actor.RoundBet
			}
		}
		return turn{
			player:   actor.ID,
			minRaise: minRaise,
			canRaise: actor.Stack >= owed+minRaise,
		}, nil
	})
}

// playHand drives scripted players until the hand settles. Players
// mostly call and check, raise the minimum now and then, and
// occasionally give up their hand.
func (c *DemoCmd) playHand(svc *session.Service, registry *session.Registry, key session.Key, rng *rand.Rand, logger zerolog.Logger) error {
	for {
		t, err := nextTurn(registry, key)
		if err != nil {
			return err
		}
		if t.settled {
			return nil
		}

		switch roll := rng.IntN(10); {
		case roll == 0:
			_, err = svc.Fold(key, t.player)
		case roll <= 2 && t.canRaise:
			_, err = svc.Raise(key, t.player, t.minRaise)
		default:
			err = callOrCheck(svc, key, t.player)
		}
		if err != nil {
			return err
		}
		logger.Debug().Str("player", string(t.player)).Msg("acted")
	}
}

// callOrCheck checks, and pays the outstanding bet when the rules
// demand a call first.
func callOrCheck(svc *session.Service, key session.Key, player game.PlayerID) error {
	_, err := svc.Check(key, player)
	var rule *game.Error
	if errors.As(err, &rule) && rule.Kind == game.CallFirst {
		_, err = svc.Call(key, player)
	}
	return err
}

func logHandStart(logger zerolog.Logger, hand int, events []game.Event) {
	for _, ev := range events {
		if dealt, ok := ev.(game.HandDealt); ok {
			logger.Info().
				Int("hand", hand).
				Str("hand_id", dealt.HandID).
				Interface("players", dealt.Players).
				Msg("hand dealt")
		}
	}
}

func logResult(logger zerolog.Logger, hand int, result *game.Result) {
	ev := logger.Info().
		Int("hand", hand).
		Interface("winners", result.Winners).
		Interface("payouts", result.Payouts)
	if result.WinningHand != nil {
		ev = ev.Str("winning_hand", result.WinningHand.String())
	}
	ev.Msg("hand settled")
}
