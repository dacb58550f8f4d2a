// Package session coordinates concurrent player commands against
// shared per-session games. Every command runs as one atomic
// transaction: reads, the engine transition and the ledger movement
// commit as a single indivisible step, or not at all.
//
// The coordinator is a single mutex-guarded store with a condition
// variable for suspension: a transaction whose precondition is not yet
// true parks and re-runs from scratch after every commit, which gives
// optimistic, retry-based blocking without the engine knowing anything
// about it.
package session

import (
	"errors"
	"sync"

	"github.com/cardroom/cardroom/internal/bank"
	"github.com/cardroom/cardroom/internal/game"
	"github.com/cardroom/cardroom/internal/randutil"
)

// Key is an opaque session identifier, typically a resolved channel
// binding. The registry never looks inside it.
type Key string

// ErrRetry suspends the enclosing transaction: it parks until another
// transaction commits, then re-runs from the top. Return it (or wrap
// it) from a transaction body when a precondition is not yet true.
var ErrRetry = errors.New("session: precondition not met, retry")

// State is what a session holds: a closed sum of an open game or the
// settled outcome of the last hand alongside its follow-up game.
type State interface {
	isState()
	// Current returns the game accepting commands in this state.
	Current() *game.Game
}

// Open is a session with a game in progress (or in its lobby).
type Open struct {
	Game *game.Game
}

func (Open) isState() {}

// Current implements State.
func (s Open) Current() *game.Game { return s.Game }

// Settled is a session whose last hand just finished. Game is the
// fresh lobby game that play continues on.
type Settled struct {
	Result *game.Result
	Game   *game.Game
}

func (Settled) isState() {}

// Current implements State.
func (s Settled) Current() *game.Game { return s.Game }

// Registry owns every session's state, the shared bank ledger and the
// root random stream. All access goes through Atomically.
type Registry struct {
	mu   sync.Mutex
	cond *sync.Cond

	sessions map[Key]State
	ledger   bank.Ledger
	seed     int64
}

// NewRegistry creates a registry over the given ledger, with seed as
// the root of the splittable random stream handed out to sessions.
func NewRegistry(ledger bank.Ledger, seed int64) *Registry {
	r := &Registry{
		sessions: make(map[Key]State),
		ledger:   ledger,
		seed:     seed,
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Tx is a transactional view of the registry. Reads see committed
// state overlaid with the transaction's own writes; writes stay in the
// buffer until the transaction commits. Discarding a Tx (on abort or a
// failed OrElse branch) has no observable effect.
type Tx struct {
	registry *Registry
	writes   map[Key]State
	ledger   bank.Ledger
	seed     int64
}

// State returns the session's state, buffered writes first.
func (tx *Tx) State(key Key) (State, bool) {
	if s, ok := tx.writes[key]; ok {
		return s, true
	}
	s, ok := tx.registry.sessions[key]
	return s, ok
}

// SetState buffers a session state write.
func (tx *Tx) SetState(key Key, s State) {
	tx.writes[key] = s
}

// Ledger returns the transaction's working ledger value.
func (tx *Tx) Ledger() bank.Ledger { return tx.ledger }

// SetLedger replaces the transaction's working ledger value.
func (tx *Tx) SetLedger(l bank.Ledger) { tx.ledger = l }

// SplitSeed derives a fresh independent seed from the registry's root
// stream, advancing the stream within the transaction.
func (tx *Tx) SplitSeed() int64 {
	branch, carry := randutil.Split(tx.seed)
	tx.seed = carry
	return branch
}

func (tx *Tx) fork() *Tx {
	f := &Tx{
		registry: tx.registry,
		writes:   make(map[Key]State, len(tx.writes)),
		ledger:   tx.ledger,
		seed:     tx.seed,
	}
	for k, s := range tx.writes {
		f.writes[k] = s
	}
	return f
}

func (tx *Tx) merge(f *Tx) {
	for k, s := range f.writes {
		tx.writes[k] = s
	}
	tx.ledger = f.ledger
	tx.seed = f.seed
}

// Atomically runs fn as one transaction. The whole read-evaluate-write
// sequence is indivisible with respect to every other transaction:
// commits are serializable and no caller observes a half-applied
// update.
//
// fn returning ErrRetry suspends the calling goroutine until any other
// transaction commits, then re-evaluates from scratch; there is no
// timeout and no fairness among waiters. Any other error aborts the
// transaction, leaving stored state completely unchanged.
func Atomically[T any](r *Registry, fn func(*Tx) (T, error)) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		tx := &Tx{
			registry: r,
			writes:   make(map[Key]State),
			ledger:   r.ledger,
			seed:     r.seed,
		}

		v, err := fn(tx)
		if errors.Is(err, ErrRetry) {
			r.cond.Wait()
			continue
		}
		if err != nil {
			var zero T
			return zero, err
		}

		for k, s := range tx.writes {
			r.sessions[k] = s
		}
		r.ledger = tx.ledger
		r.seed = tx.seed
		r.cond.Broadcast()
		return v, nil
	}
}

// OrElse composes two transaction bodies: it tries a, and if a asks to
// retry it runs b instead. The failed branch's buffered writes are
// discarded, so nothing it did is observable. Only when both branches
// ask to retry does the composition suspend.
func OrElse[T any](a, b func(*Tx) (T, error)) func(*Tx) (T, error) {
	return func(tx *Tx) (T, error) {
		branch := tx.fork()
		v, err := a(branch)
		if errors.Is(err, ErrRetry) {
			return b(tx)
		}
		if err == nil {
			tx.merge(branch)
		}
		return v, err
	}
}
