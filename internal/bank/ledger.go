// Package bank defines the ledger contract the game engine consumes.
// Persistence lives elsewhere; the engine only needs balances to move
// atomically with seats, so every operation returns a new ledger value
// that a transaction can hold, replace and throw away on abort.
package bank

import (
	"fmt"
	"time"
)

// AccountID identifies a ledger account. It matches the player
// identity the transport layer resolves.
type AccountID string

// Ledger is a persistent value: Withdraw, Deposit and Loan return the
// updated ledger and never mutate the receiver.
type Ledger interface {
	Balance(id AccountID) int
	Withdraw(id AccountID, amount int) (Ledger, error)
	Deposit(id AccountID, amount int) (Ledger, error)
	Loan(id AccountID, amount int, at time.Time) (Ledger, error)
}

// InsufficientBalanceError reports a withdrawal larger than the
// account holds.
type InsufficientBalanceError struct {
	Account   AccountID
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("account %s holds %d, needs %d", e.Account, e.Available, e.Required)
}

// loanRecord remembers one granted loan.
type loanRecord struct {
	account AccountID
	amount  int
	at      time.Time
}

// MemoryLedger is the in-memory Ledger used by tests and the demo
// binary. Zero value is an empty ledger.
type MemoryLedger struct {
	balances map[AccountID]int
	loans    []loanRecord
}

// NewMemoryLedger creates a ledger pre-funded with the given balances.
func NewMemoryLedger(balances map[AccountID]int) *MemoryLedger {
	l := &MemoryLedger{balances: make(map[AccountID]int, len(balances))}
	for id, n := range balances {
		l.balances[id] = n
	}
	return l
}

func (l *MemoryLedger) copy() *MemoryLedger {
	c := &MemoryLedger{
		balances: make(map[AccountID]int, len(l.balances)),
		loans:    append([]loanRecord(nil), l.loans...),
	}
	for id, n := range l.balances {
		c.balances[id] = n
	}
	return c
}

// Balance returns the account balance, zero for unknown accounts.
func (l *MemoryLedger) Balance(id AccountID) int {
	if l == nil || l.balances == nil {
		return 0
	}
	return l.balances[id]
}

// Withdraw removes amount from the account.
func (l *MemoryLedger) Withdraw(id AccountID, amount int) (Ledger, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative withdrawal %d", amount)
	}
	if have := l.Balance(id); have < amount {
		return nil, &InsufficientBalanceError{Account: id, Required: amount, Available: have}
	}
	c := l.copy()
	c.balances[id] -= amount
	return c, nil
}

// Deposit adds amount to the account.
func (l *MemoryLedger) Deposit(id AccountID, amount int) (Ledger, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative deposit %d", amount)
	}
	c := l.copy()
	c.balances[id] += amount
	return c, nil
}

// Loan credits the account and records the debt with its timestamp.
func (l *MemoryLedger) Loan(id AccountID, amount int, at time.Time) (Ledger, error) {
	if amount < 0 {
		return nil, fmt.Errorf("negative loan %d", amount)
	}
	c := l.copy()
	c.balances[id] += amount
	c.loans = append(c.loans, loanRecord{account: id, amount: amount, at: at})
	return c, nil
}

// Debt returns the total outstanding loans for the account.
func (l *MemoryLedger) Debt(id AccountID) int {
	total := 0
	for _, loan := range l.loans {
		if loan.account == id {
			total += loan.amount
		}
	}
	return total
}
