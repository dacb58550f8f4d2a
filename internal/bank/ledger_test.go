package bank

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawDeposit(t *testing.T) {
	l := Ledger(NewMemoryLedger(map[AccountID]int{"alice": 100}))

	l2, err := l.Withdraw("alice", 60)
	require.NoError(t, err)
	assert.Equal(t, 40, l2.Balance("alice"))
	// Original value untouched
	assert.Equal(t, 100, l.Balance("alice"))

	l3, err := l2.Deposit("alice", 10)
	require.NoError(t, err)
	assert.Equal(t, 50, l3.Balance("alice"))
}

func TestWithdrawInsufficient(t *testing.T) {
	l := NewMemoryLedger(map[AccountID]int{"bob": 30})

	_, err := l.Withdraw("bob", 31)
	var insufficient *InsufficientBalanceError
	require.ErrorAs(t, err, &insufficient)
	assert.Equal(t, 31, insufficient.Required)
	assert.Equal(t, 30, insufficient.Available)
}

func TestUnknownAccountIsEmpty(t *testing.T) {
	l := NewMemoryLedger(nil)
	assert.Equal(t, 0, l.Balance("nobody"))

	_, err := l.Withdraw("nobody", 1)
	assert.Error(t, err)
}

func TestLoanRecordsDebt(t *testing.T) {
	l := NewMemoryLedger(nil)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	l2, err := l.Loan("carol", 500, now)
	require.NoError(t, err)
	assert.Equal(t, 500, l2.Balance("carol"))
	assert.Equal(t, 500, l2.(*MemoryLedger).Debt("carol"))
	assert.Equal(t, 0, l.Debt("carol"))
}
