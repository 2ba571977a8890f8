package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	AccountStatusActive    AccountStatus = "active"
	AccountStatusSuspended AccountStatus = "suspended"
	AccountStatusClosed    AccountStatus = "closed"
)

// Totals holds cached per-account aggregates. They are informational
// and must always be re-derivable from the entry log.
type Totals struct {
	Deposited      decimal.Decimal
	Withdrawn      decimal.Decimal
	Won            decimal.Decimal
	Lost           decimal.Decimal
	TransferredOut decimal.Decimal
	TransferredIn  decimal.Decimal
}

// Account represents one principal's spendable balance.
// Accounts are never hard-deleted; closed accounts are marked closed.
type Account struct {
	ID        string
	Balance   decimal.Decimal
	Status    AccountStatus
	Totals    Totals
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the account accepts mutations.
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// ValidateDebit checks that the account can be debited by amount.
func (a *Account) ValidateDebit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}
	return nil
}

// ValidateCredit checks that the account can be credited by amount
// without exceeding maxBalance. A non-positive maxBalance disables
// the ceiling.
func (a *Account) ValidateCredit(amount, maxBalance decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}
	if maxBalance.IsPositive() && a.Balance.Add(amount).GreaterThan(maxBalance) {
		return ErrAmountOverflow
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (a *Account) ApplyDebit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Sub(amount)
}

// ApplyCredit returns the balance after a credit.
func (a *Account) ApplyCredit(amount decimal.Decimal) decimal.Decimal {
	return a.Balance.Add(amount)
}

// ApplyTotals accumulates the cached aggregate for a completed entry.
func (t *Totals) ApplyTotals(kind EntryKind, amount decimal.Decimal) {
	switch kind {
	case EntryKindDeposit:
		t.Deposited = t.Deposited.Add(amount)
	case EntryKindWithdrawal:
		t.Withdrawn = t.Withdrawn.Add(amount)
	case EntryKindWin:
		t.Won = t.Won.Add(amount)
	case EntryKindBet:
		t.Lost = t.Lost.Add(amount)
	case EntryKindTransferOut:
		t.TransferredOut = t.TransferredOut.Add(amount)
	case EntryKindTransferIn:
		t.TransferredIn = t.TransferredIn.Add(amount)
	}
}

// CanTransitionTo reports whether a status change is allowed.
// Closed is terminal.
func (s AccountStatus) CanTransitionTo(next AccountStatus) bool {
	if s == AccountStatusClosed {
		return false
	}
	switch next {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return next != s
	}
	return false
}
