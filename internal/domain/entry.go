package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind classifies a balance change. Amounts are stored as positive
// magnitudes; the kind implies the sign.
type EntryKind string

const (
	EntryKindDeposit     EntryKind = "deposit"
	EntryKindWithdrawal  EntryKind = "withdrawal"
	EntryKindBet         EntryKind = "bet"
	EntryKindWin         EntryKind = "win"
	EntryKindTransferOut EntryKind = "transfer_out"
	EntryKindTransferIn  EntryKind = "transfer_in"
	EntryKindAdminCredit EntryKind = "admin_credit"
	EntryKindAdminDebit  EntryKind = "admin_debit"
	EntryKindBonus       EntryKind = "bonus"
)

// EntryStatus is the settlement state of an entry. Pending exists only
// for off-band flows such as withdrawal approval.
type EntryStatus string

const (
	EntryStatusPending   EntryStatus = "pending"
	EntryStatusCompleted EntryStatus = "completed"
	EntryStatusRejected  EntryStatus = "rejected"
)

var creditKinds = map[EntryKind]bool{
	EntryKindDeposit:     true,
	EntryKindWin:         true,
	EntryKindTransferIn:  true,
	EntryKindAdminCredit: true,
	EntryKindBonus:       true,
}

var debitKinds = map[EntryKind]bool{
	EntryKindWithdrawal:  true,
	EntryKindBet:         true,
	EntryKindTransferOut: true,
	EntryKindAdminDebit:  true,
}

// IsCredit reports whether the kind increases the balance.
func (k EntryKind) IsCredit() bool { return creditKinds[k] }

// IsDebit reports whether the kind decreases the balance.
func (k EntryKind) IsDebit() bool { return debitKinds[k] }

// IsValid reports whether the kind is known.
func (k EntryKind) IsValid() bool { return creditKinds[k] || debitKinds[k] }

// Entry is an immutable, append-only audit record of one balance change.
// Corrections are new offsetting entries, never mutations.
type Entry struct {
	ID                    string
	AccountID             string
	CounterpartyAccountID *string
	CorrelationID         string
	Kind                  EntryKind
	Amount                decimal.Decimal
	BalanceBefore         decimal.Decimal
	BalanceAfter          decimal.Decimal
	Status                EntryStatus
	Actor                 string
	Reason                string
	Metadata              map[string]any
	CreatedAt             time.Time
}

// SignedAmount returns the amount with the sign implied by the kind.
func (e *Entry) SignedAmount() decimal.Decimal {
	if e.Kind.IsDebit() {
		return e.Amount.Neg()
	}
	return e.Amount
}

// Validate checks the internal consistency of the entry.
func (e *Entry) Validate() error {
	if !e.Kind.IsValid() {
		return ErrInvalidKind
	}
	if e.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !e.BalanceAfter.Equal(e.BalanceBefore.Add(e.SignedAmount())) {
		return ErrLedgerDrift
	}
	return nil
}
