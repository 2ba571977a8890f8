package usecase

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
)

// Policy holds the operational limits the ledger enforces. Values are
// fixed at construction; there is no runtime mutation.
type Policy struct {
	// SignupBonus is credited as a bonus entry when an account is
	// auto-created on first reference.
	SignupBonus decimal.Decimal

	// AutoCreate allows credit operations to create missing accounts.
	AutoCreate bool

	// MaxBalance caps any single account balance. Zero disables the cap.
	MaxBalance decimal.Decimal

	// TransferBounds bound peer transfer amounts.
	TransferBounds domain.AmountBounds

	// RequestBounds bound settlement request amounts.
	RequestBounds domain.AmountBounds

	// MaxAdjustment caps a single admin adjustment magnitude.
	MaxAdjustment decimal.Decimal

	// Methods is the settlement method allow-list.
	Methods []string

	// IdempotencyTTL is the replay-detection window.
	IdempotencyTTL time.Duration
}

// DefaultPolicy returns the policy used when configuration is silent.
func DefaultPolicy() Policy {
	return Policy{
		SignupBonus: decimal.NewFromInt(100),
		AutoCreate:  true,
		MaxBalance:  decimal.NewFromInt(100_000_000),
		TransferBounds: domain.AmountBounds{
			Min: decimal.RequireFromString("0.01"),
			Max: decimal.NewFromInt(1_000_000),
		},
		RequestBounds: domain.AmountBounds{
			Min: decimal.RequireFromString("0.01"),
			Max: decimal.NewFromInt(1_000_000),
		},
		MaxAdjustment:  decimal.NewFromInt(1_000_000),
		Methods:        []string{"card", "bank", "crypto"},
		IdempotencyTTL: IdempotencyKeyTTL,
	}
}
