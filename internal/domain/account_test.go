package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name        string
		balance     decimal.Decimal
		status      AccountStatus
		debitAmount decimal.Decimal
		wantErr     error
	}{
		{
			name:        "debit less than balance",
			balance:     decimal.NewFromInt(100),
			status:      AccountStatusActive,
			debitAmount: decimal.NewFromInt(50),
			wantErr:     nil,
		},
		{
			name:        "debit exact balance",
			balance:     decimal.NewFromInt(100),
			status:      AccountStatusActive,
			debitAmount: decimal.NewFromInt(100),
			wantErr:     nil,
		},
		{
			name:        "debit more than balance",
			balance:     decimal.NewFromInt(100),
			status:      AccountStatusActive,
			debitAmount: decimal.NewFromInt(150),
			wantErr:     ErrInsufficientFunds,
		},
		{
			name:        "debit suspended account",
			balance:     decimal.NewFromInt(100),
			status:      AccountStatusSuspended,
			debitAmount: decimal.NewFromInt(10),
			wantErr:     ErrAccountNotActive,
		},
		{
			name:        "debit closed account",
			balance:     decimal.NewFromInt(100),
			status:      AccountStatusClosed,
			debitAmount: decimal.NewFromInt(10),
			wantErr:     ErrAccountNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance, Status: tt.status}

			err := acc.ValidateDebit(tt.debitAmount)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAccount_ValidateCredit(t *testing.T) {
	tests := []struct {
		name       string
		balance    decimal.Decimal
		status     AccountStatus
		amount     decimal.Decimal
		maxBalance decimal.Decimal
		wantErr    error
	}{
		{
			name:       "credit within ceiling",
			balance:    decimal.NewFromInt(100),
			status:     AccountStatusActive,
			amount:     decimal.NewFromInt(50),
			maxBalance: decimal.NewFromInt(1000),
			wantErr:    nil,
		},
		{
			name:       "credit to exact ceiling",
			balance:    decimal.NewFromInt(900),
			status:     AccountStatusActive,
			amount:     decimal.NewFromInt(100),
			maxBalance: decimal.NewFromInt(1000),
			wantErr:    nil,
		},
		{
			name:       "credit over ceiling",
			balance:    decimal.NewFromInt(950),
			status:     AccountStatusActive,
			amount:     decimal.NewFromInt(100),
			maxBalance: decimal.NewFromInt(1000),
			wantErr:    ErrAmountOverflow,
		},
		{
			name:       "ceiling disabled",
			balance:    decimal.NewFromInt(950),
			status:     AccountStatusActive,
			amount:     decimal.NewFromInt(1000000),
			maxBalance: decimal.Zero,
			wantErr:    nil,
		},
		{
			name:       "credit suspended account",
			balance:    decimal.NewFromInt(100),
			status:     AccountStatusSuspended,
			amount:     decimal.NewFromInt(10),
			maxBalance: decimal.NewFromInt(1000),
			wantErr:    ErrAccountNotActive,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc := &Account{Balance: tt.balance, Status: tt.status}

			err := acc.ValidateCredit(tt.amount, tt.maxBalance)

			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected error %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTotals_ApplyTotals(t *testing.T) {
	var totals Totals

	totals.ApplyTotals(EntryKindDeposit, decimal.NewFromInt(100))
	totals.ApplyTotals(EntryKindBet, decimal.NewFromInt(30))
	totals.ApplyTotals(EntryKindWin, decimal.NewFromInt(60))
	totals.ApplyTotals(EntryKindTransferOut, decimal.NewFromInt(10))
	totals.ApplyTotals(EntryKindTransferIn, decimal.NewFromInt(5))
	totals.ApplyTotals(EntryKindWithdrawal, decimal.NewFromInt(20))

	if !totals.Deposited.Equal(decimal.NewFromInt(100)) {
		t.Errorf("deposited = %s", totals.Deposited)
	}
	if !totals.Lost.Equal(decimal.NewFromInt(30)) {
		t.Errorf("lost = %s", totals.Lost)
	}
	if !totals.Won.Equal(decimal.NewFromInt(60)) {
		t.Errorf("won = %s", totals.Won)
	}
	if !totals.TransferredOut.Equal(decimal.NewFromInt(10)) {
		t.Errorf("transferred out = %s", totals.TransferredOut)
	}
	if !totals.TransferredIn.Equal(decimal.NewFromInt(5)) {
		t.Errorf("transferred in = %s", totals.TransferredIn)
	}
	if !totals.Withdrawn.Equal(decimal.NewFromInt(20)) {
		t.Errorf("withdrawn = %s", totals.Withdrawn)
	}
}

func TestAccountStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from AccountStatus
		to   AccountStatus
		want bool
	}{
		{AccountStatusActive, AccountStatusSuspended, true},
		{AccountStatusActive, AccountStatusClosed, true},
		{AccountStatusSuspended, AccountStatusActive, true},
		{AccountStatusClosed, AccountStatusActive, false},
		{AccountStatusClosed, AccountStatusSuspended, false},
		{AccountStatusActive, AccountStatusActive, false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
