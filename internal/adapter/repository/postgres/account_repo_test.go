package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

func beginMockTx(t *testing.T, pool pgxmock.PgxPoolIface) usecase.Transaction {
	t.Helper()
	tx, err := newTxManagerWithPool(pool).Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	return tx
}

func TestAccountRepositoryUpdateVersionConflict(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	// A stale version token matches no row.
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectRollback()

	tx := beginMockTx(t, mockPool)
	defer tx.Rollback(context.Background())

	repo := &AccountRepository{}
	err := repo.Update(context.Background(), tx, &domain.Account{
		ID:        "acc-1",
		Balance:   decimal.NewFromInt(10),
		Status:    domain.AccountStatusActive,
		Version:   3,
		UpdatedAt: time.Now().UTC(),
	})

	if !errors.Is(err, domain.ErrConcurrencyConflict) {
		t.Fatalf("expected ErrConcurrencyConflict, got %v", err)
	}

	if err := tx.Rollback(context.Background()); err != nil {
		t.Fatalf("rollback failed: %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestAccountRepositoryUpdateSuccess(t *testing.T) {
	mockPool := newMockPool(t)
	mockPool.ExpectBegin()
	mockPool.ExpectExec("UPDATE accounts").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(),
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mockPool.ExpectCommit()

	tx := beginMockTx(t, mockPool)

	repo := &AccountRepository{}
	err := repo.Update(context.Background(), tx, &domain.Account{
		ID:        "acc-1",
		Balance:   decimal.NewFromInt(10),
		Status:    domain.AccountStatusActive,
		Version:   3,
		UpdatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Commit(context.Background()); err != nil {
		t.Fatalf("commit failed: %v", err)
	}
	assertExpectations(t, mockPool)
}

func TestNumericDecimalConversion(t *testing.T) {
	tests := []string{"0", "100", "99.99", "-42.5", "0.01", "123456789.123456"}

	for _, s := range tests {
		d := decimal.RequireFromString(s)
		got := numericToDecimal(decimalToNumeric(d))
		if !got.Equal(d) {
			t.Errorf("round trip of %s = %s", s, got)
		}
	}
}

func TestNumericDecimalConversionInvalid(t *testing.T) {
	var d decimal.Decimal
	got := numericToDecimal(decimalToNumeric(d))
	if !got.IsZero() {
		t.Errorf("zero value round trip = %s, want 0", got)
	}
}
