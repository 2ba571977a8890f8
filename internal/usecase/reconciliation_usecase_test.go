package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
	"github.com/spinhall/ledgercore/internal/usecase/mocks"
)

type driftRecorderStub struct {
	recorded map[string]decimal.Decimal
	sweeps   int
}

func (d *driftRecorderStub) RecordDrift(accountID string, drift decimal.Decimal) {
	if d.recorded == nil {
		d.recorded = make(map[string]decimal.Decimal)
	}
	d.recorded[accountID] = drift
}

func (d *driftRecorderStub) RecordSweep() {
	d.sweeps++
}

func newReconEnv(store *mocks.Store, drift usecase.DriftRecorder) *usecase.ReconciliationUseCase {
	return usecase.NewReconciliationUseCase(
		mocks.NewAccountRepo(store),
		mocks.NewEntryRepo(store),
		drift,
		zerolog.Nop(),
	)
}

func TestReconciliationUseCase_ConsistentAfterOperations(t *testing.T) {
	env := newWalletEnv(usecase.DefaultPolicy())
	seedAccount(env.store, "acc-1", "100.00")
	// The seeded opening balance needs a matching entry or the replay
	// starts from zero.
	now := time.Now().UTC()
	env.store.SeedEntry(&domain.Entry{
		ID:            "seed-1",
		AccountID:     "acc-1",
		Kind:          domain.EntryKindDeposit,
		Amount:        dec("100.00"),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  dec("100.00"),
		Status:        domain.EntryStatusCompleted,
		CreatedAt:     now,
	})

	if _, err := env.uc.Debit(context.Background(), usecase.DebitInput{AccountID: "acc-1", Amount: dec("30.00")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := env.uc.Credit(context.Background(), usecase.CreditInput{AccountID: "acc-1", Amount: dec("60.00")}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recorder := &driftRecorderStub{}
	recon := newReconEnv(env.store, recorder)

	result, err := recon.Reconcile(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Consistent() {
		t.Errorf("drift = %s, want 0", result.Drift)
	}
	if !result.StoredBalance.Equal(dec("130")) {
		t.Errorf("stored = %s, want 130", result.StoredBalance)
	}
	if !result.ComputedBalance.Equal(dec("130")) {
		t.Errorf("computed = %s, want 130", result.ComputedBalance)
	}
	if got := recorder.recorded["acc-1"]; !got.IsZero() {
		t.Errorf("recorded drift = %s, want 0", got)
	}
}

func TestReconciliationUseCase_DetectsCorruptionWithoutCorrecting(t *testing.T) {
	store := mocks.NewStore()
	now := time.Now().UTC()

	// Stored balance disagrees with the entry log by 5.
	store.Seed(&domain.Account{
		ID:        "acc-1",
		Balance:   dec("105.00"),
		Status:    domain.AccountStatusActive,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	store.SeedEntry(&domain.Entry{
		ID:            "seed-1",
		AccountID:     "acc-1",
		Kind:          domain.EntryKindDeposit,
		Amount:        dec("100.00"),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  dec("100.00"),
		Status:        domain.EntryStatusCompleted,
		CreatedAt:     now,
	})

	recorder := &driftRecorderStub{}
	recon := newReconEnv(store, recorder)

	result, err := recon.Reconcile(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.Consistent() {
		t.Fatal("expected drift to be detected")
	}
	if !result.Drift.Equal(dec("5")) {
		t.Errorf("drift = %s, want 5", result.Drift)
	}
	if !recorder.recorded["acc-1"].Equal(dec("5")) {
		t.Errorf("recorded drift = %s, want 5", recorder.recorded["acc-1"])
	}

	// Detection only: the stored balance stays as found.
	acc, _ := store.AccountSnapshot("acc-1")
	if !acc.Balance.Equal(dec("105.00")) {
		t.Errorf("balance = %s, want 105.00 untouched", acc.Balance)
	}
}

func TestReconciliationUseCase_IgnoresNonCompletedEntries(t *testing.T) {
	store := mocks.NewStore()
	now := time.Now().UTC()

	store.Seed(&domain.Account{
		ID:        "acc-1",
		Balance:   dec("100.00"),
		Status:    domain.AccountStatusActive,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	})
	store.SeedEntry(&domain.Entry{
		ID:            "seed-1",
		AccountID:     "acc-1",
		Kind:          domain.EntryKindDeposit,
		Amount:        dec("100.00"),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  dec("100.00"),
		Status:        domain.EntryStatusCompleted,
		CreatedAt:     now,
	})
	store.SeedEntry(&domain.Entry{
		ID:        "seed-2",
		AccountID: "acc-1",
		Kind:      domain.EntryKindWithdrawal,
		Amount:    dec("40.00"),
		Status:    domain.EntryStatusRejected,
		CreatedAt: now,
	})

	recon := newReconEnv(store, nil)

	result, err := recon.Reconcile(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Consistent() {
		t.Errorf("drift = %s, want 0 with rejected entry excluded", result.Drift)
	}
}

func TestReconciliationUseCase_ReconcileAll(t *testing.T) {
	store := mocks.NewStore()
	now := time.Now().UTC()

	for _, seed := range []struct {
		id      string
		balance string
		logged  string
	}{
		{"acc-1", "100.00", "100.00"},
		{"acc-2", "50.00", "50.00"},
		{"acc-3", "75.00", "70.00"},
	} {
		store.Seed(&domain.Account{
			ID:        seed.id,
			Balance:   dec(seed.balance),
			Status:    domain.AccountStatusActive,
			Version:   1,
			CreatedAt: now,
			UpdatedAt: now,
		})
		store.SeedEntry(&domain.Entry{
			ID:            "seed-" + seed.id,
			AccountID:     seed.id,
			Kind:          domain.EntryKindDeposit,
			Amount:        dec(seed.logged),
			BalanceBefore: decimal.Zero,
			BalanceAfter:  dec(seed.logged),
			Status:        domain.EntryStatusCompleted,
			CreatedAt:     now,
		})
	}

	recorder := &driftRecorderStub{}
	recon := newReconEnv(store, recorder)

	report, err := recon.ReconcileAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if recorder.sweeps != 1 {
		t.Errorf("sweeps = %d, want 1", recorder.sweeps)
	}
	if report.TotalAccounts != 3 {
		t.Errorf("total = %d, want 3", report.TotalAccounts)
	}
	if report.Consistent != 2 {
		t.Errorf("consistent = %d, want 2", report.Consistent)
	}
	if len(report.Discrepancies) != 1 {
		t.Fatalf("discrepancies = %d, want 1", len(report.Discrepancies))
	}
	if report.Discrepancies[0].AccountID != "acc-3" {
		t.Errorf("discrepancy account = %s, want acc-3", report.Discrepancies[0].AccountID)
	}
	if !report.Discrepancies[0].Drift.Equal(dec("5")) {
		t.Errorf("drift = %s, want 5", report.Discrepancies[0].Drift)
	}
}

func TestReconciliationUseCase_UnknownAccount(t *testing.T) {
	recon := newReconEnv(mocks.NewStore(), nil)

	_, err := recon.Reconcile(context.Background(), "ghost")
	if err == nil {
		t.Fatal("expected error for unknown account")
	}
}
