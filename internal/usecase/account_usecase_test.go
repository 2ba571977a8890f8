package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
	"github.com/spinhall/ledgercore/internal/usecase/mocks"
)

type accountEnv struct {
	store *mocks.Store
	uc    *usecase.AccountUseCase
}

func newAccountEnv(policy usecase.Policy) *accountEnv {
	store := mocks.NewStore()

	uc := usecase.NewAccountUseCase(
		mocks.NewTxManager(store),
		mocks.NewAccountRepo(store),
		mocks.NewEntryRepo(store),
		mocks.NewIDGen("acc-entry-"),
		mocks.NopRetrier{},
		policy,
		nil,
		nil,
	)

	return &accountEnv{store: store, uc: uc}
}

func TestAccountUseCase_Open(t *testing.T) {
	policy := usecase.DefaultPolicy()
	policy.SignupBonus = dec("100")

	env := newAccountEnv(policy)

	acc, err := env.uc.Open(context.Background(), "player-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if acc.Status != domain.AccountStatusActive {
		t.Errorf("status = %s, want active", acc.Status)
	}
	if !acc.Balance.Equal(dec("100")) {
		t.Errorf("balance = %s, want 100", acc.Balance)
	}

	entries := env.store.Entries("player-7")
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].Kind != domain.EntryKindBonus {
		t.Errorf("kind = %s, want bonus", entries[0].Kind)
	}
	if err := entries[0].Validate(); err != nil {
		t.Errorf("bonus entry invalid: %v", err)
	}
}

func TestAccountUseCase_Open_NoBonus(t *testing.T) {
	policy := usecase.DefaultPolicy()
	policy.SignupBonus = dec("0")

	env := newAccountEnv(policy)

	acc, err := env.uc.Open(context.Background(), "player-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !acc.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", acc.Balance)
	}
	if n := env.store.EntryCount("player-7"); n != 0 {
		t.Errorf("entries = %d, want 0", n)
	}
}

func TestAccountUseCase_Open_Duplicate(t *testing.T) {
	env := newAccountEnv(usecase.DefaultPolicy())
	seedAccount(env.store, "player-7", "50")

	if _, err := env.uc.Open(context.Background(), "player-7"); err == nil {
		t.Fatal("expected error opening existing account")
	}
}

func TestAccountUseCase_GetBalance(t *testing.T) {
	env := newAccountEnv(usecase.DefaultPolicy())
	seedAccount(env.store, "player-7", "42.50")

	balance, err := env.uc.GetBalance(context.Background(), "player-7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(dec("42.50")) {
		t.Errorf("balance = %s, want 42.50", balance)
	}

	if _, err := env.uc.GetBalance(context.Background(), "ghost"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountUseCase_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		from    domain.AccountStatus
		to      domain.AccountStatus
		wantErr bool
	}{
		{name: "active to suspended", from: domain.AccountStatusActive, to: domain.AccountStatusSuspended},
		{name: "suspended to active", from: domain.AccountStatusSuspended, to: domain.AccountStatusActive},
		{name: "active to closed", from: domain.AccountStatusActive, to: domain.AccountStatusClosed},
		{name: "closed is terminal", from: domain.AccountStatusClosed, to: domain.AccountStatusActive, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newAccountEnv(usecase.DefaultPolicy())
			acc := &domain.Account{ID: "player-7", Status: tt.from, Version: 1}
			env.store.Seed(acc)

			updated, err := env.uc.SetStatus(context.Background(), "player-7", tt.to)

			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if updated.Status != tt.to {
				t.Errorf("status = %s, want %s", updated.Status, tt.to)
			}
			if updated.Version != 2 {
				t.Errorf("version = %d, want 2", updated.Version)
			}
		})
	}
}

func TestAccountUseCase_List(t *testing.T) {
	env := newAccountEnv(usecase.DefaultPolicy())
	for _, id := range []string{"a", "b", "c"} {
		seedAccount(env.store, id, "10")
	}

	accounts, err := env.uc.List(context.Background(), usecase.ListAccountsInput{Limit: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Errorf("accounts = %d, want 2", len(accounts))
	}

	rest, err := env.uc.List(context.Background(), usecase.ListAccountsInput{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rest) != 1 {
		t.Errorf("accounts = %d, want 1", len(rest))
	}
}

func TestAccountUseCase_GetBalanceReadThrough(t *testing.T) {
	store := mocks.NewStore()
	cache := &mocks.Cache{}

	uc := usecase.NewAccountUseCase(
		mocks.NewTxManager(store),
		mocks.NewAccountRepo(store),
		mocks.NewEntryRepo(store),
		mocks.NewIDGen("acc-entry-"),
		mocks.NopRetrier{},
		usecase.DefaultPolicy(),
		cache,
		nil,
	)

	seedAccount(store, "acc-1", "100.00")

	balance, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !balance.Equal(dec("100.00")) {
		t.Errorf("balance = %s, want 100.00", balance)
	}

	// The store changes behind the cache's back; the warm entry wins
	// until invalidated.
	seedAccount(store, "acc-1", "50.00")

	cached, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cached.Equal(dec("100.00")) {
		t.Errorf("cached balance = %s, want 100.00", cached)
	}

	if err := cache.Invalidate(context.Background(), "acc-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	fresh, err := uc.GetBalance(context.Background(), "acc-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fresh.Equal(dec("50.00")) {
		t.Errorf("balance after invalidation = %s, want 50.00", fresh)
	}
}
