package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/infrastructure/metrics"
)

// AccountUseCase handles account lifecycle and point reads.
type AccountUseCase struct {
	txManager TransactionManager
	accounts  AccountRepository
	entries   EntryRepository
	idGen     IDGenerator
	retrier   Retrier
	policy    Policy
	cache     BalanceCache
	metrics   *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. Cache and Metrics
// are optional.
func NewAccountUseCase(txManager TransactionManager, accounts AccountRepository, entries EntryRepository, idGen IDGenerator, retrier Retrier, policy Policy, cache BalanceCache, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{
		txManager: txManager,
		accounts:  accounts,
		entries:   entries,
		idGen:     idGen,
		retrier:   retrier,
		policy:    policy,
		cache:     cache,
		metrics:   m,
	}
}

// Open explicitly creates an account, crediting the configured signup
// bonus as a bonus entry in the same transaction.
func (uc *AccountUseCase) Open(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()

	acc := &domain.Account{
		ID:        accountID,
		Balance:   decimal.Zero,
		Status:    domain.AccountStatusActive,
		Version:   0,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.accounts.Create(ctx, tx, acc); err != nil {
		return nil, err
	}

	if uc.policy.SignupBonus.IsPositive() {
		if _, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
			Kind:   domain.EntryKindBonus,
			Amount: uc.policy.SignupBonus,
			Reason: "signup bonus",
		}, uc.policy.MaxBalance, now); err != nil {
			return nil, err
		}

		acc.Version++
		acc.UpdatedAt = now
		if err := uc.accounts.Update(ctx, tx, acc); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
		if uc.policy.SignupBonus.IsPositive() {
			uc.metrics.EntriesWritten.WithLabelValues(string(domain.EntryKindBonus)).Inc()
		}
	}

	return acc, nil
}

// Get retrieves an account by ID.
func (uc *AccountUseCase) Get(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accounts.GetByID(ctx, id)
}

// GetBalance is a point read of the current balance, served from the
// cache when warm. Callers must never base a mutation on this value
// without re-validating inside the mutation's own transaction.
func (uc *AccountUseCase) GetBalance(ctx context.Context, id string) (decimal.Decimal, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, id); err == nil {
			if balance, err := decimal.NewFromString(cached); err == nil {
				return balance, nil
			}
		}
	}

	acc, err := uc.accounts.GetByID(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}

	if uc.cache != nil {
		_ = uc.cache.Set(ctx, id, acc.Balance.String(), BalanceCacheTTL)
	}

	return acc.Balance, nil
}

// SetStatus transitions the account lifecycle state. Closed accounts
// stay in the store; they are never removed.
func (uc *AccountUseCase) SetStatus(ctx context.Context, id string, status domain.AccountStatus) (*domain.Account, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	var result *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		acc, err := uc.accounts.GetByIDForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}

		if !acc.Status.CanTransitionTo(status) {
			return domain.ErrAccountNotActive
		}

		now := time.Now().UTC()
		acc.Status = status
		acc.Version++
		acc.UpdatedAt = now

		if err := uc.accounts.Update(ctx, tx, acc); err != nil {
			return err
		}

		if err := tx.Commit(ctx); err != nil {
			return err
		}

		result = acc
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	Limit  int
	Offset int
}

// List lists accounts with pagination.
func (uc *AccountUseCase) List(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)
	return uc.accounts.List(ctx, limit, offset)
}
