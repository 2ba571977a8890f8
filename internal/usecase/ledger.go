package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
)

// entryParams describes one staged balance change.
type entryParams struct {
	Kind          domain.EntryKind
	Amount        decimal.Decimal
	CorrelationID string
	Counterparty  *string
	Actor         string
	Reason        string
	Metadata      map[string]any
}

// applyEntry is the single implementation of the balance-mutation
// invariant. The caller must have locked the account during the read
// phase; applyEntry stages the balance change in memory and appends the
// paired audit entry. The account row itself is written once per
// transaction, after all entries, via AccountRepository.Update.
func applyEntry(
	ctx context.Context,
	tx Transaction,
	entries EntryRepository,
	idGen IDGenerator,
	acc *domain.Account,
	p entryParams,
	maxBalance decimal.Decimal,
	now time.Time,
) (*domain.Entry, error) {
	if p.Kind.IsDebit() {
		if err := acc.ValidateDebit(p.Amount); err != nil {
			return nil, err
		}
	} else {
		if err := acc.ValidateCredit(p.Amount, maxBalance); err != nil {
			return nil, err
		}
	}

	before := acc.Balance

	var after decimal.Decimal
	if p.Kind.IsDebit() {
		after = acc.ApplyDebit(p.Amount)
	} else {
		after = acc.ApplyCredit(p.Amount)
	}

	entry := &domain.Entry{
		ID:                    idGen.Generate(),
		AccountID:             acc.ID,
		CounterpartyAccountID: p.Counterparty,
		CorrelationID:         p.CorrelationID,
		Kind:                  p.Kind,
		Amount:                p.Amount,
		BalanceBefore:         before,
		BalanceAfter:          after,
		Status:                domain.EntryStatusCompleted,
		Actor:                 p.Actor,
		Reason:                p.Reason,
		Metadata:              p.Metadata,
		CreatedAt:             now,
	}

	if err := entries.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	acc.Balance = after
	acc.Totals.ApplyTotals(p.Kind, p.Amount)

	return entry, nil
}

// runIdempotent wraps a mutating operation with replay detection. An
// empty key or nil store disables the guard. A replayed key returns the
// originally stored result without re-running the operation; a key
// whose first attempt is still in flight is reported as a concurrency
// conflict so the caller can retry.
func runIdempotent[T any](
	ctx context.Context,
	store IdempotencyStore,
	key string,
	ttl time.Duration,
	run func() (T, error),
) (T, bool, error) {
	var zero T

	if store == nil || key == "" {
		result, err := run()
		return result, false, err
	}

	exists, cached, err := store.CheckAndSet(ctx, key, nil, ttl)
	if err != nil {
		return zero, false, err
	}

	if exists {
		if len(cached) == 0 || string(cached) == "processing" {
			return zero, false, domain.ErrConcurrencyConflict
		}

		var result T
		if err := json.Unmarshal(cached, &result); err != nil {
			return zero, false, err
		}
		return result, true, nil
	}

	result, err := run()
	if err != nil {
		// Unlock the key so the caller may retry the failed call.
		_ = store.Release(ctx, key)
		return zero, false, err
	}

	payload, err := json.Marshal(result)
	if err == nil {
		_ = store.Update(ctx, key, payload, ttl)
	}

	return result, false, nil
}
