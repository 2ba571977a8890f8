package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// DriftRecorder receives reconciliation drift observations, typically a
// metrics gauge. Optional.
type DriftRecorder interface {
	RecordDrift(accountID string, drift decimal.Decimal)
	RecordSweep()
}

// ReconciliationUseCase replays the entry log and compares it to stored
// balances. A non-zero drift is an alarm for manual remediation, never
// an auto-correct.
type ReconciliationUseCase struct {
	accounts AccountRepository
	entries  EntryRepository
	drift    DriftRecorder
	logger   zerolog.Logger
}

// NewReconciliationUseCase creates a new ReconciliationUseCase.
func NewReconciliationUseCase(accounts AccountRepository, entries EntryRepository, drift DriftRecorder, logger zerolog.Logger) *ReconciliationUseCase {
	return &ReconciliationUseCase{
		accounts: accounts,
		entries:  entries,
		drift:    drift,
		logger:   logger,
	}
}

// ReconciliationResult compares stored and computed balances.
type ReconciliationResult struct {
	AccountID       string
	StoredBalance   decimal.Decimal
	ComputedBalance decimal.Decimal
	Drift           decimal.Decimal
	CheckedAt       time.Time
}

// Consistent reports whether the stored balance matches the entry log.
func (r *ReconciliationResult) Consistent() bool {
	return r.Drift.IsZero()
}

// Reconcile replays an account's completed entries and compares the sum
// to the stored balance.
func (uc *ReconciliationUseCase) Reconcile(ctx context.Context, accountID string) (*ReconciliationResult, error) {
	acc, err := uc.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	computed, err := uc.entries.SumSignedByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	result := &ReconciliationResult{
		AccountID:       accountID,
		StoredBalance:   acc.Balance,
		ComputedBalance: computed,
		Drift:           acc.Balance.Sub(computed),
		CheckedAt:       time.Now().UTC(),
	}

	if uc.drift != nil {
		uc.drift.RecordDrift(accountID, result.Drift)
	}

	if !result.Consistent() {
		uc.logger.Error().
			Str("account_id", accountID).
			Str("stored", result.StoredBalance.String()).
			Str("computed", result.ComputedBalance.String()).
			Str("drift", result.Drift.String()).
			Msg("ledger drift detected")
	}

	return result, nil
}

// ReconcileAllReport summarizes a full reconciliation sweep.
type ReconcileAllReport struct {
	TotalAccounts int
	Consistent    int
	Discrepancies []*ReconciliationResult
	CheckedAt     time.Time
}

// ReconcileAll sweeps every account.
func (uc *ReconciliationUseCase) ReconcileAll(ctx context.Context) (*ReconcileAllReport, error) {
	const pageSize = 1000

	if uc.drift != nil {
		uc.drift.RecordSweep()
	}

	report := &ReconcileAllReport{CheckedAt: time.Now().UTC()}

	for offset := 0; ; offset += pageSize {
		accounts, err := uc.accounts.List(ctx, pageSize, offset)
		if err != nil {
			return nil, err
		}
		if len(accounts) == 0 {
			break
		}

		for _, acc := range accounts {
			result, err := uc.Reconcile(ctx, acc.ID)
			if err != nil {
				return nil, err
			}

			report.TotalAccounts++
			if result.Consistent() {
				report.Consistent++
			} else {
				report.Discrepancies = append(report.Discrepancies, result)
			}
		}

		if len(accounts) < pageSize {
			break
		}
	}

	return report, nil
}
