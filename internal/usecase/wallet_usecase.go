package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/infrastructure/metrics"
)

// WalletUseCase performs exactly-once, race-free balance mutations with
// a paired audit trail. Every mutating method runs as a single store
// transaction with all reads before any writes; side effects
// (notifications, cache invalidation) happen strictly after commit.
type WalletUseCase struct {
	txManager TransactionManager
	accounts  AccountRepository
	entries   EntryRepository
	idGen     IDGenerator
	retrier   Retrier
	idem      IdempotencyStore
	notifier  Notifier
	cache     Cache
	policy    Policy
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// WalletConfig holds dependencies for the WalletUseCase. Notifier,
// Cache, IdempotencyStore and Metrics are optional.
type WalletConfig struct {
	TxManager   TransactionManager
	Accounts    AccountRepository
	Entries     EntryRepository
	IDGenerator IDGenerator
	Retrier     Retrier
	Idempotency IdempotencyStore
	Notifier    Notifier
	Cache       Cache
	Policy      Policy
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(cfg WalletConfig) *WalletUseCase {
	return &WalletUseCase{
		txManager: cfg.TxManager,
		accounts:  cfg.Accounts,
		entries:   cfg.Entries,
		idGen:     cfg.IDGenerator,
		retrier:   cfg.Retrier,
		idem:      cfg.Idempotency,
		notifier:  cfg.Notifier,
		cache:     cfg.Cache,
		policy:    cfg.Policy,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// MutationResult is the outcome of a single-account mutation.
type MutationResult struct {
	AccountID  string          `json:"account_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
	EntryID    string          `json:"entry_id"`
}

// CreditInput is the input for Credit.
type CreditInput struct {
	AccountID      string
	Amount         decimal.Decimal
	Kind           domain.EntryKind
	Actor          string
	Reason         string
	Metadata       map[string]any
	IdempotencyKey string
}

// Credit atomically increases an account balance and appends one entry.
// If the account does not exist and policy allows, it is created with
// the configured signup bonus first.
func (uc *WalletUseCase) Credit(ctx context.Context, input CreditInput) (*MutationResult, error) {
	start := time.Now()

	if input.Kind == "" {
		input.Kind = domain.EntryKindDeposit
	}
	if !input.Kind.IsCredit() {
		return nil, domain.ErrInvalidKind
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	result, replayed, err := runIdempotent(ctx, uc.idem, input.IdempotencyKey, uc.policy.IdempotencyTTL,
		func() (*MutationResult, error) {
			return uc.mutateOne(ctx, input.AccountID, entryParams{
				Kind:     input.Kind,
				Amount:   input.Amount,
				Actor:    input.Actor,
				Reason:   input.Reason,
				Metadata: input.Metadata,
			}, true)
		})
	if err != nil {
		uc.observe("credit", start, err)
		return nil, err
	}
	uc.observe("credit", start, nil)
	if !replayed {
		uc.recordEntries(input.Kind)
		uc.afterCommit(ctx, result.AccountID, result.EntryID, string(input.Kind), input.Amount)
	}

	return result, nil
}

// DebitInput is the input for Debit.
type DebitInput struct {
	AccountID      string
	Amount         decimal.Decimal
	Kind           domain.EntryKind
	Actor          string
	Reason         string
	Metadata       map[string]any
	IdempotencyKey string
}

// Debit atomically decreases an account balance and appends one entry.
// The sufficient-funds check and the write happen inside the same store
// transaction as the balance read.
func (uc *WalletUseCase) Debit(ctx context.Context, input DebitInput) (*MutationResult, error) {
	start := time.Now()

	if input.Kind == "" {
		input.Kind = domain.EntryKindWithdrawal
	}
	if !input.Kind.IsDebit() {
		return nil, domain.ErrInvalidKind
	}
	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	result, replayed, err := runIdempotent(ctx, uc.idem, input.IdempotencyKey, uc.policy.IdempotencyTTL,
		func() (*MutationResult, error) {
			return uc.mutateOne(ctx, input.AccountID, entryParams{
				Kind:     input.Kind,
				Amount:   input.Amount,
				Actor:    input.Actor,
				Reason:   input.Reason,
				Metadata: input.Metadata,
			}, false)
		})
	if err != nil {
		uc.observe("debit", start, err)
		return nil, err
	}
	uc.observe("debit", start, nil)
	if !replayed {
		uc.recordEntries(input.Kind)
		uc.afterCommit(ctx, result.AccountID, result.EntryID, string(input.Kind), input.Amount)
	}

	return result, nil
}

// TransferInput is the input for Transfer.
type TransferInput struct {
	FromAccountID  string
	ToAccountID    string
	Amount         decimal.Decimal
	Actor          string
	Note           string
	IdempotencyKey string
}

// TransferResult is the outcome of a peer transfer.
type TransferResult struct {
	CorrelationID string          `json:"correlation_id"`
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	FromBalance   decimal.Decimal `json:"from_balance"`
	ToBalance     decimal.Decimal `json:"to_balance"`
	FromEntryID   string          `json:"from_entry_id"`
	ToEntryID     string          `json:"to_entry_id"`
}

// Transfer atomically moves amount between two accounts, writing two
// linked entries sharing a correlation id. Partial application is
// structurally impossible: both writes belong to one transaction.
func (uc *WalletUseCase) Transfer(ctx context.Context, input TransferInput) (*TransferResult, error) {
	start := time.Now()

	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSelfTransfer
	}
	if err := domain.ValidateAmount(input.Amount, uc.policy.TransferBounds); err != nil {
		return nil, err
	}

	result, replayed, err := runIdempotent(ctx, uc.idem, input.IdempotencyKey, uc.policy.IdempotencyTTL,
		func() (*TransferResult, error) {
			var res *TransferResult
			err := uc.retrier.Retry(ctx, func() error {
				r, err := uc.transferOnce(ctx, input)
				if err != nil {
					return err
				}
				res = r
				return nil
			})
			return res, err
		})
	if err != nil {
		uc.observe("transfer", start, err)
		return nil, err
	}
	uc.observe("transfer", start, nil)
	if !replayed {
		uc.recordEntries(domain.EntryKindTransferOut, domain.EntryKindTransferIn)
		if uc.metrics != nil {
			uc.metrics.TransfersApplied.Inc()
		}
		uc.afterTransferCommit(ctx, result, input.Amount)
	}

	return result, nil
}

func (uc *WalletUseCase) transferOnce(ctx context.Context, input TransferInput) (*TransferResult, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Read phase: lock both accounts in sorted order.
	ids := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(ids)

	accounts, err := uc.accounts.GetByIDsForUpdate(ctx, tx, ids)
	if err != nil {
		return nil, err
	}
	if len(accounts) != 2 {
		return nil, domain.ErrAccountNotFound
	}

	byID := map[string]*domain.Account{accounts[0].ID: accounts[0], accounts[1].ID: accounts[1]}
	from := byID[input.FromAccountID]
	to := byID[input.ToAccountID]
	if from == nil || to == nil {
		return nil, domain.ErrAccountNotFound
	}

	// Write phase.
	now := time.Now().UTC()
	correlationID := uc.idGen.Generate()

	fromEntry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, from, entryParams{
		Kind:          domain.EntryKindTransferOut,
		Amount:        input.Amount,
		CorrelationID: correlationID,
		Counterparty:  &to.ID,
		Actor:         input.Actor,
		Reason:        input.Note,
	}, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	toEntry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, to, entryParams{
		Kind:          domain.EntryKindTransferIn,
		Amount:        input.Amount,
		CorrelationID: correlationID,
		Counterparty:  &from.ID,
		Actor:         input.Actor,
		Reason:        input.Note,
	}, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	from.Version++
	from.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, from); err != nil {
		return nil, err
	}

	to.Version++
	to.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, to); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &TransferResult{
		CorrelationID: correlationID,
		FromAccountID: from.ID,
		ToAccountID:   to.ID,
		FromBalance:   from.Balance,
		ToBalance:     to.Balance,
		FromEntryID:   fromEntry.ID,
		ToEntryID:     toEntry.ID,
	}, nil
}

// AdjustDirection selects how an admin adjustment is applied.
type AdjustDirection string

const (
	AdjustDirectionAdd      AdjustDirection = "add"
	AdjustDirectionSubtract AdjustDirection = "subtract"
	AdjustDirectionSet      AdjustDirection = "set"
)

// AdjustInput is the input for Adjust. Actor must already carry a
// verified elevated role; the ledger records it, never evaluates it.
type AdjustInput struct {
	AccountID      string
	Amount         decimal.Decimal
	Direction      AdjustDirection
	Reason         string
	Actor          string
	IdempotencyKey string
}

// AdjustResult is the outcome of an admin adjustment.
type AdjustResult struct {
	AccountID       string          `json:"account_id"`
	PreviousBalance decimal.Decimal `json:"previous_balance"`
	NewBalance      decimal.Decimal `json:"new_balance"`
	EntryID         string          `json:"entry_id,omitempty"`
}

// Adjust applies an administrative balance correction. Direction "set"
// records the implied signed delta so the audit trail stays additive.
func (uc *WalletUseCase) Adjust(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	start := time.Now()

	switch input.Direction {
	case AdjustDirectionAdd, AdjustDirectionSubtract:
		if input.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, domain.ErrInvalidAmount
		}
	case AdjustDirectionSet:
		if input.Amount.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
	default:
		return nil, domain.ErrInvalidDirection
	}

	result, replayed, err := runIdempotent(ctx, uc.idem, input.IdempotencyKey, uc.policy.IdempotencyTTL,
		func() (*AdjustResult, error) {
			var res *AdjustResult
			err := uc.retrier.Retry(ctx, func() error {
				r, err := uc.adjustOnce(ctx, input)
				if err != nil {
					return err
				}
				res = r
				return nil
			})
			return res, err
		})
	if err != nil {
		uc.observe("adjust", start, err)
		return nil, err
	}
	uc.observe("adjust", start, nil)
	if !replayed && result.EntryID != "" {
		delta := result.NewBalance.Sub(result.PreviousBalance)
		if delta.IsNegative() {
			uc.recordEntries(domain.EntryKindAdminDebit)
		} else {
			uc.recordEntries(domain.EntryKindAdminCredit)
		}
		uc.afterCommit(ctx, result.AccountID, result.EntryID, "adjust", delta.Abs())
	}

	return result, nil
}

func (uc *WalletUseCase) adjustOnce(ctx context.Context, input AdjustInput) (*AdjustResult, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Read phase.
	acc, err := uc.accounts.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	previous := acc.Balance

	kind := domain.EntryKindAdminCredit
	magnitude := input.Amount

	switch input.Direction {
	case AdjustDirectionSubtract:
		kind = domain.EntryKindAdminDebit
	case AdjustDirectionSet:
		delta := input.Amount.Sub(acc.Balance)
		if delta.IsZero() {
			// Nothing to record; the balance already matches.
			return &AdjustResult{AccountID: acc.ID, PreviousBalance: previous, NewBalance: previous}, nil
		}
		magnitude = delta.Abs()
		if delta.IsNegative() {
			kind = domain.EntryKindAdminDebit
		}
	}

	if uc.policy.MaxAdjustment.IsPositive() && magnitude.GreaterThan(uc.policy.MaxAdjustment) {
		return nil, domain.ErrAdjustmentTooLarge
	}

	// Write phase.
	now := time.Now().UTC()

	entry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
		Kind:   kind,
		Amount: magnitude,
		Actor:  input.Actor,
		Reason: input.Reason,
	}, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	acc.Version++
	acc.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, acc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return &AdjustResult{
		AccountID:       acc.ID,
		PreviousBalance: previous,
		NewBalance:      acc.Balance,
		EntryID:         entry.ID,
	}, nil
}

// WagerInput is the input for SettleWager.
type WagerInput struct {
	AccountID      string
	Stake          decimal.Decimal
	Payout         decimal.Decimal
	Actor          string
	GameRef        string
	Metadata       map[string]any
	IdempotencyKey string
}

// WagerResult is the outcome of a settled wager.
type WagerResult struct {
	AccountID  string          `json:"account_id"`
	NewBalance decimal.Decimal `json:"new_balance"`
	BetEntryID string          `json:"bet_entry_id"`
	WinEntryID string          `json:"win_entry_id,omitempty"`
}

// SettleWager debits the stake and, for a winning outcome, credits the
// payout in the same transaction. Both entries share a correlation id,
// leaving a complete audit trail of the wager and the payout.
func (uc *WalletUseCase) SettleWager(ctx context.Context, input WagerInput) (*WagerResult, error) {
	start := time.Now()

	if input.Stake.LessThanOrEqual(decimal.Zero) {
		return nil, domain.ErrInvalidAmount
	}
	if input.Payout.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}
	if err := domain.ValidateMetadata(input.Metadata); err != nil {
		return nil, err
	}

	result, replayed, err := runIdempotent(ctx, uc.idem, input.IdempotencyKey, uc.policy.IdempotencyTTL,
		func() (*WagerResult, error) {
			var res *WagerResult
			err := uc.retrier.Retry(ctx, func() error {
				r, err := uc.settleWagerOnce(ctx, input)
				if err != nil {
					return err
				}
				res = r
				return nil
			})
			return res, err
		})
	if err != nil {
		uc.observe("wager", start, err)
		return nil, err
	}
	uc.observe("wager", start, nil)
	if !replayed {
		outcome := "loss"
		if result.WinEntryID != "" {
			outcome = "win"
			uc.recordEntries(domain.EntryKindBet, domain.EntryKindWin)
		} else {
			uc.recordEntries(domain.EntryKindBet)
		}
		if uc.metrics != nil {
			uc.metrics.WagersSettled.WithLabelValues(outcome).Inc()
		}
		uc.afterCommit(ctx, result.AccountID, result.BetEntryID, string(domain.EntryKindBet), input.Stake)
	}

	return result, nil
}

func (uc *WalletUseCase) settleWagerOnce(ctx context.Context, input WagerInput) (*WagerResult, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Read phase.
	acc, err := uc.accounts.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	// Write phase.
	now := time.Now().UTC()
	correlationID := uc.idGen.Generate()

	betEntry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
		Kind:          domain.EntryKindBet,
		Amount:        input.Stake,
		CorrelationID: correlationID,
		Actor:         input.Actor,
		Reason:        input.GameRef,
		Metadata:      input.Metadata,
	}, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	result := &WagerResult{AccountID: acc.ID, BetEntryID: betEntry.ID}

	if input.Payout.IsPositive() {
		winEntry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
			Kind:          domain.EntryKindWin,
			Amount:        input.Payout,
			CorrelationID: correlationID,
			Actor:         input.Actor,
			Reason:        input.GameRef,
			Metadata:      input.Metadata,
		}, uc.policy.MaxBalance, now)
		if err != nil {
			return nil, err
		}
		result.WinEntryID = winEntry.ID
	}

	acc.Version++
	acc.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, acc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	result.NewBalance = acc.Balance

	return result, nil
}

// mutateOne runs a single-account credit or debit with bounded retry.
// allowCreate enables auto-creation for credit operations.
func (uc *WalletUseCase) mutateOne(ctx context.Context, accountID string, p entryParams, allowCreate bool) (*MutationResult, error) {
	var result *MutationResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.mutateOneOnce(ctx, accountID, p, allowCreate)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (uc *WalletUseCase) mutateOneOnce(ctx context.Context, accountID string, p entryParams, allowCreate bool) (*MutationResult, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Read phase.
	acc, err := uc.accounts.GetByIDForUpdate(ctx, tx, accountID)
	created := false
	if err != nil {
		if !errors.Is(err, domain.ErrAccountNotFound) || !allowCreate || !uc.policy.AutoCreate {
			return nil, err
		}
		acc, err = uc.createAccount(ctx, tx, accountID)
		if err != nil {
			return nil, err
		}
		created = true
	}

	// Write phase.
	now := time.Now().UTC()

	if created && uc.policy.SignupBonus.IsPositive() {
		if _, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
			Kind:   domain.EntryKindBonus,
			Amount: uc.policy.SignupBonus,
			Reason: "signup bonus",
		}, uc.policy.MaxBalance, now); err != nil {
			return nil, err
		}
	}

	entry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, p, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	acc.Version++
	acc.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, acc); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	if created && uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
		if uc.policy.SignupBonus.IsPositive() {
			uc.metrics.EntriesWritten.WithLabelValues(string(domain.EntryKindBonus)).Inc()
		}
	}

	return &MutationResult{
		AccountID:  acc.ID,
		NewBalance: acc.Balance,
		EntryID:    entry.ID,
	}, nil
}

func (uc *WalletUseCase) createAccount(ctx context.Context, tx Transaction, accountID string) (*domain.Account, error) {
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

	return acc, nil
}

// observe records the outcome of one mutating operation: a duration
// sample on success, an error counter otherwise.
func (uc *WalletUseCase) observe(op string, start time.Time, err error) {
	if uc.metrics == nil {
		return
	}
	if err != nil {
		uc.metrics.MutationErrors.WithLabelValues(errorLabel(err)).Inc()
		return
	}
	uc.metrics.MutationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// recordEntries counts committed audit entries by kind. Callers must
// skip replayed results, which wrote nothing.
func (uc *WalletUseCase) recordEntries(kinds ...domain.EntryKind) {
	if uc.metrics == nil {
		return
	}
	for _, k := range kinds {
		uc.metrics.EntriesWritten.WithLabelValues(string(k)).Inc()
	}
}

func errorLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		return "insufficient_funds"
	case errors.Is(err, domain.ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, domain.ErrAccountNotActive):
		return "account_not_active"
	case errors.Is(err, domain.ErrConcurrencyConflict):
		return "conflict"
	case errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrAmountOutOfBounds),
		errors.Is(err, domain.ErrAmountOverflow),
		errors.Is(err, domain.ErrAdjustmentTooLarge):
		return "invalid_amount"
	default:
		return "internal"
	}
}

// afterCommit runs the non-transactional side effects. Failures are
// logged and swallowed; they never affect the committed mutation.
func (uc *WalletUseCase) afterCommit(ctx context.Context, accountID, entryID, kind string, amount decimal.Decimal) {
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, accountID); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("balance cache invalidation failed")
		}
	}

	if uc.notifier != nil {
		n := domain.Notification{
			Type:      domain.EventTypeBalanceChanged,
			AccountID: accountID,
			Payload: domain.BalanceChangedPayload{
				EntryID: entryID,
				Kind:    kind,
				Amount:  amount.String(),
			},
		}
		if err := uc.notifier.Publish(ctx, n); err != nil {
			uc.logger.Warn().Err(err).Str("account_id", accountID).Msg("notification publish failed")
		}
	}
}

// afterTransferCommit invalidates both cached balances and publishes a
// single transfer event carrying the shared correlation id.
func (uc *WalletUseCase) afterTransferCommit(ctx context.Context, result *TransferResult, amount decimal.Decimal) {
	if uc.cache != nil {
		for _, id := range []string{result.FromAccountID, result.ToAccountID} {
			if err := uc.cache.Invalidate(ctx, id); err != nil {
				uc.logger.Warn().Err(err).Str("account_id", id).Msg("balance cache invalidation failed")
			}
		}
	}

	if uc.notifier != nil {
		n := domain.Notification{
			Type:      domain.EventTypeTransferApplied,
			AccountID: result.FromAccountID,
			Payload: domain.TransferAppliedPayload{
				CorrelationID: result.CorrelationID,
				FromAccountID: result.FromAccountID,
				ToAccountID:   result.ToAccountID,
				Amount:        amount.String(),
			},
		}
		if err := uc.notifier.Publish(ctx, n); err != nil {
			uc.logger.Warn().Err(err).Str("correlation_id", result.CorrelationID).Msg("notification publish failed")
		}
	}
}
