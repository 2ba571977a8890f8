package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/infrastructure/metrics"
)

// SettlementUseCase runs the deposit/withdrawal request lifecycle:
// pending -> approved | rejected, terminal states only.
type SettlementUseCase struct {
	txManager TransactionManager
	accounts  AccountRepository
	entries   EntryRepository
	requests  RequestRepository
	idGen     IDGenerator
	retrier   Retrier
	notifier  Notifier
	policy    Policy
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// SettlementConfig holds dependencies for the SettlementUseCase.
// Notifier and Metrics are optional.
type SettlementConfig struct {
	TxManager   TransactionManager
	Accounts    AccountRepository
	Entries     EntryRepository
	Requests    RequestRepository
	IDGenerator IDGenerator
	Retrier     Retrier
	Notifier    Notifier
	Policy      Policy
	Metrics     *metrics.Metrics
	Logger      zerolog.Logger
}

// NewSettlementUseCase creates a new SettlementUseCase.
func NewSettlementUseCase(cfg SettlementConfig) *SettlementUseCase {
	return &SettlementUseCase{
		txManager: cfg.TxManager,
		accounts:  cfg.Accounts,
		entries:   cfg.Entries,
		requests:  cfg.Requests,
		idGen:     cfg.IDGenerator,
		retrier:   cfg.Retrier,
		notifier:  cfg.Notifier,
		policy:    cfg.Policy,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
	}
}

// CreateRequestInput is the input for CreateRequest.
type CreateRequestInput struct {
	AccountID string
	Direction domain.RequestDirection
	Amount    decimal.Decimal
	Method    string
}

// CreateRequest records a pending settlement request. The balance is
// untouched until the request is resolved.
func (uc *SettlementUseCase) CreateRequest(ctx context.Context, input CreateRequestInput) (*domain.SettlementRequest, error) {
	if err := domain.ValidateAmount(input.Amount, uc.policy.RequestBounds); err != nil {
		return nil, err
	}
	if err := domain.ValidateMethod(input.Method, uc.policy.Methods); err != nil {
		return nil, err
	}

	request := &domain.SettlementRequest{
		ID:        uc.idGen.Generate(),
		AccountID: input.AccountID,
		Direction: input.Direction,
		Amount:    input.Amount,
		Method:    input.Method,
		Status:    domain.RequestStatusPending,
		CreatedAt: time.Now().UTC(),
	}

	if err := request.Validate(); err != nil {
		return nil, err
	}

	// Reject requests against unknown accounts up front; the account is
	// re-read under lock at resolution time regardless.
	if _, err := uc.accounts.GetByID(ctx, input.AccountID); err != nil {
		return nil, err
	}

	if err := uc.requests.Create(ctx, request); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RequestsCreated.WithLabelValues(string(request.Direction)).Inc()
	}
	uc.notify(ctx, domain.EventTypeRequestCreated, request)

	return request, nil
}

// ResolveRequestInput is the input for ResolveRequest.
type ResolveRequestInput struct {
	RequestID string
	Decision  domain.RequestDecision
	Actor     string
}

// ResolveResult is the outcome of a resolved request.
type ResolveResult struct {
	Request    *domain.SettlementRequest
	NewBalance *decimal.Decimal
	EntryID    string
}

// ResolveRequest moves a pending request to a terminal state. An
// approved deposit credits the account; an approved withdrawal debits
// it, re-checking sufficient funds at resolution time. Request update,
// entry and balance write share one transaction.
func (uc *SettlementUseCase) ResolveRequest(ctx context.Context, input ResolveRequestInput) (*ResolveResult, error) {
	if input.Decision != domain.RequestDecisionApprove && input.Decision != domain.RequestDecisionReject {
		return nil, domain.ErrInvalidDirection
	}

	var result *ResolveResult

	err := uc.retrier.Retry(ctx, func() error {
		res, err := uc.resolveOnce(ctx, input)
		if err != nil {
			return err
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.RequestsResolved.WithLabelValues(string(result.Request.Status)).Inc()
		if result.EntryID != "" {
			kind := domain.EntryKindDeposit
			if result.Request.Direction == domain.RequestDirectionWithdrawal {
				kind = domain.EntryKindWithdrawal
			}
			uc.metrics.EntriesWritten.WithLabelValues(string(kind)).Inc()
		}
	}
	uc.notify(ctx, domain.EventTypeRequestResolved, result.Request)

	return result, nil
}

func (uc *SettlementUseCase) resolveOnce(ctx context.Context, input ResolveRequestInput) (*ResolveResult, error) {
	ctx, cancel := txContext(ctx)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Read phase: lock the request, then the account.
	request, err := uc.requests.GetByIDForUpdate(ctx, tx, input.RequestID)
	if err != nil {
		return nil, err
	}
	if err := request.CanResolve(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result := &ResolveResult{Request: request}

	if input.Decision == domain.RequestDecisionReject {
		request.Status = domain.RequestStatusRejected
		request.ResolvedBy = input.Actor
		request.ResolvedAt = &now

		if err := uc.requests.UpdateStatus(ctx, tx, request.ID, request.Status, input.Actor, now); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		return result, nil
	}

	acc, err := uc.accounts.GetByIDForUpdate(ctx, tx, request.AccountID)
	if err != nil {
		return nil, err
	}

	// Write phase.
	entry, err := applyEntry(ctx, tx, uc.entries, uc.idGen, acc, entryParams{
		Kind:          request.EntryKind(),
		Amount:        request.Amount,
		CorrelationID: request.ID,
		Actor:         input.Actor,
		Reason:        "settlement " + request.Method,
	}, uc.policy.MaxBalance, now)
	if err != nil {
		return nil, err
	}

	acc.Version++
	acc.UpdatedAt = now
	if err := uc.accounts.Update(ctx, tx, acc); err != nil {
		return nil, err
	}

	request.Status = domain.RequestStatusApproved
	request.ResolvedBy = input.Actor
	request.ResolvedAt = &now

	if err := uc.requests.UpdateStatus(ctx, tx, request.ID, request.Status, input.Actor, now); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	balance := acc.Balance
	result.NewBalance = &balance
	result.EntryID = entry.ID

	return result, nil
}

// GetRequest retrieves a settlement request by ID.
func (uc *SettlementUseCase) GetRequest(ctx context.Context, id string) (*domain.SettlementRequest, error) {
	return uc.requests.GetByID(ctx, id)
}

// ListRequestsByAccount lists requests for an account.
func (uc *SettlementUseCase) ListRequestsByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.SettlementRequest, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.requests.ListByAccount(ctx, accountID, limit, offset)
}

// ListPendingRequests lists unresolved requests for the admin queue.
func (uc *SettlementUseCase) ListPendingRequests(ctx context.Context, limit, offset int) ([]*domain.SettlementRequest, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.requests.ListPending(ctx, limit, offset)
}

// notify publishes on the best-effort sink outside the transaction.
func (uc *SettlementUseCase) notify(ctx context.Context, eventType string, request *domain.SettlementRequest) {
	if uc.notifier == nil {
		return
	}

	n := domain.Notification{
		Type:      eventType,
		AccountID: request.AccountID,
		Payload: domain.RequestEventPayload{
			RequestID: request.ID,
			Direction: string(request.Direction),
			Amount:    request.Amount.String(),
			Status:    string(request.Status),
		},
	}
	if err := uc.notifier.Publish(ctx, n); err != nil {
		uc.logger.Warn().Err(err).Str("request_id", request.ID).Msg("notification publish failed")
	}
}
