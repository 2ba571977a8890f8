package dto

import (
	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// OpenAccountRequest represents a request to open an account.
type OpenAccountRequest struct {
	AccountID string `json:"account_id"`
}

// DepositRequest represents a direct credit to an account.
type DepositRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *DepositRequest) ToUseCaseInput(accountID, actor, idempotencyKey string) usecase.CreditInput {
	return usecase.CreditInput{
		AccountID:      accountID,
		Amount:         r.Amount,
		Kind:           domain.EntryKindDeposit,
		Actor:          actor,
		Reason:         r.Reason,
		Metadata:       r.Metadata,
		IdempotencyKey: idempotencyKey,
	}
}

// WithdrawRequest represents a direct debit from an account.
type WithdrawRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Reason   string          `json:"reason,omitempty"`
	Metadata map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WithdrawRequest) ToUseCaseInput(accountID, actor, idempotencyKey string) usecase.DebitInput {
	return usecase.DebitInput{
		AccountID:      accountID,
		Amount:         r.Amount,
		Kind:           domain.EntryKindWithdrawal,
		Actor:          actor,
		Reason:         r.Reason,
		Metadata:       r.Metadata,
		IdempotencyKey: idempotencyKey,
	}
}

// TransferRequest represents a peer transfer.
type TransferRequest struct {
	FromAccountID string          `json:"from_account_id"`
	ToAccountID   string          `json:"to_account_id"`
	Amount        decimal.Decimal `json:"amount"`
	Note          string          `json:"note,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *TransferRequest) ToUseCaseInput(actor, idempotencyKey string) usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID:  r.FromAccountID,
		ToAccountID:    r.ToAccountID,
		Amount:         r.Amount,
		Actor:          actor,
		Note:           r.Note,
		IdempotencyKey: idempotencyKey,
	}
}

// AdjustRequest represents an administrative balance correction.
type AdjustRequest struct {
	Amount    decimal.Decimal `json:"amount"`
	Direction string          `json:"direction"`
	Reason    string          `json:"reason"`
}

// ToUseCaseInput converts to use case input.
func (r *AdjustRequest) ToUseCaseInput(accountID, actor, idempotencyKey string) usecase.AdjustInput {
	return usecase.AdjustInput{
		AccountID:      accountID,
		Amount:         r.Amount,
		Direction:      usecase.AdjustDirection(r.Direction),
		Reason:         r.Reason,
		Actor:          actor,
		IdempotencyKey: idempotencyKey,
	}
}

// WagerRequest represents a wager settlement.
type WagerRequest struct {
	AccountID string          `json:"account_id"`
	Stake     decimal.Decimal `json:"stake"`
	Payout    decimal.Decimal `json:"payout"`
	GameRef   string          `json:"game_ref,omitempty"`
	Metadata  map[string]any  `json:"metadata,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *WagerRequest) ToUseCaseInput(actor, idempotencyKey string) usecase.WagerInput {
	return usecase.WagerInput{
		AccountID:      r.AccountID,
		Stake:          r.Stake,
		Payout:         r.Payout,
		Actor:          actor,
		GameRef:        r.GameRef,
		Metadata:       r.Metadata,
		IdempotencyKey: idempotencyKey,
	}
}

// CreateSettlementRequest represents a new deposit/withdrawal request.
type CreateSettlementRequest struct {
	AccountID string          `json:"account_id"`
	Direction string          `json:"direction"`
	Amount    decimal.Decimal `json:"amount"`
	Method    string          `json:"method"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateSettlementRequest) ToUseCaseInput() usecase.CreateRequestInput {
	return usecase.CreateRequestInput{
		AccountID: r.AccountID,
		Direction: domain.RequestDirection(r.Direction),
		Amount:    r.Amount,
		Method:    r.Method,
	}
}

// ResolveSettlementRequest represents an admin decision on a request.
type ResolveSettlementRequest struct {
	Decision string `json:"decision"`
}

// ToUseCaseInput converts to use case input.
func (r *ResolveSettlementRequest) ToUseCaseInput(requestID, actor string) usecase.ResolveRequestInput {
	return usecase.ResolveRequestInput{
		RequestID: requestID,
		Decision:  domain.RequestDecision(r.Decision),
		Actor:     actor,
	}
}

// SetStatusRequest represents an account lifecycle change.
type SetStatusRequest struct {
	Status string `json:"status"`
}
