package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RequestDirection distinguishes deposit from withdrawal requests.
type RequestDirection string

const (
	RequestDirectionDeposit    RequestDirection = "deposit"
	RequestDirectionWithdrawal RequestDirection = "withdrawal"
)

// RequestStatus is the settlement request state. Pending is the only
// non-terminal state; approved and rejected are terminal.
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusRejected RequestStatus = "rejected"
)

// RequestDecision is the resolution applied to a pending request.
type RequestDecision string

const (
	RequestDecisionApprove RequestDecision = "approve"
	RequestDecisionReject  RequestDecision = "reject"
)

// SettlementRequest is a pending deposit or withdrawal awaiting an
// administrative decision. Creating one never touches the balance.
type SettlementRequest struct {
	ID         string
	AccountID  string
	Direction  RequestDirection
	Amount     decimal.Decimal
	Method     string
	Status     RequestStatus
	ResolvedBy string
	ResolvedAt *time.Time
	CreatedAt  time.Time
}

// Validate validates a new settlement request.
func (r *SettlementRequest) Validate() error {
	if r.Direction != RequestDirectionDeposit && r.Direction != RequestDirectionWithdrawal {
		return ErrInvalidDirection
	}
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// CanResolve reports whether the request is still pending.
func (r *SettlementRequest) CanResolve() error {
	if r.Status != RequestStatusPending {
		return ErrAlreadyProcessed
	}
	return nil
}

// EntryKind maps an approved request to the entry kind it produces.
func (r *SettlementRequest) EntryKind() EntryKind {
	if r.Direction == RequestDirectionDeposit {
		return EntryKindDeposit
	}
	return EntryKindWithdrawal
}
