package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// ErrorResponse is the envelope for all error replies.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// TotalsResponse mirrors the lifetime counters of an account.
type TotalsResponse struct {
	Deposited      decimal.Decimal `json:"deposited"`
	Withdrawn      decimal.Decimal `json:"withdrawn"`
	Won            decimal.Decimal `json:"won"`
	Lost           decimal.Decimal `json:"lost"`
	TransferredOut decimal.Decimal `json:"transferred_out"`
	TransferredIn  decimal.Decimal `json:"transferred_in"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string          `json:"id"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
	Totals    TotalsResponse  `json:"totals"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) AccountResponse {
	return AccountResponse{
		ID:      a.ID,
		Balance: a.Balance,
		Status:  string(a.Status),
		Totals: TotalsResponse{
			Deposited:      a.Totals.Deposited,
			Withdrawn:      a.Totals.Withdrawn,
			Won:            a.Totals.Won,
			Lost:           a.Totals.Lost,
			TransferredOut: a.Totals.TransferredOut,
			TransferredIn:  a.Totals.TransferredIn,
		},
		Version:   a.Version,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

// BalanceResponse carries a single account balance.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
	Count    int               `json:"count"`
}

// AccountsFromDomain converts a slice of domain accounts.
func AccountsFromDomain(accounts []*domain.Account) ListAccountsResponse {
	out := make([]AccountResponse, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, AccountFromDomain(a))
	}
	return ListAccountsResponse{Accounts: out, Count: len(out)}
}

// EntryResponse represents an audit entry in API responses.
type EntryResponse struct {
	ID                    string          `json:"id"`
	AccountID             string          `json:"account_id"`
	CounterpartyAccountID *string         `json:"counterparty_account_id,omitempty"`
	CorrelationID         string          `json:"correlation_id"`
	Kind                  string          `json:"kind"`
	Amount                decimal.Decimal `json:"amount"`
	BalanceBefore         decimal.Decimal `json:"balance_before"`
	BalanceAfter          decimal.Decimal `json:"balance_after"`
	Status                string          `json:"status"`
	Actor                 string          `json:"actor"`
	Reason                string          `json:"reason,omitempty"`
	Metadata              map[string]any  `json:"metadata,omitempty"`
	CreatedAt             time.Time       `json:"created_at"`
}

// EntryFromDomain converts a domain entry to a response.
func EntryFromDomain(e *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:                    e.ID,
		AccountID:             e.AccountID,
		CounterpartyAccountID: e.CounterpartyAccountID,
		CorrelationID:         e.CorrelationID,
		Kind:                  string(e.Kind),
		Amount:                e.Amount,
		BalanceBefore:         e.BalanceBefore,
		BalanceAfter:          e.BalanceAfter,
		Status:                string(e.Status),
		Actor:                 e.Actor,
		Reason:                e.Reason,
		Metadata:              e.Metadata,
		CreatedAt:             e.CreatedAt,
	}
}

// ListEntriesResponse wraps a page of entries.
type ListEntriesResponse struct {
	Entries []EntryResponse `json:"entries"`
	Count   int             `json:"count"`
}

// EntriesFromDomain converts a slice of domain entries.
func EntriesFromDomain(entries []*domain.Entry) ListEntriesResponse {
	out := make([]EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, EntryFromDomain(e))
	}
	return ListEntriesResponse{Entries: out, Count: len(out)}
}

// SettlementRequestResponse represents a settlement request.
type SettlementRequestResponse struct {
	ID         string          `json:"id"`
	AccountID  string          `json:"account_id"`
	Direction  string          `json:"direction"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method"`
	Status     string          `json:"status"`
	ResolvedBy string          `json:"resolved_by,omitempty"`
	ResolvedAt *time.Time      `json:"resolved_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// RequestFromDomain converts a domain settlement request to a response.
func RequestFromDomain(r *domain.SettlementRequest) SettlementRequestResponse {
	return SettlementRequestResponse{
		ID:         r.ID,
		AccountID:  r.AccountID,
		Direction:  string(r.Direction),
		Amount:     r.Amount,
		Method:     r.Method,
		Status:     string(r.Status),
		ResolvedBy: r.ResolvedBy,
		ResolvedAt: r.ResolvedAt,
		CreatedAt:  r.CreatedAt,
	}
}

// ListRequestsResponse wraps a page of settlement requests.
type ListRequestsResponse struct {
	Requests []SettlementRequestResponse `json:"requests"`
	Count    int                         `json:"count"`
}

// RequestsFromDomain converts a slice of domain settlement requests.
func RequestsFromDomain(requests []*domain.SettlementRequest) ListRequestsResponse {
	out := make([]SettlementRequestResponse, 0, len(requests))
	for _, r := range requests {
		out = append(out, RequestFromDomain(r))
	}
	return ListRequestsResponse{Requests: out, Count: len(out)}
}

// ResolveResponse is the outcome of a resolved settlement request.
type ResolveResponse struct {
	Request    SettlementRequestResponse `json:"request"`
	NewBalance *decimal.Decimal          `json:"new_balance,omitempty"`
	EntryID    string                    `json:"entry_id,omitempty"`
}

// ResolveFromResult converts a use case resolve result.
func ResolveFromResult(r *usecase.ResolveResult) ResolveResponse {
	return ResolveResponse{
		Request:    RequestFromDomain(r.Request),
		NewBalance: r.NewBalance,
		EntryID:    r.EntryID,
	}
}

// ReconciliationResponse reports the entry-log check for one account.
type ReconciliationResponse struct {
	AccountID       string          `json:"account_id"`
	StoredBalance   decimal.Decimal `json:"stored_balance"`
	ComputedBalance decimal.Decimal `json:"computed_balance"`
	Drift           decimal.Decimal `json:"drift"`
	Consistent      bool            `json:"consistent"`
	CheckedAt       time.Time       `json:"checked_at"`
}

// ReconciliationFromResult converts a use case reconciliation result.
func ReconciliationFromResult(r *usecase.ReconciliationResult) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:       r.AccountID,
		StoredBalance:   r.StoredBalance,
		ComputedBalance: r.ComputedBalance,
		Drift:           r.Drift,
		Consistent:      r.Consistent(),
		CheckedAt:       r.CheckedAt,
	}
}

// ReconcileAllResponse summarizes a full reconciliation sweep.
type ReconcileAllResponse struct {
	TotalAccounts int                      `json:"total_accounts"`
	Consistent    int                      `json:"consistent"`
	Discrepancies []ReconciliationResponse `json:"discrepancies"`
	CheckedAt     time.Time                `json:"checked_at"`
}

// ReconcileAllFromReport converts a use case sweep report.
func ReconcileAllFromReport(r *usecase.ReconcileAllReport) ReconcileAllResponse {
	out := make([]ReconciliationResponse, 0, len(r.Discrepancies))
	for _, d := range r.Discrepancies {
		out = append(out, ReconciliationFromResult(d))
	}
	return ReconcileAllResponse{
		TotalAccounts: r.TotalAccounts,
		Consistent:    r.Consistent,
		Discrepancies: out,
		CheckedAt:     r.CheckedAt,
	}
}
