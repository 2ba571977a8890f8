package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spinhall/ledgercore/internal/adapter/http/dto"
	"github.com/spinhall/ledgercore/internal/adapter/http/middleware"
	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// WalletService defines the behavior needed by WalletHandler.
type WalletService interface {
	Credit(ctx context.Context, input usecase.CreditInput) (*usecase.MutationResult, error)
	Debit(ctx context.Context, input usecase.DebitInput) (*usecase.MutationResult, error)
	Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	Adjust(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error)
	SettleWager(ctx context.Context, input usecase.WagerInput) (*usecase.WagerResult, error)
}

// WalletHandler handles balance mutation HTTP requests.
type WalletHandler struct {
	walletUC WalletService
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletUC WalletService) *WalletHandler {
	return &WalletHandler{walletUC: walletUC}
}

// Deposit credits an account directly.
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := requestActor(r)
	key := r.Header.Get(middleware.IdempotencyKeyHeader)

	result, err := h.walletUC.Credit(r.Context(), req.ToUseCaseInput(id, actor.ID, key))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Withdraw debits an account directly.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.WithdrawRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := requestActor(r)
	key := r.Header.Get(middleware.IdempotencyKeyHeader)

	result, err := h.walletUC.Debit(r.Context(), req.ToUseCaseInput(id, actor.ID, key))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Transfer moves funds between two accounts.
func (h *WalletHandler) Transfer(w http.ResponseWriter, r *http.Request) {
	var req dto.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.FromAccountID == "" || req.ToAccountID == "" {
		writeError(w, http.StatusBadRequest, "missing account IDs", "")
		return
	}

	actor := requestActor(r)
	key := r.Header.Get(middleware.IdempotencyKeyHeader)

	result, err := h.walletUC.Transfer(r.Context(), req.ToUseCaseInput(actor.ID, key))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Adjust applies an administrative balance correction.
func (h *WalletHandler) Adjust(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.AdjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Reason == "" {
		writeError(w, http.StatusBadRequest, "missing reason", "adjustments require an audit reason")
		return
	}

	actor := requestActor(r)
	if !actor.Role.CanAdjust() {
		writeDomainError(w, domain.ErrInsufficientRole)
		return
	}
	key := r.Header.Get(middleware.IdempotencyKeyHeader)

	result, err := h.walletUC.Adjust(r.Context(), req.ToUseCaseInput(id, actor.ID, key))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Wager settles a wager: the stake is debited and, for a winning
// outcome, the payout credited in the same transaction.
func (h *WalletHandler) Wager(w http.ResponseWriter, r *http.Request) {
	var req dto.WagerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "missing account_id", "")
		return
	}

	actor := requestActor(r)
	key := r.Header.Get(middleware.IdempotencyKeyHeader)

	result, err := h.walletUC.SettleWager(r.Context(), req.ToUseCaseInput(actor.ID, key))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
