package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spinhall/ledgercore/internal/adapter/http/dto"
	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// SettlementService defines the behavior needed by SettlementHandler.
type SettlementService interface {
	CreateRequest(ctx context.Context, input usecase.CreateRequestInput) (*domain.SettlementRequest, error)
	ResolveRequest(ctx context.Context, input usecase.ResolveRequestInput) (*usecase.ResolveResult, error)
	GetRequest(ctx context.Context, id string) (*domain.SettlementRequest, error)
	ListRequestsByAccount(ctx context.Context, accountID string, limit, offset int) ([]*domain.SettlementRequest, error)
	ListPendingRequests(ctx context.Context, limit, offset int) ([]*domain.SettlementRequest, error)
}

// SettlementHandler handles settlement request HTTP endpoints.
type SettlementHandler struct {
	settlementUC SettlementService
}

// NewSettlementHandler creates a new SettlementHandler.
func NewSettlementHandler(settlementUC SettlementService) *SettlementHandler {
	return &SettlementHandler{settlementUC: settlementUC}
}

// Create records a new pending settlement request.
func (h *SettlementHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.AccountID == "" {
		writeError(w, http.StatusBadRequest, "missing account_id", "")
		return
	}

	request, err := h.settlementUC.CreateRequest(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.RequestFromDomain(request))
}

// Resolve moves a pending request to a terminal state.
func (h *SettlementHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing request ID", "")
		return
	}

	var req dto.ResolveSettlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	actor := requestActor(r)
	if !actor.Role.CanResolveRequests() {
		writeDomainError(w, domain.ErrInsufficientRole)
		return
	}

	result, err := h.settlementUC.ResolveRequest(r.Context(), req.ToUseCaseInput(id, actor.ID))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ResolveFromResult(result))
}

// Get retrieves a settlement request by ID.
func (h *SettlementHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing request ID", "")
		return
	}

	request, err := h.settlementUC.GetRequest(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestFromDomain(request))
}

// ListByAccount lists the settlement requests of one account.
func (h *SettlementHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	requests, err := h.settlementUC.ListRequestsByAccount(r.Context(), id, limit, offset)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestsFromDomain(requests))
}

// ListPending lists pending requests across all accounts, oldest first.
func (h *SettlementHandler) ListPending(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	requests, err := h.settlementUC.ListPendingRequests(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list pending requests", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.RequestsFromDomain(requests))
}
