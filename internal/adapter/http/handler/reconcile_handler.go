package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/spinhall/ledgercore/internal/adapter/http/dto"
	"github.com/spinhall/ledgercore/internal/usecase"
)

// ReconciliationService defines the behavior needed by ReconcileHandler.
type ReconciliationService interface {
	Reconcile(ctx context.Context, accountID string) (*usecase.ReconciliationResult, error)
	ReconcileAll(ctx context.Context) (*usecase.ReconcileAllReport, error)
}

// ReconcileHandler exposes the entry-log consistency check.
type ReconcileHandler struct {
	reconcileUC ReconciliationService
}

// NewReconcileHandler creates a new ReconcileHandler.
func NewReconcileHandler(reconcileUC ReconciliationService) *ReconcileHandler {
	return &ReconcileHandler{reconcileUC: reconcileUC}
}

// Reconcile re-derives one account's balance from its entry log and
// reports any drift. The stored balance is never modified.
func (h *ReconcileHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	result, err := h.reconcileUC.Reconcile(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconciliationFromResult(result))
}

// ReconcileAll sweeps every account.
func (h *ReconcileHandler) ReconcileAll(w http.ResponseWriter, r *http.Request) {
	report, err := h.reconcileUC.ReconcileAll(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "reconciliation sweep failed", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReconcileAllFromReport(report))
}
