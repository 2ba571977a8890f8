package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/spinhall/ledgercore/internal/adapter/http/dto"
	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

type entryServiceStub struct {
	listFn        func(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error)
	correlationFn func(ctx context.Context, correlationID string) ([]*domain.Entry, error)
	getFn         func(ctx context.Context, id string) (*domain.Entry, error)
}

func (s *entryServiceStub) ListByAccount(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
	return s.listFn(ctx, accountID, filter)
}

func (s *entryServiceStub) GetByCorrelation(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
	return s.correlationFn(ctx, correlationID)
}

func (s *entryServiceStub) Get(ctx context.Context, id string) (*domain.Entry, error) {
	return s.getFn(ctx, id)
}

func TestEntryHandler_ListByAccount(t *testing.T) {
	var captured usecase.EntryFilter
	handler := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
			if accountID != "acc-1" {
				t.Fatalf("expected acc-1, got %s", accountID)
			}
			captured = filter
			return []*domain.Entry{{ID: "e-2"}, {ID: "e-1"}}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/accounts/acc-1/entries?kind=deposit,bet&from=2026-03-01T12:00:00Z&limit=10", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(captured.Kinds) != 2 || captured.Kinds[0] != domain.EntryKindDeposit || captured.Kinds[1] != domain.EntryKindBet {
		t.Fatalf("unexpected kind filter: %+v", captured.Kinds)
	}
	if captured.From == nil || !captured.From.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected from filter: %+v", captured.From)
	}
	if captured.Limit != 10 {
		t.Fatalf("expected limit 10, got %d", captured.Limit)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected 2 entries, got %d", resp.Count)
	}
}

func TestEntryHandler_ListByAccount_BadTimeFilter(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
			t.Fatal("ListByAccount should not be called for an unparseable time filter")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/entries?from=yesterday", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_ListByAccount_UnknownKind(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		listFn: func(ctx context.Context, accountID string, filter usecase.EntryFilter) ([]*domain.Entry, error) {
			return nil, domain.ErrInvalidKind
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/acc-1/entries?kind=jackpot", nil)
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.ListByAccount(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestEntryHandler_GetByCorrelation(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		correlationFn: func(ctx context.Context, correlationID string) ([]*domain.Entry, error) {
			if correlationID != "corr-1" {
				t.Fatalf("expected corr-1, got %s", correlationID)
			}
			return []*domain.Entry{
				{ID: "e-1", Kind: domain.EntryKindTransferOut},
				{ID: "e-2", Kind: domain.EntryKindTransferIn},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/correlations/corr-1/entries", nil)
	req = setChiURLParam(req, "id", "corr-1")
	rec := httptest.NewRecorder()

	handler.GetByCorrelation(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Count != 2 {
		t.Fatalf("expected the linked pair, got %d entries", resp.Count)
	}
}

func TestEntryHandler_Get_NotFound(t *testing.T) {
	handler := NewEntryHandler(&entryServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Entry, error) {
			return nil, domain.ErrEntryNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/entries/ghost", nil)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
