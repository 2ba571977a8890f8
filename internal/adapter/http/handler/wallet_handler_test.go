package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/spinhall/ledgercore/internal/adapter/http/dto"
	"github.com/spinhall/ledgercore/internal/adapter/http/middleware"
	"github.com/spinhall/ledgercore/internal/domain"
	"github.com/spinhall/ledgercore/internal/usecase"
)

type walletServiceStub struct {
	creditFn   func(ctx context.Context, input usecase.CreditInput) (*usecase.MutationResult, error)
	debitFn    func(ctx context.Context, input usecase.DebitInput) (*usecase.MutationResult, error)
	transferFn func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error)
	adjustFn   func(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error)
	wagerFn    func(ctx context.Context, input usecase.WagerInput) (*usecase.WagerResult, error)
}

func (s *walletServiceStub) Credit(ctx context.Context, input usecase.CreditInput) (*usecase.MutationResult, error) {
	return s.creditFn(ctx, input)
}

func (s *walletServiceStub) Debit(ctx context.Context, input usecase.DebitInput) (*usecase.MutationResult, error) {
	return s.debitFn(ctx, input)
}

func (s *walletServiceStub) Transfer(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
	return s.transferFn(ctx, input)
}

func (s *walletServiceStub) Adjust(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error) {
	return s.adjustFn(ctx, input)
}

func (s *walletServiceStub) SettleWager(ctx context.Context, input usecase.WagerInput) (*usecase.WagerResult, error) {
	return s.wagerFn(ctx, input)
}

func withActor(r *http.Request, actor domain.Actor) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), middleware.ActorContextKey, actor))
}

func TestWalletHandler_Deposit_Success(t *testing.T) {
	var captured usecase.CreditInput
	handler := NewWalletHandler(&walletServiceStub{
		creditFn: func(ctx context.Context, input usecase.CreditInput) (*usecase.MutationResult, error) {
			captured = input
			return &usecase.MutationResult{
				AccountID:  input.AccountID,
				NewBalance: decimal.RequireFromString("150"),
				EntryID:    "e-1",
			}, nil
		},
	})

	body, _ := json.Marshal(dto.DepositRequest{Amount: decimal.RequireFromString("50")})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/deposit", bytes.NewReader(body))
	req.Header.Set(middleware.IdempotencyKeyHeader, "dep-key-1")
	req = setChiURLParam(req, "id", "acc-1")
	req = withActor(req, domain.Actor{ID: "player-1", Role: domain.RolePlayer})
	rec := httptest.NewRecorder()

	handler.Deposit(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountID != "acc-1" || captured.Actor != "player-1" {
		t.Fatalf("expected input to carry account and actor, got %+v", captured)
	}
	if captured.IdempotencyKey != "dep-key-1" {
		t.Fatalf("expected idempotency key from header, got %q", captured.IdempotencyKey)
	}
	if captured.Kind != domain.EntryKindDeposit {
		t.Fatalf("expected deposit kind, got %s", captured.Kind)
	}
}

func TestWalletHandler_Withdraw_InsufficientFunds(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		debitFn: func(ctx context.Context, input usecase.DebitInput) (*usecase.MutationResult, error) {
			return nil, domain.ErrInsufficientFunds
		},
	})

	body, _ := json.Marshal(dto.WithdrawRequest{Amount: decimal.RequireFromString("500")})
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/withdraw", bytes.NewReader(body))
	req = setChiURLParam(req, "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Withdraw(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestWalletHandler_Transfer_Success(t *testing.T) {
	var captured usecase.TransferInput
	handler := NewWalletHandler(&walletServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			captured = input
			return &usecase.TransferResult{
				CorrelationID: "corr-1",
				FromAccountID: input.FromAccountID,
				ToAccountID:   input.ToAccountID,
			}, nil
		},
	})

	body, _ := json.Marshal(dto.TransferRequest{
		FromAccountID: "acc-1",
		ToAccountID:   "acc-2",
		Amount:        decimal.RequireFromString("20"),
	})
	req := httptest.NewRequest(http.MethodPost, "/transfers", bytes.NewReader(body))
	req = withActor(req, domain.Actor{ID: "player-1", Role: domain.RolePlayer})
	rec := httptest.NewRecorder()

	handler.Transfer(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.FromAccountID != "acc-1" || captured.ToAccountID != "acc-2" {
		t.Fatalf("unexpected transfer input: %+v", captured)
	}

	var resp usecase.TransferResult
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CorrelationID != "corr-1" {
		t.Fatalf("expected correlation ID in response, got %+v", resp)
	}
}

func TestWalletHandler_Transfer_MissingAccounts(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		transferFn: func(ctx context.Context, input usecase.TransferInput) (*usecase.TransferResult, error) {
			t.Fatal("Transfer should not be called without both account IDs")
			return nil, nil
		},
	})

	body := bytes.NewBufferString(`{"from_account_id":"acc-1","amount":"10"}`)
	req := httptest.NewRequest(http.MethodPost, "/transfers", body)
	rec := httptest.NewRecorder()

	handler.Transfer(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Adjust_RequiresAdmin(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		adjustFn: func(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error) {
			t.Fatal("Adjust should not be called for a non-admin actor")
			return nil, nil
		},
	})

	body := bytes.NewBufferString(`{"amount":"10","direction":"add","reason":"correction"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/adjust", body)
	req = setChiURLParam(req, "id", "acc-1")
	req = withActor(req, domain.Actor{ID: "player-1", Role: domain.RolePlayer})
	rec := httptest.NewRecorder()

	handler.Adjust(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestWalletHandler_Adjust_Admin(t *testing.T) {
	var captured usecase.AdjustInput
	handler := NewWalletHandler(&walletServiceStub{
		adjustFn: func(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error) {
			captured = input
			return &usecase.AdjustResult{
				AccountID:       input.AccountID,
				PreviousBalance: decimal.RequireFromString("100"),
				NewBalance:      decimal.RequireFromString("110"),
				EntryID:         "e-1",
			}, nil
		},
	})

	body := bytes.NewBufferString(`{"amount":"10","direction":"add","reason":"promo correction"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/adjust", body)
	req = setChiURLParam(req, "id", "acc-1")
	req = withActor(req, domain.Actor{ID: "admin-1", Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()

	handler.Adjust(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Actor != "admin-1" || captured.Direction != usecase.AdjustDirectionAdd {
		t.Fatalf("unexpected adjust input: %+v", captured)
	}
	if captured.Reason != "promo correction" {
		t.Fatalf("expected reason to pass through, got %q", captured.Reason)
	}
}

func TestWalletHandler_Adjust_MissingReason(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		adjustFn: func(ctx context.Context, input usecase.AdjustInput) (*usecase.AdjustResult, error) {
			t.Fatal("Adjust should not be called without a reason")
			return nil, nil
		},
	})

	body := bytes.NewBufferString(`{"amount":"10","direction":"add"}`)
	req := httptest.NewRequest(http.MethodPost, "/accounts/acc-1/adjust", body)
	req = setChiURLParam(req, "id", "acc-1")
	req = withActor(req, domain.Actor{ID: "admin-1", Role: domain.RoleAdmin})
	rec := httptest.NewRecorder()

	handler.Adjust(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestWalletHandler_Wager_Success(t *testing.T) {
	var captured usecase.WagerInput
	handler := NewWalletHandler(&walletServiceStub{
		wagerFn: func(ctx context.Context, input usecase.WagerInput) (*usecase.WagerResult, error) {
			captured = input
			return &usecase.WagerResult{
				AccountID:  input.AccountID,
				NewBalance: decimal.RequireFromString("120"),
				BetEntryID: "e-1",
				WinEntryID: "e-2",
			}, nil
		},
	})

	body, _ := json.Marshal(dto.WagerRequest{
		AccountID: "acc-1",
		Stake:     decimal.RequireFromString("10"),
		Payout:    decimal.RequireFromString("30"),
		GameRef:   "roulette-7",
	})
	req := httptest.NewRequest(http.MethodPost, "/wagers", bytes.NewReader(body))
	req = withActor(req, domain.Actor{ID: "game-svc", Role: domain.RoleService})
	rec := httptest.NewRecorder()

	handler.Wager(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.AccountID != "acc-1" || captured.GameRef != "roulette-7" {
		t.Fatalf("unexpected wager input: %+v", captured)
	}
	if !captured.Stake.Equal(decimal.RequireFromString("10")) {
		t.Fatalf("expected stake 10, got %s", captured.Stake)
	}
}

func TestWalletHandler_Wager_Conflict(t *testing.T) {
	handler := NewWalletHandler(&walletServiceStub{
		wagerFn: func(ctx context.Context, input usecase.WagerInput) (*usecase.WagerResult, error) {
			return nil, domain.ErrConcurrencyConflict
		},
	})

	body, _ := json.Marshal(dto.WagerRequest{
		AccountID: "acc-1",
		Stake:     decimal.RequireFromString("10"),
	})
	req := httptest.NewRequest(http.MethodPost, "/wagers", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Wager(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
