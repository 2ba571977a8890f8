package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "8080" {
		t.Errorf("HTTPPort = %s, want 8080", cfg.HTTPPort)
	}
	if cfg.IdempotencyTTL != 24*time.Hour {
		t.Errorf("IdempotencyTTL = %s, want 24h", cfg.IdempotencyTTL)
	}
	if len(cfg.SettlementMethods) != 3 {
		t.Errorf("SettlementMethods = %v, want 3 methods", cfg.SettlementMethods)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SIGNUP_BONUS", "250.50")
	t.Setenv("SETTLEMENT_METHODS", "card,voucher")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.HTTPPort != "9090" {
		t.Errorf("HTTPPort = %s, want 9090", cfg.HTTPPort)
	}
	if cfg.SignupBonus != "250.50" {
		t.Errorf("SignupBonus = %s, want 250.50", cfg.SignupBonus)
	}
	if len(cfg.SettlementMethods) != 2 || cfg.SettlementMethods[1] != "voucher" {
		t.Errorf("SettlementMethods = %v", cfg.SettlementMethods)
	}
}

func TestPolicyFromConfig(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	policy, err := cfg.Policy()
	if err != nil {
		t.Fatalf("policy failed: %v", err)
	}

	if !policy.SignupBonus.Equal(decimal.NewFromInt(100)) {
		t.Errorf("SignupBonus = %s, want 100", policy.SignupBonus)
	}
	if !policy.TransferBounds.Min.Equal(decimal.RequireFromString("0.01")) {
		t.Errorf("TransferBounds.Min = %s, want 0.01", policy.TransferBounds.Min)
	}
	if !policy.AutoCreate {
		t.Error("expected AutoCreate default true")
	}
}

func TestPolicyInvalidDecimal(t *testing.T) {
	t.Setenv("MAX_BALANCE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if _, err := cfg.Policy(); err == nil {
		t.Fatal("expected error for invalid decimal")
	}
}
