package authcore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestVerifyTokenCollapsesAllFailures(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())
	registered := registerTestUser(t, engine, "alice@example.com", "secret1")

	result, err := engine.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	parts := strings.Split(result.Token, ".")
	tampered := parts[0] + "." + parts[1] + ".AAAAtampered"

	otherCfg := testConfig()
	otherCfg.Token.Secret = []byte("different-secret")
	otherEngine := newTestEngine(t, otherCfg, newMockStore())
	foreign, err := otherEngine.tokens.Issue(registered.ID, "alice@example.com", "user")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered signature", tampered},
		{"foreign key", foreign},
	}

	for _, tc := range cases {
		if _, err := engine.VerifyToken(context.Background(), tc.token); !errors.Is(err, ErrUnauthorized) {
			t.Fatalf("%s: expected ErrUnauthorized, got %v", tc.name, err)
		}
	}

	if got := engine.MetricsSnapshot().Counters[MetricTokenRejected]; got != uint64(len(cases)) {
		t.Fatalf("expected %d rejections recorded, got %d", len(cases), got)
	}
}

func TestVerifyTokenExpiry(t *testing.T) {
	cfg := testConfig()
	cfg.Token.TTL = time.Millisecond
	engine := newTestEngine(t, cfg, newMockStore())
	registered := registerTestUser(t, engine, "alice@example.com", "secret1")

	tok, err := engine.tokens.Issue(registered.ID, "alice@example.com", "user")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := engine.VerifyToken(context.Background(), tok); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected expired token to be ErrUnauthorized, got %v", err)
	}
}

func TestVerifyTokenRejectsUnknownRole(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	tok, err := engine.tokens.Issue("some-subject", "", "superuser")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if _, err := engine.VerifyToken(context.Background(), tok); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unknown role to be ErrUnauthorized, got %v", err)
	}
}

func TestVerifyTokenClaimsCarryIssuanceState(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())
	registered := registerTestUser(t, engine, "alice@example.com", "secret1")

	result, err := engine.Login(context.Background(), "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	claims, err := engine.VerifyToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != registered.ID || claims.Email != "alice@example.com" || claims.Role != RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if claims.ExpiresAt.IsZero() || !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("expected a future expiry, got %v", claims.ExpiresAt)
	}
}

func TestEngineNotReady(t *testing.T) {
	var engine *Engine
	if _, err := engine.VerifyToken(context.Background(), "x"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
	if _, err := engine.Login(context.Background(), "a@example.com", "p"); !errors.Is(err, ErrEngineNotReady) {
		t.Fatalf("expected ErrEngineNotReady, got %v", err)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	builder := New().WithConfig(testConfig()).WithStore(newMockStore())
	engine, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)

	if _, err := builder.Build(); err == nil {
		t.Fatal("expected second Build to fail")
	}
}

func TestBuilderRequiresStore(t *testing.T) {
	if _, err := New().WithConfig(testConfig()).Build(); err == nil {
		t.Fatal("expected Build without a store to fail")
	}
}

func TestBuilderRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Token.Secret = nil
	if _, err := New().WithConfig(cfg).WithStore(newMockStore()).Build(); err == nil {
		t.Fatal("expected Build with missing secret to fail")
	}
}

func TestSecurityReport(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	report := engine.SecurityReport()
	if report.SigningAlgorithm != "hs256" {
		t.Fatalf("unexpected algorithm: %s", report.SigningAlgorithm)
	}
	if report.TokenTTL != time.Minute {
		t.Fatalf("unexpected TTL: %s", report.TokenTTL)
	}
	if !report.PepperConfigured {
		t.Fatal("expected pepper to be reported as configured")
	}
	if report.RateLimitingActive {
		t.Fatal("expected rate limiting inactive without Redis")
	}
	if !report.MetricsActive {
		t.Fatal("expected metrics active")
	}
	if report.Argon2.Memory != 8192 {
		t.Fatalf("unexpected argon2 memory: %d", report.Argon2.Memory)
	}
}
