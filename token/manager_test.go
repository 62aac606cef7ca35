package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		TTL:           time.Minute,
		SigningMethod: MethodHS256,
		Secret:        []byte("test-secret"),
		Issuer:        "authcore-test",
	}
}

func TestIssueAndParseRoundTrip(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	tok, err := m.Issue("7b4b1f5e-0000-4000-8000-000000000001", "alice@example.com", "admin")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	claims, err := m.Parse(tok)
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if claims.Subject != "7b4b1f5e-0000-4000-8000-000000000001" {
		t.Fatalf("unexpected subject: %s", claims.Subject)
	}
	if claims.Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", claims.Email)
	}
	if claims.Role != "admin" {
		t.Fatalf("unexpected role: %s", claims.Role)
	}
	if claims.ExpiresAt == nil || !claims.ExpiresAt.After(time.Now()) {
		t.Fatal("expected a future expiry")
	}
}

func TestParseExpired(t *testing.T) {
	cfg := testConfig()
	cfg.TTL = time.Millisecond
	m, err := NewManager(cfg)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	tok, err := m.Issue("sub-1", "", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, err := m.Parse(tok); !errors.Is(err, ErrExpired) {
		t.Fatalf("expected ErrExpired, got %v", err)
	}
}

func TestParseTamperedSignature(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	tok, err := m.Issue("sub-1", "", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", tok)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := m.Parse(tampered); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestParseMalformed(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	for _, tok := range []string{"garbage", "a.b", "a.b.c.d"} {
		if _, err := m.Parse(tok); !errors.Is(err, ErrMalformed) {
			t.Fatalf("token %q: expected ErrMalformed, got %v", tok, err)
		}
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	m1, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	cfg2 := testConfig()
	cfg2.Secret = []byte("other-secret")
	m2, err := NewManager(cfg2)
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}

	tok, err := m1.Issue("sub-1", "", "user")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m2.Parse(tok); !errors.Is(err, ErrBadSignature) {
		t.Fatalf("expected ErrBadSignature, got %v", err)
	}
}

func TestIssueEmptySubjectRejected(t *testing.T) {
	m, err := NewManager(testConfig())
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	if _, err := m.Issue("", "", "user"); err == nil {
		t.Fatal("expected empty subject to be rejected")
	}
}

func TestManagerConfigValidation(t *testing.T) {
	if _, err := NewManager(Config{TTL: 0, SigningMethod: MethodHS256, Secret: []byte("s")}); err == nil {
		t.Fatal("expected zero TTL to be rejected")
	}
	if _, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodHS256}); err == nil {
		t.Fatal("expected missing secret to be rejected")
	}
	if _, err := NewManager(Config{TTL: time.Minute, SigningMethod: "rs256", Secret: []byte("s")}); err == nil {
		t.Fatal("expected unsupported method to be rejected")
	}
	if _, err := NewManager(Config{TTL: time.Minute, SigningMethod: MethodHS256, Secret: []byte("s"), Leeway: 5 * time.Minute}); err == nil {
		t.Fatal("expected oversized leeway to be rejected")
	}
}
