package authcore

import (
	"context"
	"errors"
	"testing"
)

func validRequest() RegisterRequest {
	return RegisterRequest{
		Email:           "alice@example.com",
		FirstName:       "Alice",
		LastName:        "Liddell",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterSuccess(t *testing.T) {
	store := newMockStore()
	engine := newTestEngine(t, testConfig(), store)

	result, err := engine.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Identity.Role != RoleUser {
		t.Fatalf("expected RoleUser, got %s", result.Identity.Role)
	}
	if result.Token == "" {
		t.Fatal("expected auto-login token")
	}

	claims, err := engine.VerifyToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Subject != result.Identity.ID {
		t.Fatal("token subject does not name the new identity")
	}

	stored, err := store.GetByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetByEmail failed: %v", err)
	}
	if stored.PasswordHash == "" || stored.PasswordHash == "secret1" {
		t.Fatal("expected stored password to be hashed")
	}
}

func TestRegisterWithoutAutoLogin(t *testing.T) {
	cfg := testConfig()
	cfg.Account.AutoLogin = false
	engine := newTestEngine(t, cfg, newMockStore())

	result, err := engine.Register(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if result.Token != "" {
		t.Fatal("expected no token when AutoLogin is disabled")
	}
}

func TestRegisterValidation(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	cases := []struct {
		name    string
		mutate  func(*RegisterRequest)
		wantErr error
	}{
		{"missing email", func(r *RegisterRequest) { r.Email = "" }, ErrMissingFields},
		{"missing first name", func(r *RegisterRequest) { r.FirstName = "" }, ErrMissingFields},
		{"missing last name", func(r *RegisterRequest) { r.LastName = "" }, ErrMissingFields},
		{"missing password", func(r *RegisterRequest) { r.Password = ""; r.ConfirmPassword = "" }, ErrMissingFields},
		{"mismatched confirmation", func(r *RegisterRequest) { r.ConfirmPassword = "other" }, ErrPasswordMismatch},
		{"too short", func(r *RegisterRequest) { r.Password = "abc"; r.ConfirmPassword = "abc" }, ErrPasswordTooShort},
	}

	for _, tc := range cases {
		req := validRequest()
		tc.mutate(&req)
		_, err := engine.Register(context.Background(), req)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if !IsValidationError(err) {
			t.Fatalf("%s: expected a validation-class error, got %v", tc.name, err)
		}
	}

	if got := engine.MetricsSnapshot().Counters[MetricRegisterInvalid]; got != uint64(len(cases)) {
		t.Fatalf("expected %d invalid registrations recorded, got %d", len(cases), got)
	}
}

func TestRegisterDuplicate(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	if _, err := engine.Register(context.Background(), validRequest()); err != nil {
		t.Fatalf("first Register failed: %v", err)
	}
	if _, err := engine.Register(context.Background(), validRequest()); !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}

	if got := engine.MetricsSnapshot().Counters[MetricRegisterDuplicate]; got != 1 {
		t.Fatalf("expected one duplicate recorded, got %d", got)
	}
}

func TestCreateIdentityAdmin(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	req := validRequest()
	req.Email = "root@example.com"
	identity, err := engine.CreateIdentity(context.Background(), req, RoleAdmin)
	if err != nil {
		t.Fatalf("CreateIdentity failed: %v", err)
	}
	if identity.Role != RoleAdmin {
		t.Fatalf("expected RoleAdmin, got %s", identity.Role)
	}

	// The new admin logs in on their own; creation issued no token, so
	// prove the credentials work.
	result, err := engine.Login(context.Background(), "root@example.com", "secret1")
	if err != nil {
		t.Fatalf("Login as created admin failed: %v", err)
	}
	claims, err := engine.VerifyToken(context.Background(), result.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if claims.Role != RoleAdmin {
		t.Fatalf("expected admin claims, got %s", claims.Role)
	}
}

func TestCreateIdentityRejectsUnknownRole(t *testing.T) {
	engine := newTestEngine(t, testConfig(), newMockStore())

	if _, err := engine.CreateIdentity(context.Background(), validRequest(), Role(42)); !errors.Is(err, ErrUnknownRole) {
		t.Fatalf("expected ErrUnknownRole, got %v", err)
	}
}
