package authcore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// mockIdentityStore is an in-package IdentityStore so engine tests do not
// import the store package (which imports this one).
type mockIdentityStore struct {
	mu      sync.RWMutex
	byID    map[string]Identity
	byEmail map[string]string
	order   []string

	failCreate error
	failGet    error
	updates    int
}

func newMockStore() *mockIdentityStore {
	return &mockIdentityStore{
		byID:    make(map[string]Identity),
		byEmail: make(map[string]string),
	}
}

func (m *mockIdentityStore) Create(_ context.Context, input NewIdentity) (Identity, error) {
	if m.failCreate != nil {
		return Identity{}, m.failCreate
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[input.Email]; exists {
		return Identity{}, ErrEmailAlreadyRegistered
	}
	id := Identity{
		ID:           uuid.NewString(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}
	m.byID[id.ID] = id
	m.byEmail[id.Email] = id.ID
	m.order = append(m.order, id.ID)
	return id, nil
}

func (m *mockIdentityStore) GetByEmail(_ context.Context, email string) (Identity, error) {
	if m.failGet != nil {
		return Identity{}, m.failGet
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return Identity{}, ErrIdentityNotFound
	}
	return m.byID[id], nil
}

func (m *mockIdentityStore) GetByID(_ context.Context, id string) (Identity, error) {
	if m.failGet != nil {
		return Identity{}, m.failGet
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.byID[id]
	if !ok {
		return Identity{}, ErrIdentityNotFound
	}
	return identity, nil
}

func (m *mockIdentityStore) List(_ context.Context) ([]Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Identity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

func (m *mockIdentityStore) Count(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.byID), nil
}

func (m *mockIdentityStore) UpdatePasswordHash(_ context.Context, id, hash string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.byID[id]
	if !ok {
		return ErrIdentityNotFound
	}
	identity.PasswordHash = hash
	m.byID[id] = identity
	m.updates++
	return nil
}

// testConfig keeps argon2 at the parameter floor so tests stay fast.
func testConfig() Config {
	cfg := defaultConfig()
	cfg.Token.Secret = []byte("test-secret")
	cfg.Token.TTL = time.Minute
	cfg.Password.Memory = 8192
	cfg.Password.Time = 1
	cfg.Password.Parallelism = 1
	cfg.Password.Pepper = []byte("test-seed")
	return cfg
}

func newTestEngine(t *testing.T, cfg Config, store IdentityStore) *Engine {
	t.Helper()

	engine, err := New().
		WithConfig(cfg).
		WithStore(store).
		WithMetricsEnabled(true).
		Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(engine.Close)
	return engine
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	return mr, redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func registerTestUser(t *testing.T, engine *Engine, email, pass string) PublicIdentity {
	t.Helper()

	result, err := engine.Register(context.Background(), RegisterRequest{
		Email:           email,
		FirstName:       "Test",
		LastName:        "User",
		Password:        pass,
		ConfirmPassword: pass,
	})
	if err != nil {
		t.Fatalf("Register(%s) failed: %v", email, err)
	}
	return result.Identity
}
