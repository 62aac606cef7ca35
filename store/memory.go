package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cmestre/authcore"
)

// Memory is a process-local IdentityStore. A read-write mutex serializes
// mutations; the duplicate-email check and the insert happen under a single
// write-lock acquisition, so two concurrent Create calls for the same email
// cannot both succeed.
//
// All returned Identity values are copies. Mutating one never affects the
// stored record.
type Memory struct {
	mu      sync.RWMutex
	byID    map[string]authcore.Identity
	byEmail map[string]string // email -> id
	order   []string          // insertion order of ids
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{
		byID:    make(map[string]authcore.Identity),
		byEmail: make(map[string]string),
	}
}

// Create assigns a fresh UUID, rejects duplicate emails and inserts the
// identity. The email comparison is exact: no case folding, no trimming.
func (m *Memory) Create(ctx context.Context, input authcore.NewIdentity) (authcore.Identity, error) {
	if err := ctx.Err(); err != nil {
		return authcore.Identity{}, err
	}
	if input.Email == "" {
		return authcore.Identity{}, fmt.Errorf("store: %w", authcore.ErrMissingFields)
	}
	if !input.Role.Valid() {
		return authcore.Identity{}, authcore.ErrUnknownRole
	}

	id := authcore.Identity{
		ID:           uuid.NewString(),
		Email:        input.Email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: input.PasswordHash,
		Role:         input.Role,
		CreatedAt:    time.Now().UTC(),
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byEmail[input.Email]; exists {
		return authcore.Identity{}, authcore.ErrEmailAlreadyRegistered
	}
	m.byID[id.ID] = id
	m.byEmail[id.Email] = id.ID
	m.order = append(m.order, id.ID)

	return id, nil
}

// GetByEmail looks up an identity by exact email.
func (m *Memory) GetByEmail(ctx context.Context, email string) (authcore.Identity, error) {
	if err := ctx.Err(); err != nil {
		return authcore.Identity{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[email]
	if !ok {
		return authcore.Identity{}, authcore.ErrIdentityNotFound
	}
	return m.byID[id], nil
}

// GetByID looks up an identity by its UUID.
func (m *Memory) GetByID(ctx context.Context, id string) (authcore.Identity, error) {
	if err := ctx.Err(); err != nil {
		return authcore.Identity{}, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.byID[id]
	if !ok {
		return authcore.Identity{}, authcore.ErrIdentityNotFound
	}
	return identity, nil
}

// List returns every identity in insertion order.
func (m *Memory) List(ctx context.Context) ([]authcore.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]authcore.Identity, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.byID[id])
	}
	return out, nil
}

// UpdatePasswordHash replaces the stored hash for id. Used by the engine's
// hash-upgrade-on-login path.
func (m *Memory) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.byID[id]
	if !ok {
		return authcore.ErrIdentityNotFound
	}
	identity.PasswordHash = hash
	m.byID[id] = identity
	return nil
}

// Count returns the number of stored identities.
func (m *Memory) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byID), nil
}
