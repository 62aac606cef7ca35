package authcore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Role is the closed set of authorization roles. Every identity carries
// exactly one role, and the role is copied into every issued token.
//
// Adding a role means extending this enumeration and the predicate in
// policy.go; there is no string-keyed role registry.
type Role uint8

const (
	// RoleUser is the default role assigned by self-service registration.
	RoleUser Role = iota
	// RoleAdmin grants access to the administrative operations.
	RoleAdmin

	roleCount
)

// ParseRole maps the wire representation ("user", "admin") back to a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// Valid reports whether r is a member of the closed role set.
func (r Role) Valid() bool {
	return r < roleCount
}

func (r Role) String() string {
	switch r {
	case RoleUser:
		return "user"
	case RoleAdmin:
		return "admin"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the role as its wire string.
func (r Role) MarshalJSON() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, r)
	}
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes the wire string form of a role.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseRole(s)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// Identity is a registered principal: credentials plus a role. The password
// hash never leaves the core; callers receive [PublicIdentity] projections.
//
// Identity values are copies. Mutating one has no effect on the store.
type Identity struct {
	ID           string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// Public projects the identity onto the fields that are safe to serialize.
func (i Identity) Public() PublicIdentity {
	return PublicIdentity{
		ID:        i.ID,
		Email:     i.Email,
		FirstName: i.FirstName,
		LastName:  i.LastName,
		Role:      i.Role,
	}
}

// PublicIdentity is the wire-safe projection of an [Identity]. It
// unconditionally excludes the password hash.
type PublicIdentity struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      Role   `json:"role"`
}

// Claims is the caller description extracted from a verified token. Claims
// are immutable once minted: they hold a copy of the role and subject taken
// at issuance time, not a live reference into the store.
type Claims struct {
	// Subject is the identity's ID (UUID). The same scheme is used at
	// issuance and at profile lookup; email is never a lookup key.
	Subject   string
	Email     string
	Role      Role
	ExpiresAt time.Time
}

// NewIdentity is the input for [IdentityStore.Create]. The password arrives
// already hashed; the store never sees plaintext.
type NewIdentity struct {
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
	Role         Role
}

// IdentityStore is the credential repository contract. Implementations must
// serialize mutations and guarantee read-after-write visibility; Create must
// perform its duplicate-email check and insert atomically.
//
// The in-memory implementation lives in the store package. Implementations
// must not perform CPU-heavy work (hashing) while holding their lock; the
// engine hashes before calling Create.
type IdentityStore interface {
	Create(ctx context.Context, input NewIdentity) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, error)
	GetByID(ctx context.Context, id string) (Identity, error)
	List(ctx context.Context) ([]Identity, error)
	Count(ctx context.Context) (int, error)
}

// RegisterRequest is the input for [Engine.Register] and
// [Engine.CreateIdentity].
type RegisterRequest struct {
	Email           string
	FirstName       string
	LastName        string
	Password        string
	ConfirmPassword string
}

// LoginResult is returned by [Engine.Login].
type LoginResult struct {
	Token    string
	Identity PublicIdentity
}

// RegisterResult is returned by [Engine.Register]. Token is set when
// [AccountConfig.AutoLogin] is enabled.
type RegisterResult struct {
	Token    string
	Identity PublicIdentity
}

// DashboardResult is returned by [Engine.Dashboard]. Identities are in
// insertion order.
type DashboardResult struct {
	Count      int              `json:"user_count"`
	Identities []PublicIdentity `json:"users"`
}
