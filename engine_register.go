package authcore

import (
	"context"
	"errors"
	"log"
)

// Register creates a RoleUser identity from a self-service registration
// request. When [AccountConfig.AutoLogin] is enabled the result carries a
// session token, so a successful registration doubles as a login.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	identity, err := e.createIdentity(ctx, req, RoleUser, auditEventRegisterSuccess, auditEventRegisterFailure, auditEventRegisterDuplicate)
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{Identity: identity.Public()}

	if e.config.Account.AutoLogin {
		tok, err := e.tokens.Issue(identity.ID, identity.Email, identity.Role.String())
		if err != nil {
			// The identity exists; surface the issuance failure rather than
			// pretending registration failed.
			log.Print("authcore: post-register token issue failed")
			return nil, ErrInternal
		}
		result.Token = tok
	}

	e.metricInc(MetricRegisterSuccess)
	return result, nil
}

// CreateIdentity creates an identity with an explicit role. It is the
// admin-driven creation path: no token is issued, the new principal logs in
// on their own. Authorization (OpCreateAdmin) is the caller's concern.
//
// CreateIdentity may return an error when input validation, dependency calls, or security checks fail.
// CreateIdentity does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) CreateIdentity(ctx context.Context, req RegisterRequest, role Role) (PublicIdentity, error) {
	identity, err := e.createIdentity(ctx, req, role, auditEventAdminCreateSuccess, auditEventAdminCreateFailure, auditEventAdminCreateFailure)
	if err != nil {
		return PublicIdentity{}, err
	}
	e.metricInc(MetricAdminCreateSuccess)
	return identity.Public(), nil
}

func (e *Engine) createIdentity(
	ctx context.Context,
	req RegisterRequest,
	role Role,
	successEvent, failureEvent, duplicateEvent string,
) (Identity, error) {
	if e == nil || e.hasher == nil || e.store == nil {
		return Identity{}, ErrEngineNotReady
	}
	if !role.Valid() {
		return Identity{}, ErrUnknownRole
	}

	if err := e.validateRegistration(req); err != nil {
		e.metricInc(MetricRegisterInvalid)
		e.emitAudit(ctx, failureEvent, false, "", err, func() map[string]string {
			return map[string]string{"identifier": req.Email}
		})
		return Identity{}, err
	}

	// Hash before touching the store so the argon2 derivation never runs
	// under the store's lock.
	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.emitAudit(ctx, failureEvent, false, "", ErrInternal, func() map[string]string {
			return map[string]string{"identifier": req.Email, "reason": "hash"}
		})
		return Identity{}, ErrInternal
	}

	identity, err := e.store.Create(ctx, NewIdentity{
		Email:        req.Email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: hash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyRegistered) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, duplicateEvent, false, "", ErrEmailAlreadyRegistered, func() map[string]string {
				return map[string]string{"identifier": req.Email}
			})
			return Identity{}, ErrEmailAlreadyRegistered
		}
		e.emitAudit(ctx, failureEvent, false, "", ErrInternal, func() map[string]string {
			return map[string]string{"identifier": req.Email, "reason": "store"}
		})
		return Identity{}, ErrInternal
	}

	e.emitAudit(ctx, successEvent, true, identity.ID, nil, func() map[string]string {
		return map[string]string{"role": role.String()}
	})

	return identity, nil
}

func (e *Engine) validateRegistration(req RegisterRequest) error {
	if req.Email == "" || req.FirstName == "" || req.LastName == "" || req.Password == "" {
		return ErrMissingFields
	}
	if req.Password != req.ConfirmPassword {
		return ErrPasswordMismatch
	}
	// Byte length, not rune count. Matches the hasher's raw-bytes policy.
	if len(req.Password) < e.config.Password.MinLength {
		return ErrPasswordTooShort
	}
	return nil
}
