package authcore

import (
	"context"
	"errors"
	"log"
)

// passwordHashUpdater is implemented by stores that can persist an upgraded
// password hash. It is optional; login works without it.
type passwordHashUpdater interface {
	UpdatePasswordHash(ctx context.Context, id, hash string) error
}

// Login authenticates an email and password and returns a session token plus
// the public identity. Every failure on the credential path is the uniform
// ErrInvalidCredentials: unknown email, wrong password, and empty password
// are indistinguishable to the caller, and the unknown-email path pays a
// decoy hash verification so timing does not leak existence either.
//
// Login may return an error when input validation, dependency calls, or security checks fail.
// Login does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Login(ctx context.Context, email, pass string) (*LoginResult, error) {
	if e == nil || e.hasher == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}
	ip := clientIPFromContext(ctx)

	if e.rateLimiter != nil {
		if err := e.rateLimiter.CheckLogin(ctx, email, ip); err != nil {
			return nil, e.loginRateLimited(ctx, email, "")
		}
	}

	if email == "" || pass == "" {
		return nil, e.loginFailed(ctx, email, "", "empty_input", ip)
	}

	identity, err := e.store.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrInternal
		}
		// Unknown email: verify against the decoy so this path costs the
		// same as a real mismatch.
		_, _ = e.hasher.Verify(pass, e.decoyHash)
		return nil, e.loginFailed(ctx, email, "", "email_not_found", ip)
	}

	ok, err := e.hasher.Verify(pass, identity.PasswordHash)
	if err != nil || !ok {
		return nil, e.loginFailed(ctx, email, identity.ID, "password_mismatch", ip)
	}

	if e.config.Password.UpgradeOnLogin {
		if needsUpgrade, err := e.hasher.NeedsUpgrade(identity.PasswordHash); err == nil && needsUpgrade {
			if upgradedHash, err := e.hasher.Hash(pass); err == nil {
				// Rehash persistence is best-effort and must not block login.
				if updater, canUpdate := e.store.(passwordHashUpdater); canUpdate {
					if err := updater.UpdatePasswordHash(ctx, identity.ID, upgradedHash); err != nil {
						log.Print("authcore: password hash upgrade update failed")
					}
				}
			} else {
				log.Print("authcore: password hash upgrade generation failed")
			}
		}
	}
	pass = ""

	tok, err := e.tokens.Issue(identity.ID, identity.Email, identity.Role.String())
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.ID, ErrInternal, func() map[string]string {
			return map[string]string{"reason": "token_issue"}
		})
		return nil, ErrInternal
	}

	if e.rateLimiter != nil {
		if err := e.rateLimiter.ResetLogin(ctx, email, ip); err != nil {
			log.Print("authcore: login counter reset failed")
		}
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, identity.ID, nil, nil)

	return &LoginResult{
		Token:    tok,
		Identity: identity.Public(),
	}, nil
}

// loginFailed records a failed attempt against the limiter and emits the
// uniform failure. The reason string goes to audit only.
func (e *Engine) loginFailed(ctx context.Context, email, identityID, reason, ip string) error {
	if e.rateLimiter != nil {
		if err := e.rateLimiter.IncrementLogin(ctx, email, ip); err != nil {
			return e.loginRateLimited(ctx, email, identityID)
		}
	}
	e.metricInc(MetricLoginFailure)
	e.emitAudit(ctx, auditEventLoginFailure, false, identityID, ErrInvalidCredentials, func() map[string]string {
		return map[string]string{
			"identifier": email,
			"reason":     reason,
		}
	})
	return ErrInvalidCredentials
}

func (e *Engine) loginRateLimited(ctx context.Context, email, identityID string) error {
	e.metricInc(MetricLoginRateLimited)
	e.emitAudit(ctx, auditEventLoginRateLimited, false, identityID, ErrLoginRateLimited, func() map[string]string {
		return map[string]string{"identifier": email}
	})
	return ErrLoginRateLimited
}
