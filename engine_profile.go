package authcore

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Profile resolves a verified token subject to the identity it names. The
// subject must be the UUID the token was issued for; a structurally invalid
// subject is ErrMalformedSubject, a valid UUID with no identity behind it is
// ErrIdentityNotFound.
//
// Profile may return an error when input validation, dependency calls, or security checks fail.
// Profile does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Profile(ctx context.Context, subject string) (PublicIdentity, error) {
	if e == nil || e.store == nil {
		return PublicIdentity{}, ErrEngineNotReady
	}

	if _, err := uuid.Parse(subject); err != nil {
		e.metricInc(MetricProfileMiss)
		e.emitAudit(ctx, auditEventProfileLookupFailure, false, subject, ErrMalformedSubject, nil)
		return PublicIdentity{}, ErrMalformedSubject
	}

	identity, err := e.store.GetByID(ctx, subject)
	if err != nil {
		e.metricInc(MetricProfileMiss)
		if errors.Is(err, ErrIdentityNotFound) {
			// Token outlived the identity; can happen with an in-memory store
			// after a restart.
			e.emitAudit(ctx, auditEventProfileLookupFailure, false, subject, ErrIdentityNotFound, nil)
			return PublicIdentity{}, ErrIdentityNotFound
		}
		return PublicIdentity{}, ErrInternal
	}

	e.metricInc(MetricProfileHit)
	return identity.Public(), nil
}
