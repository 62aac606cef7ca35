package authcore

import (
	"context"
	"errors"
	"time"

	internalaudit "github.com/cmestre/authcore/internal/audit"
	"github.com/cmestre/authcore/internal/rate"
	"github.com/cmestre/authcore/password"
	"github.com/cmestre/authcore/token"
)

// Engine is the credential-issuance and access-control core. Construct it
// with [Builder.Build]; the zero value is not usable.
//
// Engine instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Engine struct {
	config      Config
	store       IdentityStore
	hasher      *password.Hasher
	tokens      *token.Manager
	rateLimiter *rate.Limiter
	audit       *internalaudit.Dispatcher
	metrics     *Metrics

	// decoyHash is verified against when a login targets an unknown email,
	// so the miss path pays the same argon2 cost as a real verification.
	decoyHash string
}

// Close flushes and stops the audit dispatcher. Engine methods must not be
// called after Close.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were dropped under
// backpressure since the engine started.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot copies the current counters and histograms. Always safe,
// even with metrics disabled.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil || e.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil || e.metrics == nil {
		return
	}
	e.metrics.Inc(id)
}

// VerifyToken verifies a session token string and returns the claims it
// carries. Every failure — missing, malformed, tampered, expired, unknown
// role — collapses to ErrUnauthorized; the precise class is recorded in
// audit and metrics only.
//
// VerifyToken is pure computation: no store access, no network.
func (e *Engine) VerifyToken(ctx context.Context, tokenStr string) (*Claims, error) {
	if e == nil || e.tokens == nil {
		return nil, ErrEngineNotReady
	}
	if tokenStr == "" {
		e.metricInc(MetricTokenRejected)
		return nil, ErrUnauthorized
	}

	start := time.Now()
	parsed, err := e.tokens.Parse(tokenStr)
	if e.metrics.LatencyEnabled() {
		e.metrics.Observe(MetricVerifyLatency, time.Since(start))
	}
	if err != nil {
		e.metricInc(MetricTokenRejected)
		e.emitAudit(ctx, auditEventTokenRejected, false, "", ErrUnauthorized, func() map[string]string {
			return map[string]string{"reason": tokenRejectReason(err)}
		})
		return nil, ErrUnauthorized
	}

	role, err := ParseRole(parsed.Role)
	if err != nil {
		e.metricInc(MetricTokenRejected)
		e.emitAudit(ctx, auditEventTokenRejected, false, parsed.Subject, ErrUnauthorized, func() map[string]string {
			return map[string]string{"reason": "unknown_role"}
		})
		return nil, ErrUnauthorized
	}

	claims := &Claims{
		Subject: parsed.Subject,
		Email:   parsed.Email,
		Role:    role,
	}
	if parsed.ExpiresAt != nil {
		claims.ExpiresAt = parsed.ExpiresAt.Time
	}
	return claims, nil
}

func tokenRejectReason(err error) string {
	switch {
	case errors.Is(err, token.ErrMalformed):
		return "malformed"
	case errors.Is(err, token.ErrBadSignature):
		return "bad_signature"
	case errors.Is(err, token.ErrExpired):
		return "expired"
	default:
		return "invalid_claims"
	}
}
