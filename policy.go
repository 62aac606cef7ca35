package authcore

// Operation names a protected operation for authorization purposes. The
// policy is a pure role predicate: no persisted authorization state, no
// per-identity permission lists.
type Operation uint8

const (
	// OpAdminDashboard is the identity-list aggregation operation.
	OpAdminDashboard Operation = iota
	// OpCreateAdmin is the admin-driven identity creation operation.
	OpCreateAdmin
	// OpSelfProfile is the caller's own profile lookup.
	OpSelfProfile
)

func (o Operation) String() string {
	switch o {
	case OpAdminDashboard:
		return "admin_dashboard"
	case OpCreateAdmin:
		return "create_admin"
	case OpSelfProfile:
		return "self_profile"
	default:
		return "unknown"
	}
}

// Allowed reports whether the role may invoke the operation. The switch is
// exhaustive over the closed role set so that adding a role is a
// compile-visible change here, not a scattered string comparison.
func (r Role) Allowed(op Operation) bool {
	switch op {
	case OpAdminDashboard, OpCreateAdmin:
		return r == RoleAdmin
	case OpSelfProfile:
		switch r {
		case RoleAdmin, RoleUser:
			return true
		}
		return false
	default:
		return false
	}
}

// Authorize evaluates the role predicate for verified claims. It returns
// ErrForbidden when the role is insufficient; it never re-verifies the
// token. Call it after [Engine.VerifyToken] succeeds.
func (e *Engine) Authorize(claims *Claims, op Operation) error {
	if claims == nil || !claims.Role.Valid() {
		return ErrForbidden
	}
	if !claims.Role.Allowed(op) {
		e.metricInc(MetricForbidden)
		e.emitAudit(nil, auditEventAccessForbidden, false, claims.Subject, ErrForbidden, func() map[string]string {
			return map[string]string{
				"operation": op.String(),
				"role":      claims.Role.String(),
			}
		})
		return ErrForbidden
	}
	return nil
}
