package authcore

import "context"

// Dashboard aggregates every registered identity into the administrative
// summary. Authorization (OpAdminDashboard) is the caller's concern; the
// aggregation itself never filters by role.
//
// Dashboard may return an error when input validation, dependency calls, or security checks fail.
// Dashboard does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Dashboard(ctx context.Context) (*DashboardResult, error) {
	if e == nil || e.store == nil {
		return nil, ErrEngineNotReady
	}

	identities, err := e.store.List(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	publics := make([]PublicIdentity, 0, len(identities))
	for _, identity := range identities {
		publics = append(publics, identity.Public())
	}

	e.metricInc(MetricDashboardHit)
	return &DashboardResult{
		Count:      len(publics),
		Identities: publics,
	}, nil
}
