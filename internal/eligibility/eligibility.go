// Package eligibility applies the business rules restricting which agents may
// take a given ticket. It is a pure narrowing layer over availability
// snapshots; persistence and atomicity live in the engine.
package eligibility

import (
	"collections-assign-backend/internal/availability"
	"collections-assign-backend/internal/model"
)

// Reason explains why an agent is ineligible for a ticket. Callers surface
// the specific reason to operators, never a generic failure.
type Reason string

const (
	// ReasonRestDay: the agent is off duty on the target date.
	ReasonRestDay Reason = "rest_day"
	// ReasonTierRequired: late-portfolio tickets are restricted to expert-tier
	// agents.
	ReasonTierRequired Reason = "tier_required"
	// ReasonOutsideWindow: the requested contact time falls outside the
	// agent's shift window for the target date. Enforced by the engine, which
	// knows the requested time; the filter only sees dates.
	ReasonOutsideWindow Reason = "outside_shift_window"
)

// Check reports whether a single candidate may take the ticket. The boolean
// is true when eligible; otherwise the reason describes the first rule the
// candidate failed.
func Check(candidate availability.ResourceAvailability, ticket model.Ticket) (Reason, bool) {
	if !candidate.OnDuty {
		return ReasonRestDay, false
	}
	if ticket.Segment == model.SegmentLate && candidate.Resource.Tier != model.TierExpert {
		return ReasonTierRequired, false
	}
	return "", true
}

// FilterEligible narrows an availability snapshot to the agents allowed to
// take the ticket. It does not mutate its input and preserves the incoming
// order. An empty result is a valid outcome, not an error.
func FilterEligible(candidates []availability.ResourceAvailability, ticket model.Ticket) []availability.ResourceAvailability {
	eligible := make([]availability.ResourceAvailability, 0, len(candidates))
	for _, c := range candidates {
		if _, ok := Check(c, ticket); ok {
			eligible = append(eligible, c)
		}
	}
	return eligible
}
