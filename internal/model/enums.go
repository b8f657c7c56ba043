package model

import "fmt"

// Tier is an agent's experience classification. Higher tiers are eligible
// for higher-risk portfolio segments.
type Tier string

const (
	TierStandard Tier = "standard"
	TierSenior   Tier = "senior"
	TierExpert   Tier = "expert"
)

// ParseTier validates a raw tier value at the boundary.
func ParseTier(raw string) (Tier, error) {
	switch Tier(raw) {
	case TierStandard, TierSenior, TierExpert:
		return Tier(raw), nil
	}
	return "", fmt.Errorf("unknown experience tier: %q", raw)
}

// Segment is the risk/age classification of a ticket's underlying debt.
type Segment string

const (
	SegmentEarly  Segment = "early"
	SegmentNormal Segment = "normal"
	SegmentLate   Segment = "late"
)

// ParseSegment validates a raw portfolio segment value at the boundary.
func ParseSegment(raw string) (Segment, error) {
	switch Segment(raw) {
	case SegmentEarly, SegmentNormal, SegmentLate:
		return Segment(raw), nil
	}
	return "", fmt.Errorf("unknown portfolio segment: %q", raw)
}

// TicketState is the lifecycle state of a ticket.
type TicketState string

const (
	StatePending     TicketState = "pending"
	StateInExecution TicketState = "in_execution"
	StateFinalized   TicketState = "finalized"
)

// ParseTicketState validates a raw lifecycle state value at the boundary.
func ParseTicketState(raw string) (TicketState, error) {
	switch TicketState(raw) {
	case StatePending, StateInExecution, StateFinalized:
		return TicketState(raw), nil
	}
	return "", fmt.Errorf("unknown ticket state: %q", raw)
}

// Open reports whether the state counts toward an agent's load.
func (s TicketState) Open() bool {
	return s == StatePending || s == StateInExecution
}

// OpenStates lists the lifecycle states that count as active work.
var OpenStates = []TicketState{StatePending, StateInExecution}
