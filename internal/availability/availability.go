package availability

import (
	"context"
	"fmt"
	"sort"

	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/schedule"
	"collections-assign-backend/internal/store"
)

// Band is the capacity color band shown to operators.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Thresholds holds the open-ticket counts at which an agent moves into the
// medium and high bands. Configurable, but the defaults are load-bearing for
// dashboard compatibility.
type Thresholds struct {
	Medium int
	High   int
}

// DefaultThresholds returns the historical band boundaries: low < 3,
// medium < 6, high >= 6.
func DefaultThresholds() Thresholds {
	return Thresholds{Medium: 3, High: 6}
}

// BandFor derives the capacity band from an open-ticket count.
func (t Thresholds) BandFor(count int64) Band {
	switch {
	case count < int64(t.Medium):
		return BandLow
	case count < int64(t.High):
		return BandMedium
	default:
		return BandHigh
	}
}

// ResourceAvailability is one row of an availability snapshot: an agent, the
// shift window resolved for the queried date, and the live open-ticket count.
type ResourceAvailability struct {
	Resource    model.Resource
	OnDuty      bool
	Window      schedule.Window // zero value when off duty
	OpenTickets int64
	Band        Band
}

// Calculator produces availability snapshots. Snapshots are recomputed on
// every call; ticket counts change continuously, so nothing here is cached.
type Calculator struct {
	store      store.Store
	thresholds Thresholds
}

// NewCalculator creates an availability calculator over the given store.
func NewCalculator(s store.Store, t Thresholds) *Calculator {
	return &Calculator{store: s, thresholds: t}
}

// GetAvailability returns every agent's shift window (or off-duty flag) and
// open-ticket count for the given "YYYY-MM-DD" date, ordered by display name.
// It is a pure read: ranking and filtering are the caller's concern.
func (c *Calculator) GetAvailability(ctx context.Context, date string) ([]ResourceAvailability, error) {
	weekday, err := schedule.WeekdayOf(date)
	if err != nil {
		return nil, err
	}

	resources, err := c.store.ListResources(ctx)
	if err != nil {
		return nil, fmt.Errorf("resource registry unavailable: %w", err)
	}

	counts, err := c.store.CountOpenByResource(ctx)
	if err != nil {
		return nil, err
	}

	snapshot := make([]ResourceAvailability, 0, len(resources))
	for _, res := range resources {
		ra := ResourceAvailability{
			Resource:    res,
			OpenTickets: counts[res.ID],
		}
		ra.Band = c.thresholds.BandFor(ra.OpenTickets)

		// A missing calendar entry counts as a rest day: never offer the
		// agent as an assignment target on a date we cannot place a shift.
		if shift, ok := res.ShiftFor(weekday); ok && !shift.Rest {
			window, err := schedule.ParseWindow(shift.StartTime, shift.EndTime)
			if err != nil {
				return nil, fmt.Errorf("corrupt shift calendar for resource %s: %w", res.ID, err)
			}
			ra.OnDuty = true
			ra.Window = window
		}

		snapshot = append(snapshot, ra)
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Resource.DisplayName < snapshot[j].Resource.DisplayName
	})
	return snapshot, nil
}

// NeedsAttention returns the subset of tickets that should be flagged for
// operators: late-portfolio tickets with no assigned agent.
func NeedsAttention(tickets []model.Ticket) []model.Ticket {
	var flagged []model.Ticket
	for _, t := range tickets {
		if t.Segment == model.SegmentLate && t.AssignedResourceID == nil && t.State.Open() {
			flagged = append(flagged, t)
		}
	}
	return flagged
}
