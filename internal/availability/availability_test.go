package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"collections-assign-backend/internal/db"
	"collections-assign-backend/internal/model"
	"collections-assign-backend/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.Migrate(gormDB))
	return store.NewGormStore(gormDB)
}

func weekShifts(resourceID string, restDays ...time.Weekday) []model.ResourceShift {
	rest := make(map[time.Weekday]bool)
	for _, d := range restDays {
		rest[d] = true
	}
	shifts := make([]model.ResourceShift, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		s := model.ResourceShift{ResourceID: resourceID, Weekday: day}
		if rest[day] {
			s.Rest = true
		} else {
			s.StartTime = "09:00"
			s.EndTime = "18:00"
		}
		shifts = append(shifts, s)
	}
	return shifts
}

func seedResource(t *testing.T, s store.Store, id, name string, tier model.Tier, restDays ...time.Weekday) {
	t.Helper()
	res := model.Resource{ID: id, DisplayName: name, Tier: tier, Team: "cobranzas"}
	require.NoError(t, s.DB().Create(&res).Error)
	shifts := weekShifts(id, restDays...)
	require.NoError(t, s.DB().Create(&shifts).Error)
}

func seedTicket(t *testing.T, s store.Store, id string, state model.TicketState, assignedTo string) {
	t.Helper()
	ticket := model.Ticket{
		ID:       id,
		ClientID: "C-" + id,
		Segment:  model.SegmentNormal,
		State:    state,
	}
	if assignedTo != "" {
		ticket.AssignedResourceID = &assignedTo
	}
	require.NoError(t, s.DB().Create(&ticket).Error)
}

func TestGetAvailability_ShiftAndLiveCount(t *testing.T) {
	s := newTestStore(t)
	calc := NewCalculator(s, DefaultThresholds())

	// Senior agent working Monday through Friday, resting on weekends.
	seedResource(t, s, "R-07", "Bruno Díaz", model.TierSenior, time.Saturday, time.Sunday)

	seedTicket(t, s, "T-100", model.StatePending, "R-07")
	seedTicket(t, s, "T-101", model.StateInExecution, "R-07")
	seedTicket(t, s, "T-102", model.StateFinalized, "R-07") // must not count
	seedTicket(t, s, "T-103", model.StatePending, "")       // unassigned, must not count

	monday := "2026-08-31"
	snapshot, err := calc.GetAvailability(context.Background(), monday)
	require.NoError(t, err)
	require.Len(t, snapshot, 1)

	ra := snapshot[0]
	assert.Equal(t, "R-07", ra.Resource.ID)
	assert.True(t, ra.OnDuty)
	assert.Equal(t, "09:00-18:00", ra.Window.String())
	assert.Equal(t, int64(2), ra.OpenTickets, "finalized and unassigned tickets do not count toward load")
	assert.Equal(t, BandLow, ra.Band)
}

func TestGetAvailability_RestDayListedButOffDuty(t *testing.T) {
	s := newTestStore(t)
	calc := NewCalculator(s, DefaultThresholds())
	seedResource(t, s, "R-07", "Bruno Díaz", model.TierSenior, time.Saturday, time.Sunday)

	sunday := "2026-08-30"
	snapshot, err := calc.GetAvailability(context.Background(), sunday)
	require.NoError(t, err)
	require.Len(t, snapshot, 1, "off-duty agents stay listed for continuity queries")
	assert.False(t, snapshot[0].OnDuty)
}

func TestGetAvailability_OrderedByDisplayName(t *testing.T) {
	s := newTestStore(t)
	calc := NewCalculator(s, DefaultThresholds())
	seedResource(t, s, "R-09", "Zoe Vega", model.TierStandard)
	seedResource(t, s, "R-01", "Ana López", model.TierExpert)
	seedResource(t, s, "R-07", "Bruno Díaz", model.TierSenior)

	snapshot, err := calc.GetAvailability(context.Background(), "2026-08-31")
	require.NoError(t, err)
	require.Len(t, snapshot, 3)
	assert.Equal(t, "Ana López", snapshot[0].Resource.DisplayName)
	assert.Equal(t, "Bruno Díaz", snapshot[1].Resource.DisplayName)
	assert.Equal(t, "Zoe Vega", snapshot[2].Resource.DisplayName)
}

func TestGetAvailability_BadDate(t *testing.T) {
	s := newTestStore(t)
	calc := NewCalculator(s, DefaultThresholds())

	_, err := calc.GetAvailability(context.Background(), "31/08/2026")
	assert.Error(t, err)
}

func TestBandFor(t *testing.T) {
	th := DefaultThresholds()
	testCases := []struct {
		count int64
		want  Band
	}{
		{0, BandLow},
		{2, BandLow},
		{3, BandMedium},
		{5, BandMedium},
		{6, BandHigh},
		{40, BandHigh},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, th.BandFor(tc.count), "count %d", tc.count)
	}
}

func TestNeedsAttention(t *testing.T) {
	assigned := "R-01"
	tickets := []model.Ticket{
		{ID: "T-1", Segment: model.SegmentLate, State: model.StatePending},
		{ID: "T-2", Segment: model.SegmentLate, State: model.StatePending, AssignedResourceID: &assigned},
		{ID: "T-3", Segment: model.SegmentNormal, State: model.StatePending},
		{ID: "T-4", Segment: model.SegmentLate, State: model.StateFinalized},
	}

	flagged := NeedsAttention(tickets)
	require.Len(t, flagged, 1)
	assert.Equal(t, "T-1", flagged[0].ID)
}
