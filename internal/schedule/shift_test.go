package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	testCases := []struct {
		raw     string
		want    Clock
		wantErr bool
	}{
		{raw: "00:00", want: 0},
		{raw: "09:00", want: 9 * 60},
		{raw: "23:59", want: 23*60 + 59},
		{raw: "24:00", wantErr: true},
		{raw: "9:00", wantErr: true},
		{raw: "09:60", wantErr: true},
		{raw: "", wantErr: true},
		{raw: "morning", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			got, err := ParseClock(tc.raw)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseWindow(t *testing.T) {
	w, err := ParseWindow("09:00", "18:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00-18:00", w.String())

	_, err = ParseWindow("18:00", "09:00")
	assert.Error(t, err, "inverted window must be rejected")

	_, err = ParseWindow("09:00", "09:00")
	assert.Error(t, err, "empty window must be rejected")
}

func TestWindowContains(t *testing.T) {
	w, err := ParseWindow("09:00", "18:00")
	require.NoError(t, err)

	nine, _ := ParseClock("09:00")
	noon, _ := ParseClock("12:30")
	six, _ := ParseClock("18:00")
	early, _ := ParseClock("08:59")

	assert.True(t, w.Contains(nine), "start is inclusive")
	assert.True(t, w.Contains(noon))
	assert.False(t, w.Contains(six), "end is exclusive")
	assert.False(t, w.Contains(early))
}

func TestWeekdayOf(t *testing.T) {
	day, err := WeekdayOf("2026-08-31")
	require.NoError(t, err)
	assert.Equal(t, time.Monday, day)

	_, err = WeekdayOf("31/08/2026")
	assert.Error(t, err)
}
