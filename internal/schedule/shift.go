package schedule

import (
	"fmt"
	"regexp"
	"time"
)

const (
	// DateLayout is the wire format for calendar dates (no time component).
	DateLayout = "2006-01-02"
	// ClockLayout is the wire format for times of day.
	ClockLayout = "15:04"
)

var clockRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)

// Clock is a time of day in minutes since midnight.
type Clock int

// ParseClock parses an "HH:MM" string.
func ParseClock(raw string) (Clock, error) {
	m := clockRe.FindStringSubmatch(raw)
	if m == nil {
		return 0, fmt.Errorf("invalid time of day: %q", raw)
	}
	h := int(raw[0]-'0')*10 + int(raw[1]-'0')
	min := int(raw[3]-'0')*10 + int(raw[4]-'0')
	return Clock(h*60 + min), nil
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", int(c)/60, int(c)%60)
}

// Window is a same-day shift window. Start is inclusive, End exclusive.
type Window struct {
	Start Clock
	End   Clock
}

// ParseWindow parses a pair of "HH:MM" strings into a shift window.
func ParseWindow(start, end string) (Window, error) {
	s, err := ParseClock(start)
	if err != nil {
		return Window{}, err
	}
	e, err := ParseClock(end)
	if err != nil {
		return Window{}, err
	}
	if e <= s {
		return Window{}, fmt.Errorf("shift window end %q is not after start %q", end, start)
	}
	return Window{Start: s, End: e}, nil
}

// Contains reports whether the given time of day falls inside the window.
func (w Window) Contains(c Clock) bool {
	return c >= w.Start && c < w.End
}

func (w Window) String() string {
	return w.Start.String() + "-" + w.End.String()
}

// ParseDate parses a "YYYY-MM-DD" calendar date.
func ParseDate(raw string) (time.Time, error) {
	d, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date: %q", raw)
	}
	return d, nil
}

// WeekdayOf returns the weekday of a "YYYY-MM-DD" date string.
func WeekdayOf(raw string) (time.Weekday, error) {
	d, err := ParseDate(raw)
	if err != nil {
		return 0, err
	}
	return d.Weekday(), nil
}
