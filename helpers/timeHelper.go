package helpers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ServiceWindow is how long a booking occupies its table, counted from the start time.
const ServiceWindow = 5 * time.Hour

const DateLayout = "2006-01-02"

var (
	ErrInvalidBookingDate = errors.New("invalid booking date")
	ErrInvalidStartTime   = errors.New("invalid start time")
)

// Window is the half-open interval [Start, End) a booking occupies.
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open windows share at least one instant.
// Adjacent windows (one ends exactly when the other starts) do not overlap.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// ParseBookingDate accepts "YYYY-MM-DD" or an RFC3339 timestamp and returns the
// calendar day in UTC, at midnight.
func ParseBookingDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrInvalidBookingDate
	}
	if t, err := time.Parse(DateLayout, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBookingDate, raw)
	}
	return NormalizeDate(t), nil
}

// NormalizeDate truncates t to midnight UTC of its UTC calendar day.
func NormalizeDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseStartTime parses "HH:MM" (hour may be a single digit).
func ParseStartTime(raw string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) != 2 || len(parts[0]) == 0 || len(parts[0]) > 2 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidStartTime, raw)
	}
	return hour, minute, nil
}

// WindowFor combines a booking date and "HH:MM" start time into an absolute window.
// The end may fall on the next calendar day.
func WindowFor(date time.Time, startTime string) (Window, error) {
	hour, minute, err := ParseStartTime(startTime)
	if err != nil {
		return Window{}, err
	}
	start := NormalizeDate(date).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	return Window{Start: start, End: start.Add(ServiceWindow)}, nil
}

// EndTimeString returns the "HH:MM" end of the service window, rolled past midnight.
func EndTimeString(startTime string) (string, error) {
	hour, minute, err := ParseStartTime(startTime)
	if err != nil {
		return "", err
	}
	endHour := (hour + int(ServiceWindow/time.Hour)) % 24
	return fmt.Sprintf("%02d:%02d", endHour, minute), nil
}

// FormatDate renders a stored booking date as a plain calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// NeighbourDates returns the day before, the day itself and the day after, all at
// midnight UTC. Windows crossing midnight can only collide with these days.
func NeighbourDates(date time.Time) []time.Time {
	d := NormalizeDate(date)
	return []time.Time{d.AddDate(0, 0, -1), d, d.AddDate(0, 0, 1)}
}
