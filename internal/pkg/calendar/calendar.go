// Package calendar works with calendar days. A day is a time.Time at 00:00 UTC,
// which is also how pgx decodes Postgres DATE columns.
package calendar

import (
	"net/http"
	"strings"
	"time"

	"github.com/nekogravitycat/hotel-booking-backend/internal/pkg/apperror"
)

// DateLayout is the wire format for plain dates.
const DateLayout = "2006-01-02"

// MaxStayNights bounds the length of a priced or booked stay.
const MaxStayNights = 365

const secondsPerDay = 24 * 60 * 60

var (
	ErrInvalidDate = apperror.New(http.StatusBadRequest, "invalid date, expected YYYY-MM-DD or RFC3339")
	ErrStayTooLong = apperror.New(http.StatusBadRequest, "stay must not exceed 365 nights")
)

// Day returns the calendar day of t, read in t's own location.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Date builds a day from its parts.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Parse accepts "2006-01-02" or an RFC3339 timestamp and returns its calendar day.
func Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return Day(t), nil
	}
	return time.Time{}, ErrInvalidDate
}

// Format renders a day as YYYY-MM-DD.
func Format(t time.Time) string {
	return t.Format(DateLayout)
}

// AddDays moves a day forward (or backward for negative n).
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// DaysBetween counts whole days from start to end. It is negative if end is before start.
func DaysBetween(start, end time.Time) int {
	s, e := Day(start), Day(end)
	// Unix seconds instead of time.Duration, which saturates after about 292 years.
	return int((e.Unix() - s.Unix()) / secondsPerDay)
}

// Nights lists every day in the half-open range [start, end).
func Nights(start, end time.Time) []time.Time {
	n := DaysBetween(start, end)
	if n <= 0 {
		return nil
	}
	out := make([]time.Time, 0, n)
	d := Day(start)
	for i := 0; i < n; i++ {
		out = append(out, AddDays(d, i))
	}
	return out
}

// Overlaps reports whether the half-open ranges [aStart, aEnd) and [bStart, bEnd) intersect.
// Ranges that only touch at a boundary do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && aEnd.After(bStart)
}
