package stats

import (
	"errors"
	"fmt"
	"time"
)

const DateLayout = "2006-01-02"

// MaxRangeDays bounds a report range. Ten years covers every quick range
// with room to spare.
const MaxRangeDays = 3660

var (
	ErrInvalidDate   = errors.New("invalid date: expected YYYY-MM-DD")
	ErrInvalidRange  = errors.New("invalid range: end date before start date")
	ErrRangeTooLarge = fmt.Errorf("invalid range: more than %d days", MaxRangeDays)
)

// ParseDate reads a calendar day. The result is midnight UTC, so day
// arithmetic never crosses a DST boundary.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the calendar day of now in loc.
func Today(now time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(DateLayout)
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(t.AddDate(0, 0, n)), nil
}

// DateRange lists every calendar day from start to end inclusive.
func DateRange(start, end string) ([]string, error) {
	from, err := ParseDate(start)
	if err != nil {
		return nil, err
	}
	to, err := ParseDate(end)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, ErrInvalidRange
	}
	// Unix seconds, since a Duration saturates after about 292 years.
	n := (to.Unix()-from.Unix())/(24*60*60) + 1
	if n > MaxRangeDays {
		return nil, ErrRangeTooLarge
	}

	days := make([]string, 0, n)
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		days = append(days, FormatDate(d))
	}
	return days, nil
}

// QuickRange is the preset "last N days" window ending today. The window
// spans N+1 calendar days because both ends are inclusive.
func QuickRange(today string, days int) (start, end string, err error) {
	start, err = AddDays(today, -days)
	if err != nil {
		return "", "", err
	}
	return start, today, nil
}

func IsFriday(date string) bool {
	t, err := ParseDate(date)
	if err != nil {
		return false
	}
	return t.Weekday() == time.Friday
}
