package schedule

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format for all schedule dates.
const DateLayout = "2006-01-02"

// ErrInvalidRange reports an inverted date range (end before start).
// An inverted range indicates an input-validation bug upstream, so unlike
// missing-reference conditions it is surfaced as a hard failure.
var ErrInvalidRange = errors.New("invalid date range")

// ErrSingleDay reports a midpoint split attempted on a one-day range.
var ErrSingleDay = errors.New("cannot split a single-day range")

// Date is a calendar day in ISO form ("2006-01-02").
//
// Zero-padded ISO dates order lexically, so Date values compare with the
// ordinary string operators. Methods that need real calendar arithmetic
// parse on demand.
type Date string

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("parse date %q: %w", s, err)
	}
	return DateOf(t), nil
}

// DateOf truncates t to its calendar day in t's location.
func DateOf(t time.Time) Date {
	return Date(t.Format(DateLayout))
}

func (d Date) Valid() bool {
	_, err := time.Parse(DateLayout, string(d))
	return err == nil
}

func (d Date) time() (time.Time, error) {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", string(d), err)
	}
	return t, nil
}

// AddDays returns d shifted by n calendar days (n may be negative).
func AddDays(d Date, n int) (Date, error) {
	t, err := d.time()
	if err != nil {
		return "", err
	}
	return DateOf(t.AddDate(0, 0, n)), nil
}

// DaysInclusive counts the days in [start, end], both ends included.
// A single day counts as 1. Returns ErrInvalidRange when end < start.
func DaysInclusive(start, end Date) (int, error) {
	st, err := start.time()
	if err != nil {
		return 0, err
	}
	et, err := end.time()
	if err != nil {
		return 0, err
	}
	if et.Before(st) {
		return 0, fmt.Errorf("%w: %s..%s", ErrInvalidRange, start, end)
	}
	return int(et.Sub(st)/(24*time.Hour)) + 1, nil
}

// Range is an inclusive span of calendar days.
type Range struct {
	Start Date
	End   Date
}

// Contains reports whether d falls inside the range, ends included.
func (r Range) Contains(d Date) bool {
	return r.Start <= d && d <= r.End
}

// Days counts the range's length in days.
func (r Range) Days() (int, error) {
	return DaysInclusive(r.Start, r.End)
}

// MidpointSplit cuts r into two contiguous halves. With n days total the
// first half gets floor(n/2) days, the second the remainder. One-day
// ranges cannot be split and return ErrSingleDay.
func MidpointSplit(r Range) (Range, Range, error) {
	n, err := r.Days()
	if err != nil {
		return Range{}, Range{}, err
	}
	if n < 2 {
		return Range{}, Range{}, fmt.Errorf("%w: %s", ErrSingleDay, r.Start)
	}
	firstLen := n / 2
	firstEnd, err := AddDays(r.Start, firstLen-1)
	if err != nil {
		return Range{}, Range{}, err
	}
	secondStart, err := AddDays(r.Start, firstLen)
	if err != nil {
		return Range{}, Range{}, err
	}
	return Range{Start: r.Start, End: firstEnd}, Range{Start: secondStart, End: r.End}, nil
}
