package daterange

import (
	"errors"
	"iter"
	"time"
)

var (
	ErrInvalidRange = errors.New("daterange: end must not be before start")
)

const day = 24 * time.Hour

// DateRange is a span of calendar days. Start and End are civil dates at UTC midnight;
// Days is the whole-day difference End - Start.
type DateRange struct {
	Start time.Time `json:"start" bson:"start"`
	End   time.Time `json:"end" bson:"end"`
}

// New normalizes both bounds to civil dates and validates ordering.
func New(start, end time.Time) (DateRange, error) {
	dr := DateRange{Start: Civil(start), End: Civil(end)}
	if err := dr.Validate(); err != nil {
		return DateRange{}, err
	}
	return dr, nil
}

// Civil drops the clock part of t, keeping the calendar date as seen in t's own location.
func Civil(t time.Time) time.Time {
	if t.IsZero() {
		return time.Time{}
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (dr DateRange) Validate() error {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ErrInvalidRange
	}
	if dr.End.Before(dr.Start) {
		return ErrInvalidRange
	}
	return nil
}

func (dr DateRange) Days() int {
	return daysBetween(dr.Start, dr.End)
}

// SpanDays counts the calendar days the range covers, both bounds included.
func (dr DateRange) SpanDays() int {
	return dr.Days() + 1
}

// Overlaps reports whether the two ranges share at least one calendar day, bounds included.
func (dr DateRange) Overlaps(other DateRange) bool {
	return !dr.Start.After(other.End) && !dr.End.Before(other.Start)
}

// OverlapDays counts the calendar days both ranges cover, bounds included, or 0.
func (dr DateRange) OverlapDays(other DateRange) int {
	start := dr.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := dr.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return 0
	}
	return daysBetween(start, end) + 1
}

func (dr DateRange) ContainsDate(t time.Time) bool {
	t = Civil(t)
	return !t.Before(dr.Start) && !t.After(dr.End)
}

// Each yields every calendar day from Start to End inclusive.
func (dr DateRange) Each() iter.Seq[time.Time] {
	start, end := dr.Start, dr.End
	return func(yield func(time.Time) bool) {
		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			if !yield(d) {
				return
			}
		}
	}
}

func daysBetween(start, end time.Time) int {
	return int(end.Sub(start).Round(day) / day)
}
