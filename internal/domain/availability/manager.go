package availability

import (
	"errors"
	"fmt"
	"iter"
	"slices"
	"time"

	"rentwear/internal/domain/shared/daterange"
)

var (
	ErrInvalidWindow      = errors.New("availability: window must span at least one day")
	ErrInvalidReservation = errors.New("availability: reservation ends before it starts")
	ErrInvalidPeriod      = errors.New("availability: candidate period ends before it starts")
)

// Manager answers availability questions over a caller-supplied reservation set. It keeps
// no state of its own; the zero value is ready to use.
type Manager struct{}

// IsAvailable reports whether no reservation shares a day with candidate. Bounds are
// inclusive, so a reservation ending on the candidate's first day blocks it.
func (Manager) IsAvailable(candidate daterange.DateRange, reservations []Reservation) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
	}
	if err := validateReservations(reservations); err != nil {
		return false, err
	}
	for _, r := range reservations {
		if candidate.Overlaps(r.Range) {
			return false, nil
		}
	}
	return true, nil
}

// FreeDaysInMonth yields, in order, each day of month's calendar month that no reservation
// covers. The sequence can be ranged over any number of times.
func (Manager) FreeDaysInMonth(month time.Time, reservations []Reservation) (iter.Seq[time.Time], error) {
	if month.IsZero() {
		return nil, ErrInvalidWindow
	}
	if err := validateReservations(reservations); err != nil {
		return nil, err
	}
	ranges := make([]daterange.DateRange, 0, len(reservations))
	for _, r := range reservations {
		ranges = append(ranges, r.Range)
	}
	days := MonthWindow(month)

	return func(yield func(time.Time) bool) {
		for d := range days.Each() {
			covered := slices.ContainsFunc(ranges, func(r daterange.DateRange) bool {
				return r.ContainsDate(d)
			})
			if covered {
				continue
			}
			if !yield(d) {
				return
			}
		}
	}, nil
}

// OccupancyRate is the percentage of window days booked, counting days the way IsAvailable
// does: both bounds of the window and of each reservation are included. Each reservation
// contributes its clipped overlap independently, so overlapping reservations can push the
// figure past 100.
func (Manager) OccupancyRate(reservations []Reservation, window daterange.DateRange) (float64, error) {
	if err := window.Validate(); err != nil {
		return 0, ErrInvalidWindow
	}
	if err := validateReservations(reservations); err != nil {
		return 0, err
	}
	booked := 0
	for _, r := range reservations {
		booked += window.OverlapDays(r.Range)
	}
	return float64(booked) / float64(window.SpanDays()) * 100, nil
}

// MonthWindow spans the first through the last day of t's month.
func MonthWindow(t time.Time) daterange.DateRange {
	y, m, _ := t.Date()
	start := time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
	return daterange.DateRange{Start: start, End: start.AddDate(0, 1, -1)}
}

func validateReservations(reservations []Reservation) error {
	for _, r := range reservations {
		if err := r.Range.Validate(); err != nil {
			return fmt.Errorf("%w: reservation %q", ErrInvalidReservation, r.ID)
		}
	}
	return nil
}
