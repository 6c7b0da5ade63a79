package availability

import (
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/domain/shared/daterange"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func span(t *testing.T, start, end time.Time) daterange.DateRange {
	t.Helper()
	dr, err := daterange.New(start, end)
	require.NoError(t, err)
	return dr
}

func reservation(t *testing.T, id string, start, end time.Time) Reservation {
	t.Helper()
	return Reservation{ID: ReservationID(id), ItemID: "item-1", RenterID: "r-1", Range: span(t, start, end), Status: StatusConfirmed}
}

func TestIsAvailableInclusiveBounds(t *testing.T) {
	existing := []Reservation{reservation(t, "a", date(2024, 3, 10), date(2024, 3, 15))}
	var m Manager

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{"ends day before", date(2024, 3, 5), date(2024, 3, 9), true},
		{"ends on first booked day", date(2024, 3, 5), date(2024, 3, 10), false},
		{"starts on last booked day", date(2024, 3, 15), date(2024, 3, 20), false},
		{"starts day after", date(2024, 3, 16), date(2024, 3, 20), true},
		{"inside", date(2024, 3, 11), date(2024, 3, 12), false},
		{"covers", date(2024, 3, 1), date(2024, 3, 31), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := m.IsAvailable(span(t, tt.start, tt.end), existing)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestIsAvailableWithNoReservations(t *testing.T) {
	ok, err := Manager{}.IsAvailable(span(t, date(2024, 1, 1), date(2024, 1, 1)), nil)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsAvailableRejectsInvalidInput(t *testing.T) {
	var m Manager
	backwards := daterange.DateRange{Start: date(2024, 3, 10), End: date(2024, 3, 1)}

	_, err := m.IsAvailable(backwards, nil)
	assert.ErrorIs(t, err, ErrInvalidPeriod)

	bad := Reservation{ID: "bad", Range: backwards}
	_, err = m.IsAvailable(span(t, date(2024, 3, 1), date(2024, 3, 2)), []Reservation{bad})
	assert.ErrorIs(t, err, ErrInvalidReservation)
}

func TestFreeDaysInMonth(t *testing.T) {
	existing := []Reservation{reservation(t, "a", date(2024, 2, 10), date(2024, 2, 12))}

	seq, err := Manager{}.FreeDaysInMonth(date(2024, 2, 20), existing)
	require.NoError(t, err)

	days := slices.Collect(seq)
	assert.Len(t, days, 26)
	assert.Equal(t, date(2024, 2, 1), days[0])
	assert.Equal(t, date(2024, 2, 29), days[len(days)-1])
	assert.NotContains(t, days, date(2024, 2, 10))
	assert.NotContains(t, days, date(2024, 2, 12))
	assert.Contains(t, days, date(2024, 2, 13))
	assert.True(t, slices.IsSortedFunc(days, func(a, b time.Time) int { return a.Compare(b) }))

	assert.Len(t, slices.Collect(seq), 26, "sequence can be ranged again")
}

func TestFreeDaysInMonthEarlyStop(t *testing.T) {
	seq, err := Manager{}.FreeDaysInMonth(date(2024, 4, 1), nil)
	require.NoError(t, err)

	var got []time.Time
	for d := range seq {
		got = append(got, d)
		if len(got) == 3 {
			break
		}
	}
	assert.Equal(t, []time.Time{date(2024, 4, 1), date(2024, 4, 2), date(2024, 4, 3)}, got)
}

func TestFreeDaysInMonthErrors(t *testing.T) {
	_, err := Manager{}.FreeDaysInMonth(time.Time{}, nil)
	assert.ErrorIs(t, err, ErrInvalidWindow)

	bad := Reservation{ID: "bad", Range: daterange.DateRange{Start: date(2024, 2, 5), End: date(2024, 2, 1)}}
	_, err = Manager{}.FreeDaysInMonth(date(2024, 2, 1), []Reservation{bad})
	assert.ErrorIs(t, err, ErrInvalidReservation)
}

func TestOccupancyRate(t *testing.T) {
	window := MonthWindow(date(2024, 2, 14))
	require.Equal(t, 29, window.SpanDays())
	full := reservation(t, "full", date(2024, 2, 1), date(2024, 2, 29))
	var m Manager

	rate, err := m.OccupancyRate(nil, window)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)

	rate, err = m.OccupancyRate([]Reservation{reservation(t, "before", date(2024, 1, 1), date(2024, 1, 20))}, window)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)

	rate, err = m.OccupancyRate([]Reservation{full}, window)
	require.NoError(t, err)
	assert.Equal(t, 100.0, rate)

	rate, err = m.OccupancyRate([]Reservation{full, full}, window)
	require.NoError(t, err)
	assert.InDelta(t, 200.0, rate, 1e-9, "overlapping reservations are not clamped")

	rate, err = m.OccupancyRate([]Reservation{reservation(t, "mid", date(2024, 2, 10), date(2024, 2, 12))}, window)
	require.NoError(t, err)
	assert.InDelta(t, 3.0/29*100, rate, 1e-9)

	rate, err = m.OccupancyRate([]Reservation{reservation(t, "spill", date(2024, 1, 25), date(2024, 2, 1))}, window)
	require.NoError(t, err)
	assert.InDelta(t, 1.0/29*100, rate, 1e-9, "shared first day is booked")
}

func TestOccupancyMatchesFreeDays(t *testing.T) {
	tests := []struct {
		name     string
		existing []Reservation
	}{
		{"none", nil},
		{"whole month", []Reservation{reservation(t, "a", date(2024, 2, 1), date(2024, 2, 29))}},
		{"single day", []Reservation{reservation(t, "a", date(2024, 2, 14), date(2024, 2, 14))}},
		{"spans month start", []Reservation{reservation(t, "a", date(2024, 1, 25), date(2024, 2, 1))}},
		{"spans month end", []Reservation{reservation(t, "a", date(2024, 2, 28), date(2024, 3, 3))}},
		{"adjacent", []Reservation{
			reservation(t, "a", date(2024, 2, 3), date(2024, 2, 7)),
			reservation(t, "b", date(2024, 2, 8), date(2024, 2, 8)),
			reservation(t, "c", date(2024, 2, 20), date(2024, 2, 22)),
		}},
	}
	window := MonthWindow(date(2024, 2, 1))
	monthDays := float64(window.SpanDays())
	var m Manager
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := m.FreeDaysInMonth(window.Start, tt.existing)
			require.NoError(t, err)
			free := len(slices.Collect(seq))

			rate, err := m.OccupancyRate(tt.existing, window)
			require.NoError(t, err)
			assert.InDelta(t, (monthDays-float64(free))/monthDays*100, rate, 1e-9)
		})
	}
}

func TestOccupancyRateRejectsInvalidWindow(t *testing.T) {
	var m Manager
	_, err := m.OccupancyRate(nil, daterange.DateRange{})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	_, err = m.OccupancyRate(nil, daterange.DateRange{Start: date(2024, 2, 10), End: date(2024, 2, 1)})
	assert.ErrorIs(t, err, ErrInvalidWindow)

	rate, err := m.OccupancyRate([]Reservation{reservation(t, "a", date(2024, 2, 1), date(2024, 2, 1))}, span(t, date(2024, 2, 1), date(2024, 2, 1)))
	require.NoError(t, err)
	assert.Equal(t, 100.0, rate, "single-day window")
}

func TestMonthWindow(t *testing.T) {
	w := MonthWindow(time.Date(2024, 12, 31, 23, 0, 0, 0, time.UTC))
	assert.Equal(t, date(2024, 12, 1), w.Start)
	assert.Equal(t, date(2024, 12, 31), w.End)
	assert.Equal(t, 29, MonthWindow(date(2024, 2, 5)).SpanDays())
}

func TestInvalidCandidateWrapsRangeError(t *testing.T) {
	backwards := daterange.DateRange{Start: date(2024, 3, 10), End: date(2024, 3, 1)}
	_, err := Manager{}.IsAvailable(backwards, nil)
	assert.ErrorIs(t, err, daterange.ErrInvalidRange)
}
