package daterange

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func civilDay(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNewNormalizesToCivilDates(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	dr, err := New(time.Date(2024, 3, 4, 23, 30, 0, 0, ist), time.Date(2024, 3, 7, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, civilDay(2024, 3, 4), dr.Start)
	assert.Equal(t, civilDay(2024, 3, 7), dr.End)
	assert.Equal(t, 3, dr.Days())
}

func TestNewRejectsInvertedRange(t *testing.T) {
	_, err := New(civilDay(2024, 3, 7), civilDay(2024, 3, 4))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(time.Time{}, civilDay(2024, 3, 4))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestSameDayRangeHasZeroDays(t *testing.T) {
	dr, err := New(civilDay(2024, 3, 4), civilDay(2024, 3, 4))
	require.NoError(t, err)
	assert.Equal(t, 0, dr.Days())
}

func TestOverlapsIsInclusive(t *testing.T) {
	base := DateRange{Start: civilDay(2024, 1, 10), End: civilDay(2024, 1, 15)}

	tests := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"inside", DateRange{Start: civilDay(2024, 1, 11), End: civilDay(2024, 1, 13)}, true},
		{"shares end day", DateRange{Start: civilDay(2024, 1, 15), End: civilDay(2024, 1, 18)}, true},
		{"shares start day", DateRange{Start: civilDay(2024, 1, 5), End: civilDay(2024, 1, 10)}, true},
		{"before", DateRange{Start: civilDay(2024, 1, 1), End: civilDay(2024, 1, 9)}, false},
		{"after", DateRange{Start: civilDay(2024, 1, 16), End: civilDay(2024, 1, 20)}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Overlaps(tt.other))
			assert.Equal(t, tt.want, tt.other.Overlaps(base))
		})
	}
}

func TestOverlapDaysCountsBothBounds(t *testing.T) {
	window := DateRange{Start: civilDay(2024, 1, 1), End: civilDay(2024, 1, 31)}
	require.Equal(t, 31, window.SpanDays())

	assert.Equal(t, 6, window.OverlapDays(DateRange{Start: civilDay(2024, 1, 10), End: civilDay(2024, 1, 15)}))
	assert.Equal(t, 4, window.OverlapDays(DateRange{Start: civilDay(2023, 12, 20), End: civilDay(2024, 1, 4)}))
	assert.Equal(t, 31, window.OverlapDays(window))
	assert.Equal(t, 1, window.OverlapDays(DateRange{Start: civilDay(2024, 1, 31), End: civilDay(2024, 2, 9)}), "shared end day")
	assert.Equal(t, 1, window.OverlapDays(DateRange{Start: civilDay(2024, 1, 5), End: civilDay(2024, 1, 5)}))
	assert.Zero(t, window.OverlapDays(DateRange{Start: civilDay(2024, 2, 1), End: civilDay(2024, 2, 9)}))
}

func TestEachYieldsInclusiveDays(t *testing.T) {
	dr := DateRange{Start: civilDay(2024, 2, 27), End: civilDay(2024, 3, 2)}

	var got []time.Time
	for d := range dr.Each() {
		got = append(got, d)
	}
	assert.Equal(t, []time.Time{
		civilDay(2024, 2, 27), civilDay(2024, 2, 28), civilDay(2024, 2, 29), civilDay(2024, 3, 1), civilDay(2024, 3, 2),
	}, got)
}

func TestContainsDate(t *testing.T) {
	dr := DateRange{Start: civilDay(2024, 5, 1), End: civilDay(2024, 5, 3)}
	assert.True(t, dr.ContainsDate(time.Date(2024, 5, 3, 18, 0, 0, 0, time.UTC)))
	assert.False(t, dr.ContainsDate(civilDay(2024, 5, 4)))
}
