package pricing

import (
	"math"
	"strings"
	"time"
)

const (
	maxRecommendedDays  = 30
	priceUnitPerDay     = 1000.0
	profitableThreshold = 40.0
)

// RecommendedDuration suggests a rental length in days that grows with the item's value.
func RecommendedDuration(originalPrice int64) int {
	days := int(math.Ceil(float64(originalPrice) / priceUnitPerDay))
	if days < 1 {
		return 1
	}
	if days > maxRecommendedDays {
		return maxRecommendedDays
	}
	return days
}

// IsProfitable reports whether renting saves the requester a meaningful share of the
// purchase price. It compares the exact ratio, not the rounded SavingsPercent.
func IsProfitable(q Quote) bool {
	return savingsRatio(q.Comparison.Savings, q.Comparison.OriginalPrice) >= profitableThreshold
}

type UsageFrequency string

const (
	UsageOnce       UsageFrequency = "once"
	UsageOccasional UsageFrequency = "occasional"
	UsageRegular    UsageFrequency = "regular"
	UsageFrequent   UsageFrequency = "frequent"
)

func ParseUsage(raw string) UsageFrequency {
	u := UsageFrequency(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := rentThresholds[u]; !ok {
		return UsageOccasional
	}
	return u
}

type Choice string

const (
	ChoiceRent Choice = "rent"
	ChoiceBuy  Choice = "buy"
)

type Recommendation struct {
	Choice    Choice         `json:"choice"`
	Usage     UsageFrequency `json:"usage"`
	Threshold int64          `json:"threshold"`
	Reason    string         `json:"reason"`
}

// rentThresholds is the minimum original price at which renting beats buying for each usage
// tier. A negative threshold means buying always wins.
var rentThresholds = map[UsageFrequency]int64{
	UsageOnce:       0,
	UsageOccasional: 1500,
	UsageRegular:    8000,
	UsageFrequent:   -1,
}

func RecommendRentOrBuy(originalPrice int64, usage UsageFrequency) Recommendation {
	threshold, ok := rentThresholds[usage]
	if !ok {
		usage = UsageOccasional
		threshold = rentThresholds[usage]
	}
	rec := Recommendation{Usage: usage, Threshold: threshold}
	switch {
	case threshold < 0:
		rec.Choice = ChoiceBuy
		rec.Reason = "worn often enough that owning costs less than repeated rentals"
	case originalPrice >= threshold:
		rec.Choice = ChoiceRent
		rec.Reason = "renting covers this usage for a fraction of the purchase price"
	default:
		rec.Choice = ChoiceBuy
		rec.Reason = "the item is inexpensive enough that buying is simpler"
	}
	return rec
}

const (
	highDemandOccupancy   = 70.0
	mediumDemandOccupancy = 30.0
)

// DemandFor maps an occupancy percentage onto a demand level.
func DemandFor(occupancy float64) Demand {
	switch {
	case occupancy >= highDemandOccupancy:
		return DemandHigh
	case occupancy >= mediumDemandOccupancy:
		return DemandMedium
	default:
		return DemandLow
	}
}

// AvailabilityFor is the share of the window still free. Overbooked windows report 0.
func AvailabilityFor(occupancy float64) float64 {
	return math.Max(0, math.Min(100, 100-occupancy))
}

// seasonCalendar follows the wedding and festive calendar: October to February is peak,
// the summer and monsoon months are slow.
var seasonCalendar = map[time.Month]Seasonality{
	time.January:   SeasonHigh,
	time.February:  SeasonHigh,
	time.March:     SeasonMedium,
	time.April:     SeasonMedium,
	time.May:       SeasonLow,
	time.June:      SeasonLow,
	time.July:      SeasonLow,
	time.August:    SeasonMedium,
	time.September: SeasonMedium,
	time.October:   SeasonHigh,
	time.November:  SeasonHigh,
	time.December:  SeasonHigh,
}

func SeasonFor(month time.Month) Seasonality {
	if s, ok := seasonCalendar[month]; ok {
		return s
	}
	return SeasonMedium
}

func ParseSeasonality(raw string) (Seasonality, bool) {
	switch s := Seasonality(strings.ToLower(strings.TrimSpace(raw))); s {
	case SeasonHigh, SeasonMedium, SeasonLow:
		return s, true
	default:
		return "", false
	}
}
