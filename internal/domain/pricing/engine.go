package pricing

import (
	"fmt"
	"math"
	"time"

	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

const (
	baseDailyRate     = 0.04
	depositRate       = 0.25
	serviceFeeRate    = 0.10
	taxRate           = 0.12
	discountFloorRate = 0.30
	weekendSurcharge  = 1.15
	scarcitySurcharge = 1.3
	surplusAdjustment = 0.9
	scarcityThreshold = 20.0
	surplusThreshold  = 80.0
	firstTimeRate     = 0.10
	lowSeasonRate     = 0.15
	midweekSeasonRate = 0.08
	percentBase       = 100.0
	percentPrecision  = 100.0
)

var seasonMultipliers = map[Seasonality]float64{
	SeasonHigh:   1.3,
	SeasonMedium: 1.0,
	SeasonLow:    0.8,
}

var demandMultipliers = map[Demand]float64{
	DemandHigh:   1.25,
	DemandMedium: 1.0,
	DemandLow:    0.85,
}

var loyaltyRates = map[Tier]float64{
	TierBronze:   0.02,
	TierSilver:   0.05,
	TierGold:     0.08,
	TierPlatinum: 0.12,
}

// bulkTiers is ordered longest first; the first tier whose MinDays fits applies.
var bulkTiers = []struct {
	MinDays int
	Rate    float64
}{
	{MinDays: 30, Rate: 0.20},
	{MinDays: 14, Rate: 0.15},
	{MinDays: 7, Rate: 0.10},
	{MinDays: 3, Rate: 0.05},
}

// Engine prices rentals from an immutable rate card. It holds no other state and is safe
// for concurrent use.
type Engine struct {
	tables Tables
}

func NewEngine(tables Tables) *Engine {
	return &Engine{tables: tables.clone()}
}

// Quote produces the itemized rental price. requester may be nil for anonymous quotes.
func (e *Engine) Quote(profile ItemProfile, period daterange.DateRange, requester *RequesterProfile) (Quote, error) {
	if profile.OriginalPrice <= 0 {
		return Quote{}, ErrInvalidProfile
	}
	if err := period.Validate(); err != nil {
		return Quote{}, fmt.Errorf("%w: %w", ErrInvalidPeriod, err)
	}
	days := period.Days()
	if days < 1 {
		return Quote{}, ErrInvalidPeriod
	}

	tables := e.rateCard()
	original := float64(profile.OriginalPrice)

	baseDaily := money.INR(money.Round(original * baseDailyRate * tables.CategoryMultiplier(profile.Category) * tables.LocationMultiplier(profile.Location)))
	daily := portion(baseDaily, dynamicMultiplier(profile, period))
	subtotal := daily.Multiply(int64(days))

	discounts := Discounts{
		Bulk:      portion(subtotal, bulkRate(days)),
		Loyalty:   money.INR(0),
		FirstTime: money.INR(0),
		Seasonal:  money.INR(0),
	}
	if requester != nil {
		discounts.Loyalty = portion(subtotal, loyaltyRates[requester.Tier])
		if requester.FirstTime {
			discounts.FirstTime = portion(subtotal, firstTimeRate)
		}
		discounts.Seasonal = portion(subtotal, seasonalRate(profile.Seasonality, period.Start))
	}
	totalDiscounts, err := money.Sum(discounts.Bulk, discounts.Loyalty, discounts.FirstTime, discounts.Seasonal)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: discounts: %w", err)
	}
	discounts.Total = totalDiscounts

	discounted, err := subtotal.Sub(totalDiscounts)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: discounted price: %w", err)
	}
	discounted = applyDiscountFloor(subtotal, discounted)

	deposit := money.INR(money.Round(original * depositRate))
	cleaning := money.INR(tables.CleaningFee(profile.Category))
	service := portion(discounted, serviceFeeRate)
	taxable, err := discounted.Add(service)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: taxable amount: %w", err)
	}
	tax := portion(taxable, taxRate)
	total, err := money.Sum(discounted, cleaning, service, tax, deposit)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: final total: %w", err)
	}

	purchase := money.INR(profile.OriginalPrice)
	savings, err := purchase.Sub(total)
	if err != nil {
		return Quote{}, fmt.Errorf("pricing: savings: %w", err)
	}
	if savings.Amount < 0 {
		savings = money.INR(0)
	}

	return Quote{
		Days:                  days,
		BaseDailyRate:         baseDaily,
		DailyRate:             daily,
		BaseRentalPrice:       subtotal,
		DiscountedRentalPrice: discounted,
		SecurityDeposit:       deposit,
		CleaningFee:           cleaning,
		ServiceFee:            service,
		Tax:                   tax,
		FinalTotal:            total,
		Discounts:             discounts,
		Comparison: Comparison{
			OriginalPrice:  purchase,
			Savings:        savings,
			SavingsPercent: math.Round(savingsRatio(savings, purchase)*percentPrecision) / percentPrecision,
		},
	}, nil
}

func (e *Engine) rateCard() Tables {
	if e == nil || e.tables.empty() {
		return DefaultTables()
	}
	return e.tables
}

// dynamicMultiplier composes season, demand, availability and weekend adjustments into a
// single factor so the daily rate is rounded once.
func dynamicMultiplier(profile ItemProfile, period daterange.DateRange) float64 {
	factor := lookupOrNeutral(seasonMultipliers, profile.Seasonality) * lookupOrNeutral(demandMultipliers, profile.Demand)
	switch {
	case profile.AvailabilityPercent < scarcityThreshold:
		factor *= scarcitySurcharge
	case profile.AvailabilityPercent > surplusThreshold:
		factor *= surplusAdjustment
	}
	if isWeekend(period.Start) || isWeekend(period.End) {
		factor *= weekendSurcharge
	}
	return factor
}

// portion applies rate to m and rounds to whole units.
func portion(m money.Money, rate float64) money.Money {
	return money.Money{Amount: money.Round(float64(m.Amount) * rate), Currency: m.Currency}
}

// applyDiscountFloor keeps the discounted price at or above discountFloorRate of subtotal,
// rounded up.
func applyDiscountFloor(subtotal, discounted money.Money) money.Money {
	floor := money.Ceil(float64(subtotal.Amount) * discountFloorRate)
	if discounted.Amount < floor {
		return money.Money{Amount: floor, Currency: subtotal.Currency}
	}
	return discounted
}

// savingsRatio is savings as an unrounded percentage of the purchase price.
func savingsRatio(savings, purchase money.Money) float64 {
	if purchase.Amount <= 0 || savings.Amount <= 0 {
		return 0
	}
	return float64(savings.Amount) / float64(purchase.Amount) * percentBase
}

func bulkRate(days int) float64 {
	for _, tier := range bulkTiers {
		if days >= tier.MinDays {
			return tier.Rate
		}
	}
	return 0
}

func seasonalRate(season Seasonality, start time.Time) float64 {
	switch {
	case season == SeasonLow:
		return lowSeasonRate
	case season == SeasonMedium && isWeekday(start):
		return midweekSeasonRate
	default:
		return 0
	}
}

// isWeekend covers Friday through Sunday, the window that carries the weekend surcharge.
func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Friday, time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

func isWeekday(t time.Time) bool {
	return t.Weekday() != time.Saturday && t.Weekday() != time.Sunday
}

func lookupOrNeutral[K comparable](table map[K]float64, key K) float64 {
	if v, ok := table[key]; ok {
		return v
	}
	return 1.0
}
