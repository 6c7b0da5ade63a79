package pricing

import (
	"errors"
	"strings"

	"rentwear/internal/domain/shared/money"
)

var (
	ErrInvalidPeriod  = errors.New("pricing: rental period must span at least one day")
	ErrInvalidProfile = errors.New("pricing: original price must be positive")
)

type Seasonality string

const (
	SeasonHigh   Seasonality = "high"
	SeasonMedium Seasonality = "medium"
	SeasonLow    Seasonality = "low"
)

type Demand string

const (
	DemandHigh   Demand = "high"
	DemandMedium Demand = "medium"
	DemandLow    Demand = "low"
)

// Tier is a loyalty tier. Tiers are ordered bronze < silver < gold < platinum.
type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// Rank orders tiers; unknown tiers rank below bronze.
func (t Tier) Rank() int {
	switch t {
	case TierBronze:
		return 1
	case TierSilver:
		return 2
	case TierGold:
		return 3
	case TierPlatinum:
		return 4
	default:
		return 0
	}
}

func ParseTier(raw string) Tier {
	t := Tier(strings.ToLower(strings.TrimSpace(raw)))
	if t.Rank() == 0 {
		return TierBronze
	}
	return t
}

// ItemProfile carries the pricing-relevant attributes of a catalog item for one quote.
type ItemProfile struct {
	Category            string
	Brand               string
	OriginalPrice       int64
	Location            string
	Seasonality         Seasonality
	AvailabilityPercent float64
	Demand              Demand
}

// RequesterProfile describes the renter asking for a quote. The engine only reads it.
type RequesterProfile struct {
	FirstTime        bool
	Tier             Tier
	CompletedRentals int
	AverageRating    float64
}

type Discounts struct {
	Seasonal  money.Money `json:"seasonal"`
	Loyalty   money.Money `json:"loyalty"`
	Bulk      money.Money `json:"bulk"`
	FirstTime money.Money `json:"first_time"`
	Total     money.Money `json:"total"`
}

// Comparison contrasts the all-in rental cost with buying the item outright.
type Comparison struct {
	OriginalPrice  money.Money `json:"original_price"`
	Savings        money.Money `json:"savings"`
	SavingsPercent float64     `json:"savings_percent"`
}

// Quote is the itemized price of renting an item for a period.
type Quote struct {
	Days                  int         `json:"days"`
	BaseDailyRate         money.Money `json:"base_daily_rate"`
	DailyRate             money.Money `json:"daily_rate"`
	BaseRentalPrice       money.Money `json:"base_rental_price"`
	DiscountedRentalPrice money.Money `json:"discounted_rental_price"`
	SecurityDeposit       money.Money `json:"security_deposit"`
	CleaningFee           money.Money `json:"cleaning_fee"`
	ServiceFee            money.Money `json:"service_fee"`
	Tax                   money.Money `json:"tax"`
	FinalTotal            money.Money `json:"final_total"`
	Discounts             Discounts   `json:"discounts"`
	Comparison            Comparison  `json:"comparison"`
}
