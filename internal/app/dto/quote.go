package dto

import (
	"time"

	domainpricing "rentwear/internal/domain/pricing"
)

// RentalQuote is the priced answer to a rental request together with the market signals
// that went into it.
type RentalQuote struct {
	ItemID              string              `json:"item_id"`
	RenterID            string              `json:"renter_id,omitempty"`
	Start               time.Time           `json:"start"`
	End                 time.Time           `json:"end"`
	Available           bool                `json:"available"`
	Seasonality         string              `json:"seasonality"`
	Demand              string              `json:"demand"`
	OccupancyPercent    float64             `json:"occupancy_percent"`
	AvailabilityPercent float64             `json:"availability_percent"`
	RecommendedDays     int                 `json:"recommended_days"`
	Profitable          bool                `json:"profitable"`
	Quote               domainpricing.Quote `json:"quote"`
}

type RentOrBuyAdvice struct {
	ItemID          string                       `json:"item_id"`
	OriginalPrice   int64                        `json:"original_price"`
	RecommendedDays int                          `json:"recommended_days"`
	Recommendation  domainpricing.Recommendation `json:"recommendation"`
}
