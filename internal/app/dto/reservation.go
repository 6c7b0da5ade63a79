package dto

import (
	"time"

	domainavailability "rentwear/internal/domain/availability"
	domainpricing "rentwear/internal/domain/pricing"
)

type ReservationResult struct {
	ReservationID string               `json:"reservation_id"`
	ItemID        string               `json:"item_id"`
	RenterID      string               `json:"renter_id"`
	Start         time.Time            `json:"start"`
	End           time.Time            `json:"end"`
	Status        string               `json:"status"`
	Tier          string               `json:"tier,omitempty"`
	NextTierAt    int                  `json:"next_tier_at,omitempty"`
	Quote         *domainpricing.Quote `json:"quote,omitempty"`
}

func MapReservation(r *domainavailability.Reservation) ReservationResult {
	if r == nil {
		return ReservationResult{}
	}
	return ReservationResult{
		ReservationID: string(r.ID),
		ItemID:        string(r.ItemID),
		RenterID:      r.RenterID,
		Start:         r.Range.Start,
		End:           r.Range.End,
		Status:        string(r.Status),
	}
}
