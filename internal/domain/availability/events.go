package availability

import (
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

type ReservationConfirmed struct {
	ReservationID ReservationID       `json:"reservation_id"`
	ItemID        catalog.ItemID      `json:"item_id"`
	RenterID      string              `json:"renter_id"`
	Range         daterange.DateRange `json:"range"`
	Total         money.Money         `json:"total"`
	At            time.Time           `json:"at"`
}

func (e ReservationConfirmed) EventName() string     { return "reservation.confirmed" }
func (e ReservationConfirmed) AggregateID() string   { return string(e.ItemID) }
func (e ReservationConfirmed) OccurredAt() time.Time { return e.At }

type ReservationCancelled struct {
	ReservationID ReservationID       `json:"reservation_id"`
	ItemID        catalog.ItemID      `json:"item_id"`
	Range         daterange.DateRange `json:"range"`
	Reason        string              `json:"reason"`
	At            time.Time           `json:"at"`
}

func (e ReservationCancelled) EventName() string     { return "reservation.cancelled" }
func (e ReservationCancelled) AggregateID() string   { return string(e.ItemID) }
func (e ReservationCancelled) OccurredAt() time.Time { return e.At }
