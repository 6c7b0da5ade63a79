package dto

import "time"

type CalendarReservation struct {
	ReservationID string    `json:"reservation_id"`
	Start         time.Time `json:"start"`
	End           time.Time `json:"end"`
	Status        string    `json:"status"`
}

// ItemCalendar describes one calendar month of an item.
type ItemCalendar struct {
	ItemID           string                `json:"item_id"`
	Month            string                `json:"month"`
	FreeDays         []string              `json:"free_days"`
	OccupancyPercent float64               `json:"occupancy_percent"`
	Reservations     []CalendarReservation `json:"reservations"`
}
