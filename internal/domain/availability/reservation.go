package availability

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/events"
	"rentwear/internal/domain/shared/money"
)

var (
	ErrReservationOverlap  = errors.New("availability: range overlaps an existing reservation")
	ErrReservationNotFound = errors.New("availability: reservation not found")
	ErrInvalidState        = errors.New("availability: invalid reservation state transition")
)

type ReservationID string

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
)

// Reservation is a committed hold on an item for a range of days.
type Reservation struct {
	ID        ReservationID
	ItemID    catalog.ItemID
	RenterID  string
	Range     daterange.DateRange
	Status    Status
	Total     money.Money
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ReservationID) (*Reservation, error)
	ListByItem(ctx context.Context, itemID catalog.ItemID) ([]Reservation, error)
	Save(ctx context.Context, reservation *Reservation) error
}

type CreateParams struct {
	ID       ReservationID
	ItemID   catalog.ItemID
	RenterID string
	Range    daterange.DateRange
	Total    money.Money
	Now      time.Time
}

// NewReservation confirms a hold on params.Range. existing must hold the item's current
// reservations; any blocking overlap fails with ErrReservationOverlap.
func NewReservation(params CreateParams, existing []Reservation) (*Reservation, error) {
	if params.ItemID == "" {
		return nil, errors.New("availability: item id required")
	}
	if params.RenterID == "" {
		return nil, errors.New("availability: renter id required")
	}
	free, err := Manager{}.IsAvailable(params.Range, Blocking(existing))
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, ErrReservationOverlap
	}
	now := params.Now.UTC()
	r := &Reservation{
		ID:        params.ID,
		ItemID:    params.ItemID,
		RenterID:  params.RenterID,
		Range:     params.Range,
		Status:    StatusConfirmed,
		Total:     params.Total,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.Record(ReservationConfirmed{ReservationID: r.ID, ItemID: r.ItemID, RenterID: r.RenterID, Range: r.Range, Total: r.Total, At: now})
	return r, nil
}

func (r *Reservation) Cancel(reason string, now time.Time) error {
	switch r.Status {
	case StatusPending, StatusConfirmed:
	default:
		return ErrInvalidState
	}
	r.Status = StatusCancelled
	r.UpdatedAt = now.UTC()
	r.Record(ReservationCancelled{ReservationID: r.ID, ItemID: r.ItemID, Range: r.Range, Reason: reason, At: r.UpdatedAt})
	return nil
}

// Blocks reports whether the reservation still occupies its days.
func (r Reservation) Blocks() bool {
	return r.Status != StatusCancelled
}

// Blocking drops reservations that no longer hold their days.
func Blocking(reservations []Reservation) []Reservation {
	out := make([]Reservation, 0, len(reservations))
	for _, r := range reservations {
		if r.Blocks() {
			out = append(out, r)
		}
	}
	return out
}
