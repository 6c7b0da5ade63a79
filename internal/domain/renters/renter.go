package renters

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentwear/internal/domain/loyalty"
	"rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/events"
)

var (
	ErrIDRequired     = errors.New("renters: id is required")
	ErrRenterNotFound = errors.New("renters: renter not found")
)

type ID string

// Renter is the account-side state the pricing flow needs about a requester.
type Renter struct {
	ID               ID
	Tier             pricing.Tier
	CompletedRentals int
	AverageRating    float64
	UpdatedAt        time.Time
	Version          int64
	events.EventRecorder
}

type Repository interface {
	ByID(ctx context.Context, id ID) (*Renter, error)
	Save(ctx context.Context, renter *Renter) error
}

func NewRenter(id ID, now time.Time) (*Renter, error) {
	if strings.TrimSpace(string(id)) == "" {
		return nil, ErrIDRequired
	}
	return &Renter{ID: id, Tier: pricing.TierBronze, UpdatedAt: now.UTC()}, nil
}

// Profile is the read-only view handed to the pricing engine.
func (r *Renter) Profile() *pricing.RequesterProfile {
	if r == nil {
		return nil
	}
	tier := r.Tier
	if tier.Rank() == 0 {
		tier = pricing.TierBronze
	}
	return &pricing.RequesterProfile{
		FirstTime:        r.CompletedRentals == 0,
		Tier:             tier,
		CompletedRentals: r.CompletedRentals,
		AverageRating:    r.AverageRating,
	}
}

// RecordConfirmedRental counts a confirmed booking and applies any tier it unlocks.
func (r *Renter) RecordConfirmedRental(now time.Time) {
	r.CompletedRentals++
	r.UpdatedAt = now.UTC()
	if next, upgraded := loyalty.Upgrade(r.Tier, r.CompletedRentals); upgraded {
		previous := r.Tier
		r.Tier = next
		r.Record(TierUpgraded{RenterID: r.ID, From: previous, To: next, CompletedRentals: r.CompletedRentals, At: r.UpdatedAt})
	}
}

type TierUpgraded struct {
	RenterID         ID           `json:"renter_id"`
	From             pricing.Tier `json:"from"`
	To               pricing.Tier `json:"to"`
	CompletedRentals int          `json:"completed_rentals"`
	At               time.Time    `json:"at"`
}

func (e TierUpgraded) EventName() string     { return "renter.tier_upgraded" }
func (e TierUpgraded) AggregateID() string   { return string(e.RenterID) }
func (e TierUpgraded) OccurredAt() time.Time { return e.At }
