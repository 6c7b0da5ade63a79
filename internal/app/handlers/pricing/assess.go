package pricing

import (
	"context"
	"errors"
	"time"

	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	domainrenters "rentwear/internal/domain/renters"
	"rentwear/internal/domain/shared/daterange"
)

// Assessment gathers what the engine needs to price an item for a period.
type Assessment struct {
	Item         *domaincatalog.Item
	Profile      domainpricing.ItemProfile
	Occupancy    float64
	Available    bool
	Reservations []domainavailability.Reservation
}

// Assess reads the item and its blocking reservations through unit and derives demand and
// availability from occupancy in the month the period starts.
func Assess(ctx context.Context, unit uow.UnitOfWork, itemID domaincatalog.ItemID, period daterange.DateRange) (Assessment, error) {
	item, err := unit.Items().ByID(ctx, itemID)
	if err != nil {
		return Assessment{}, err
	}
	all, err := unit.Reservations().ListByItem(ctx, itemID)
	if err != nil {
		return Assessment{}, err
	}
	blocking := domainavailability.Blocking(all)

	var manager domainavailability.Manager
	occupancy, err := manager.OccupancyRate(blocking, domainavailability.MonthWindow(period.Start))
	if err != nil {
		return Assessment{}, err
	}
	available, err := manager.IsAvailable(period, blocking)
	if err != nil {
		return Assessment{}, err
	}

	return Assessment{
		Item: item,
		Profile: domainpricing.ItemProfile{
			Category:            item.Category,
			Brand:               item.Brand,
			OriginalPrice:       item.OriginalPrice,
			Location:            item.City,
			Seasonality:         item.SeasonAt(period.Start),
			AvailabilityPercent: domainpricing.AvailabilityFor(occupancy),
			Demand:              domainpricing.DemandFor(occupancy),
		},
		Occupancy:    occupancy,
		Available:    available,
		Reservations: all,
	}, nil
}

// LoadRenter returns the stored renter, or a fresh first-time renter when none exists yet.
func LoadRenter(ctx context.Context, unit uow.UnitOfWork, id domainrenters.ID, now func() time.Time) (*domainrenters.Renter, error) {
	renter, err := unit.Renters().ByID(ctx, id)
	if err == nil {
		return renter, nil
	}
	if !errors.Is(err, domainrenters.ErrRenterNotFound) {
		return nil, err
	}
	return domainrenters.NewRenter(id, now())
}
