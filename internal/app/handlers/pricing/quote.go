package pricing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"rentwear/internal/app/dto"
	handlersupport "rentwear/internal/app/handlers/support"
	"rentwear/internal/app/policies"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	domainrenters "rentwear/internal/domain/renters"
	"rentwear/internal/domain/shared/daterange"
)

const quoteRentalKey = "pricing.quote"

var ErrItemIDRequired = errors.New("pricing: item id is required")

type QuoteRentalQuery struct {
	ItemID   string
	RenterID string
	Start    time.Time
	End      time.Time
}

func (q QuoteRentalQuery) Key() string { return quoteRentalKey }

func (q QuoteRentalQuery) Validate() error {
	if strings.TrimSpace(q.ItemID) == "" {
		return ErrItemIDRequired
	}
	return nil
}

type QuoteRentalHandler struct {
	UoWFactory uow.UoWFactory
	Pricer     policies.RentalPricer
	Now        func() time.Time
	Logger     *slog.Logger
}

func (h *QuoteRentalHandler) Handle(ctx context.Context, q QuoteRentalQuery) (dto.RentalQuote, error) {
	period, err := daterange.New(q.Start, q.End)
	if err != nil {
		return dto.RentalQuote{}, fmt.Errorf("%w: %w", domainpricing.ErrInvalidPeriod, err)
	}
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RentalQuote{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}

	assessment, err := Assess(execCtx, unit, domaincatalog.ItemID(strings.TrimSpace(q.ItemID)), period)
	if err != nil {
		return dto.RentalQuote{}, err
	}

	var requester *domainpricing.RequesterProfile
	renterID := strings.TrimSpace(q.RenterID)
	if renterID != "" {
		renter, err := LoadRenter(execCtx, unit, domainrenters.ID(renterID), h.now)
		if err != nil {
			return dto.RentalQuote{}, err
		}
		requester = renter.Profile()
	}

	quote, err := h.Pricer.Quote(assessment.Profile, period, requester)
	if err != nil {
		return dto.RentalQuote{}, err
	}

	if h.Logger != nil {
		h.Logger.DebugContext(ctx, "rental quoted",
			"item_id", q.ItemID,
			"renter_id", renterID,
			"days", quote.Days,
			"total", quote.FinalTotal.Amount,
			"occupancy", assessment.Occupancy)
	}

	return dto.RentalQuote{
		ItemID:              string(assessment.Item.ID),
		RenterID:            renterID,
		Start:               period.Start,
		End:                 period.End,
		Available:           assessment.Available,
		Seasonality:         string(assessment.Profile.Seasonality),
		Demand:              string(assessment.Profile.Demand),
		OccupancyPercent:    assessment.Occupancy,
		AvailabilityPercent: assessment.Profile.AvailabilityPercent,
		RecommendedDays:     domainpricing.RecommendedDuration(assessment.Item.OriginalPrice),
		Profitable:          domainpricing.IsProfitable(quote),
		Quote:               quote,
	}, nil
}

func (h *QuoteRentalHandler) now() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now().UTC()
}

var _ queries.Handler[QuoteRentalQuery, dto.RentalQuote] = (*QuoteRentalHandler)(nil)
