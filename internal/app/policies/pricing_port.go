package policies

import (
	"context"
	"log/slog"

	domainpricing "rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/daterange"
)

// RentalPricer prices a rental period. *pricing.Engine satisfies it.
type RentalPricer interface {
	Quote(profile domainpricing.ItemProfile, period daterange.DateRange, requester *domainpricing.RequesterProfile) (domainpricing.Quote, error)
}

// RateCardSource fetches a raw JSON rate card overlay.
type RateCardSource interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// LoadRateCard builds pricing tables from src. A missing source or a failed fetch falls back
// to the built-in rate card.
func LoadRateCard(ctx context.Context, src RateCardSource, logger *slog.Logger) domainpricing.Tables {
	if src == nil {
		return domainpricing.DefaultTables()
	}
	raw, err := src.Fetch(ctx)
	if err != nil {
		if logger != nil {
			logger.Warn("rate card fetch failed, using defaults", "error", err)
		}
		return domainpricing.DefaultTables()
	}
	return domainpricing.LoadTables(string(raw), logger)
}
