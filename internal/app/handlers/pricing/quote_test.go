package pricing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/infra/storage/memory"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// seededFactory stores one medium-season item booked for half of January 2024.
func seededFactory(t *testing.T) *memory.Factory {
	t.Helper()
	factory := &memory.Factory{
		Items:        memory.NewItemRepository(),
		Renters:      memory.NewRenterRepository(),
		Reservations: memory.NewReservationRepository(),
		Outbox:       memory.NewOutboxQueue(),
	}
	item, err := domaincatalog.NewItem(domaincatalog.CreateParams{
		ID:            "saree-1",
		Title:         "Kanjivaram saree",
		Category:      "Ethnic Wear",
		Brand:         "Nalli",
		OriginalPrice: 2999,
		City:          "Mumbai",
		Seasonality:   "medium",
	})
	require.NoError(t, err)
	factory.Items.Seed(item)

	booked, err := daterange.New(date(2024, 1, 15), date(2024, 1, 30))
	require.NoError(t, err)
	require.NoError(t, factory.Reservations.Save(context.Background(), &domainavailability.Reservation{
		ID:       "existing",
		ItemID:   item.ID,
		RenterID: "someone",
		Range:    booked,
		Status:   domainavailability.StatusConfirmed,
	}))
	return factory
}

func newQuoteHandler(factory *memory.Factory) *QuoteRentalHandler {
	return &QuoteRentalHandler{
		UoWFactory: factory,
		Pricer:     domainpricing.NewEngine(domainpricing.DefaultTables()),
		Now:        func() time.Time { return date(2024, 1, 1) },
	}
}

func TestQuoteRentalForAnonymousRequester(t *testing.T) {
	h := newQuoteHandler(seededFactory(t))

	got, err := h.Handle(context.Background(), QuoteRentalQuery{ItemID: "saree-1", Start: date(2024, 1, 8), End: date(2024, 1, 11)})
	require.NoError(t, err)

	assert.True(t, got.Available)
	assert.Equal(t, "medium", got.Seasonality)
	assert.Equal(t, "medium", got.Demand)
	assert.InDelta(t, 16.0/31*100, got.OccupancyPercent, 1e-9)
	assert.Equal(t, 3, got.RecommendedDays)
	assert.True(t, got.Profitable)
	assert.Equal(t, int64(1404), got.Quote.FinalTotal.Amount)
}

func TestQuoteRentalForUnknownRenterTreatsThemAsNew(t *testing.T) {
	h := newQuoteHandler(seededFactory(t))

	got, err := h.Handle(context.Background(), QuoteRentalQuery{ItemID: "saree-1", RenterID: "new-renter", Start: date(2024, 1, 8), End: date(2024, 1, 11)})
	require.NoError(t, err)

	assert.Equal(t, "new-renter", got.RenterID)
	assert.Equal(t, int64(9), got.Quote.Discounts.Loyalty.Amount)
	assert.Equal(t, int64(47), got.Quote.Discounts.FirstTime.Amount)
	assert.Equal(t, int64(38), got.Quote.Discounts.Seasonal.Amount)
	assert.Equal(t, int64(1289), got.Quote.FinalTotal.Amount)
}

func TestQuoteRentalReportsUnavailablePeriod(t *testing.T) {
	h := newQuoteHandler(seededFactory(t))

	got, err := h.Handle(context.Background(), QuoteRentalQuery{ItemID: "saree-1", Start: date(2024, 1, 12), End: date(2024, 1, 15)})
	require.NoError(t, err)
	assert.False(t, got.Available)
	assert.Positive(t, got.Quote.FinalTotal.Amount)
}

func TestQuoteRentalErrors(t *testing.T) {
	h := newQuoteHandler(seededFactory(t))
	ctx := context.Background()

	_, err := h.Handle(ctx, QuoteRentalQuery{ItemID: "missing", Start: date(2024, 1, 8), End: date(2024, 1, 11)})
	assert.ErrorIs(t, err, domaincatalog.ErrItemNotFound)

	_, err = h.Handle(ctx, QuoteRentalQuery{ItemID: "saree-1", Start: date(2024, 1, 11), End: date(2024, 1, 8)})
	assert.ErrorIs(t, err, domainpricing.ErrInvalidPeriod)

	assert.ErrorIs(t, QuoteRentalQuery{}.Validate(), ErrItemIDRequired)
}

func TestRentOrBuyAdvice(t *testing.T) {
	h := &RentOrBuyHandler{UoWFactory: seededFactory(t)}

	got, err := h.Handle(context.Background(), RentOrBuyQuery{ItemID: "saree-1", Usage: "frequent"})
	require.NoError(t, err)
	assert.Equal(t, int64(2999), got.OriginalPrice)
	assert.Equal(t, 3, got.RecommendedDays)
	assert.Equal(t, domainpricing.ChoiceBuy, got.Recommendation.Choice)

	got, err = h.Handle(context.Background(), RentOrBuyQuery{ItemID: "saree-1"})
	require.NoError(t, err)
	assert.Equal(t, domainpricing.ChoiceRent, got.Recommendation.Choice)
	assert.Equal(t, domainpricing.UsageOccasional, got.Recommendation.Usage)
}
