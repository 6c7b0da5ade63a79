package reservations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	pricingapp "rentwear/internal/app/handlers/pricing"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/policies"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/loyalty"
	domainpricing "rentwear/internal/domain/pricing"
	domainrenters "rentwear/internal/domain/renters"
	"rentwear/internal/domain/shared/daterange"
)

const confirmReservationKey = "reservation.confirm"

var (
	ErrItemIDRequired   = errors.New("reservations: item id is required")
	ErrRenterIDRequired = errors.New("reservations: renter id is required")
)

// ConfirmReservationCommand books an item for a renter. RequestKey makes client retries
// safe: a repeated key replays the first result.
type ConfirmReservationCommand struct {
	RequestKey string
	ItemID     string
	RenterID   string
	Start      time.Time
	End        time.Time
}

func (c ConfirmReservationCommand) Key() string            { return confirmReservationKey }
func (c ConfirmReservationCommand) IdempotencyKey() string { return strings.TrimSpace(c.RequestKey) }
func (c ConfirmReservationCommand) ResultPrototype() any   { return &dto.ReservationResult{} }

func (c ConfirmReservationCommand) Validate() error {
	if strings.TrimSpace(c.ItemID) == "" {
		return ErrItemIDRequired
	}
	if strings.TrimSpace(c.RenterID) == "" {
		return ErrRenterIDRequired
	}
	return nil
}

type ConfirmReservationHandler struct {
	Pricer      policies.RentalPricer
	Encoder     outbox.EventEncoder
	Now         func() time.Time
	IDGenerator func() string
	Logger      *slog.Logger
}

func (h *ConfirmReservationHandler) Handle(ctx context.Context, cmd ConfirmReservationCommand) (*dto.ReservationResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	period, err := daterange.New(cmd.Start, cmd.End)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domainpricing.ErrInvalidPeriod, err)
	}
	now := h.now()

	assessment, err := pricingapp.Assess(ctx, unit, domaincatalog.ItemID(strings.TrimSpace(cmd.ItemID)), period)
	if err != nil {
		return nil, err
	}
	if !assessment.Available {
		return nil, domainavailability.ErrReservationOverlap
	}
	renter, err := pricingapp.LoadRenter(ctx, unit, domainrenters.ID(strings.TrimSpace(cmd.RenterID)), func() time.Time { return now })
	if err != nil {
		return nil, err
	}
	quote, err := h.Pricer.Quote(assessment.Profile, period, renter.Profile())
	if err != nil {
		return nil, err
	}

	reservation, err := domainavailability.NewReservation(domainavailability.CreateParams{
		ID:       domainavailability.ReservationID(h.newID()),
		ItemID:   assessment.Item.ID,
		RenterID: string(renter.ID),
		Range:    period,
		Total:    quote.FinalTotal,
		Now:      now,
	}, assessment.Reservations)
	if err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, reservation); err != nil {
		return nil, err
	}

	renter.RecordConfirmedRental(now)
	if err := unit.Renters().Save(ctx, renter); err != nil {
		return nil, err
	}

	pending := append(reservation.Drain(), renter.Drain()...)
	if err := outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, pending); err != nil {
		return nil, err
	}

	if h.Logger != nil {
		h.Logger.InfoContext(ctx, "reservation confirmed",
			"reservation_id", reservation.ID,
			"item_id", reservation.ItemID,
			"renter_id", renter.ID,
			"total", quote.FinalTotal.Amount,
			"tier", renter.Tier)
	}

	result := dto.MapReservation(reservation)
	result.Tier = string(renter.Tier)
	result.NextTierAt = loyalty.NextThreshold(renter.CompletedRentals)
	result.Quote = &quote
	return &result, nil
}

func (h *ConfirmReservationHandler) now() time.Time {
	if h.Now != nil {
		return h.Now().UTC()
	}
	return time.Now().UTC()
}

func (h *ConfirmReservationHandler) newID() string {
	if h.IDGenerator != nil {
		return h.IDGenerator()
	}
	return uuid.NewString()
}

var _ commands.Handler[ConfirmReservationCommand, *dto.ReservationResult] = (*ConfirmReservationHandler)(nil)
