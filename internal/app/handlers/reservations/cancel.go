package reservations

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"rentwear/internal/app/commands"
	"rentwear/internal/app/dto"
	"rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
)

const (
	cancelReservationKey = "reservation.cancel"
	defaultCancelReason  = "renter-cancelled"
)

var ErrReservationIDRequired = errors.New("reservations: reservation id is required")

type CancelReservationCommand struct {
	ReservationID string
	Reason        string
}

func (c CancelReservationCommand) Key() string { return cancelReservationKey }

func (c CancelReservationCommand) Validate() error {
	if strings.TrimSpace(c.ReservationID) == "" {
		return ErrReservationIDRequired
	}
	return nil
}

type CancelReservationHandler struct {
	Encoder outbox.EventEncoder
	Now     func() time.Time
	Logger  *slog.Logger
}

func (h *CancelReservationHandler) Handle(ctx context.Context, cmd CancelReservationCommand) (*dto.ReservationResult, error) {
	unit, ok := uow.FromContext(ctx)
	if !ok {
		return nil, uow.ErrUnitOfWorkMissing
	}
	reservation, err := unit.Reservations().ByID(ctx, domainavailability.ReservationID(strings.TrimSpace(cmd.ReservationID)))
	if err != nil {
		return nil, err
	}
	reason := strings.TrimSpace(cmd.Reason)
	if reason == "" {
		reason = defaultCancelReason
	}
	now := time.Now().UTC()
	if h.Now != nil {
		now = h.Now().UTC()
	}
	if err := reservation.Cancel(reason, now); err != nil {
		return nil, err
	}
	if err := unit.Reservations().Save(ctx, reservation); err != nil {
		return nil, err
	}
	if err := outbox.RecordDomainEvents(ctx, unit.Outbox(), h.Encoder, reservation.Drain()); err != nil {
		return nil, err
	}
	if h.Logger != nil {
		h.Logger.InfoContext(ctx, "reservation cancelled", "reservation_id", reservation.ID, "item_id", reservation.ItemID, "reason", reason)
	}
	result := dto.MapReservation(reservation)
	return &result, nil
}

var _ commands.Handler[CancelReservationCommand, *dto.ReservationResult] = (*CancelReservationHandler)(nil)
