package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwear/internal/app/dto"
	domainavailability "rentwear/internal/domain/availability"
)

func TestCancelReservationFreesTheDates(t *testing.T) {
	factory := newFactory(t)
	confirm := newConfirmHandler()
	cancel := &CancelReservationHandler{Now: func() time.Time { return date(2024, 1, 3) }}
	booking := ConfirmReservationCommand{ItemID: "saree-1", RenterID: "asha", Start: date(2024, 1, 8), End: date(2024, 1, 11)}

	_, err := inUnit(t, factory, func(ctx context.Context) (*dto.ReservationResult, error) { return confirm.Handle(ctx, booking) })
	require.NoError(t, err)

	got, err := inUnit(t, factory, func(ctx context.Context) (*dto.ReservationResult, error) {
		return cancel.Handle(ctx, CancelReservationCommand{ReservationID: "res-1"})
	})
	require.NoError(t, err)
	assert.Equal(t, string(domainavailability.StatusCancelled), got.Status)
	assert.Equal(t, []string{"reservation.confirmed", "reservation.cancelled"}, eventNames(factory))
	assert.Contains(t, string(factory.Outbox.Snapshot()[1].Payload), defaultCancelReason)

	_, err = inUnit(t, factory, func(ctx context.Context) (*dto.ReservationResult, error) {
		return cancel.Handle(ctx, CancelReservationCommand{ReservationID: "res-1"})
	})
	assert.ErrorIs(t, err, domainavailability.ErrInvalidState)

	rebook := booking
	rebook.RenterID = "ravi"
	again, err := inUnit(t, factory, func(ctx context.Context) (*dto.ReservationResult, error) { return confirm.Handle(ctx, rebook) })
	require.NoError(t, err)
	assert.Equal(t, "res-2", again.ReservationID)
}

func TestCancelReservationErrors(t *testing.T) {
	factory := newFactory(t)
	cancel := &CancelReservationHandler{}

	_, err := inUnit(t, factory, func(ctx context.Context) (*dto.ReservationResult, error) {
		return cancel.Handle(ctx, CancelReservationCommand{ReservationID: "ghost"})
	})
	assert.ErrorIs(t, err, domainavailability.ErrReservationNotFound)
	assert.ErrorIs(t, CancelReservationCommand{}.Validate(), ErrReservationIDRequired)
}
