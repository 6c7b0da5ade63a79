package memory

import (
	"context"
	"errors"
	"sync"

	appoutbox "rentwear/internal/app/outbox"
	"rentwear/internal/app/uow"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainrenters "rentwear/internal/domain/renters"
)

var ErrFactoryMisconfigured = errors.New("memory: unit of work factory misconfigured")

// Factory wires in-memory repositories into a unit-of-work boundary. Write units run one at
// a time and keep their saves private until Commit.
type Factory struct {
	Items        *ItemRepository
	Renters      *RenterRepository
	Reservations *ReservationRepository
	Outbox       *OutboxQueue

	writeMu sync.Mutex
}

func (f *Factory) Begin(ctx context.Context, opts uow.TxOptions) (uow.UnitOfWork, error) {
	if f.Items == nil || f.Renters == nil || f.Reservations == nil || f.Outbox == nil {
		return nil, ErrFactoryMisconfigured
	}
	unit := &Unit{factory: f, box: &unitOutbox{queue: f.Outbox}}
	if !opts.ReadOnly {
		f.writeMu.Lock()
		unit.locked = true
		unit.items = &unitItems{base: f.Items}
		unit.renters = &unitRenters{base: f.Renters}
		unit.reservations = &unitReservations{base: f.Reservations}
	}
	return unit, nil
}

type Unit struct {
	factory      *Factory
	box          *unitOutbox
	items        *unitItems
	renters      *unitRenters
	reservations *unitReservations
	locked       bool
	once         sync.Once
}

func (u *Unit) Items() domaincatalog.Repository {
	if u.items == nil {
		return u.factory.Items
	}
	return u.items
}

func (u *Unit) Renters() domainrenters.Repository {
	if u.renters == nil {
		return u.factory.Renters
	}
	return u.renters
}

func (u *Unit) Reservations() domainavailability.Repository {
	if u.reservations == nil {
		return u.factory.Reservations
	}
	return u.reservations
}

func (u *Unit) Outbox() appoutbox.Outbox { return u.box }

// Commit publishes the unit's saves and then its buffered events.
func (u *Unit) Commit(ctx context.Context) error {
	defer u.release()
	if u.locked {
		u.items.commit()
		u.renters.commit()
		u.reservations.commit()
	}
	return u.box.Flush(ctx)
}

// Rollback discards the unit's saves and buffered events.
func (u *Unit) Rollback(ctx context.Context) error {
	if u.locked {
		u.items.writes.reset()
		u.renters.writes.reset()
		u.reservations.writes.reset()
	}
	u.box.pending = nil
	u.release()
	return nil
}

func (u *Unit) release() {
	u.once.Do(func() {
		if u.locked {
			u.factory.writeMu.Unlock()
		}
	})
}

var _ uow.UoWFactory = (*Factory)(nil)
