package memory

import (
	"context"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainrenters "rentwear/internal/domain/renters"
)

// staged holds one unit's writes in save order until commit.
type staged[K comparable, V any] struct {
	values map[K]V
	order  []K
}

func (s *staged[K, V]) put(key K, value V) {
	if s.values == nil {
		s.values = make(map[K]V)
	}
	if _, ok := s.values[key]; !ok {
		s.order = append(s.order, key)
	}
	s.values[key] = value
}

func (s *staged[K, V]) get(key K) (V, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *staged[K, V]) each(fn func(V)) {
	for _, key := range s.order {
		fn(s.values[key])
	}
}

func (s *staged[K, V]) reset() {
	s.values = nil
	s.order = nil
}

// unitItems reads through to the shared repository and keeps saves local to the unit.
type unitItems struct {
	base   *ItemRepository
	writes staged[domaincatalog.ItemID, domaincatalog.Item]
}

func (r *unitItems) ByID(ctx context.Context, id domaincatalog.ItemID) (*domaincatalog.Item, error) {
	if item, ok := r.writes.get(id); ok {
		return &item, nil
	}
	return r.base.ByID(ctx, id)
}

func (r *unitItems) Save(ctx context.Context, item *domaincatalog.Item) error {
	r.writes.put(item.ID, *item)
	return nil
}

func (r *unitItems) commit() {
	r.writes.each(r.base.put)
	r.writes.reset()
}

type unitRenters struct {
	base   *RenterRepository
	writes staged[domainrenters.ID, domainrenters.Renter]
}

func (r *unitRenters) ByID(ctx context.Context, id domainrenters.ID) (*domainrenters.Renter, error) {
	if renter, ok := r.writes.get(id); ok {
		return &renter, nil
	}
	return r.base.ByID(ctx, id)
}

func (r *unitRenters) Save(ctx context.Context, renter *domainrenters.Renter) error {
	r.writes.put(renter.ID, storedRenter(renter))
	return nil
}

func (r *unitRenters) commit() {
	r.writes.each(r.base.put)
	r.writes.reset()
}

type unitReservations struct {
	base   *ReservationRepository
	writes staged[domainavailability.ReservationID, domainavailability.Reservation]
}

func (r *unitReservations) ByID(ctx context.Context, id domainavailability.ReservationID) (*domainavailability.Reservation, error) {
	if res, ok := r.writes.get(id); ok {
		return &res, nil
	}
	return r.base.ByID(ctx, id)
}

// ListByItem overlays the unit's pending saves on the committed reservations.
func (r *unitReservations) ListByItem(ctx context.Context, itemID domaincatalog.ItemID) ([]domainavailability.Reservation, error) {
	out, err := r.base.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	for i, res := range out {
		if pending, ok := r.writes.get(res.ID); ok {
			out[i] = pending
		}
	}
	r.writes.each(func(res domainavailability.Reservation) {
		if res.ItemID != itemID {
			return
		}
		if _, err := r.base.ByID(ctx, res.ID); err == nil {
			return
		}
		out = append(out, res)
	})
	sortByStart(out)
	return out, nil
}

func (r *unitReservations) Save(ctx context.Context, reservation *domainavailability.Reservation) error {
	r.writes.put(reservation.ID, storedReservation(reservation))
	return nil
}

func (r *unitReservations) commit() {
	r.writes.each(r.base.put)
	r.writes.reset()
}

var (
	_ domaincatalog.Repository      = (*unitItems)(nil)
	_ domainrenters.Repository      = (*unitRenters)(nil)
	_ domainavailability.Repository = (*unitReservations)(nil)
)
