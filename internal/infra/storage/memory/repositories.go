package memory

import (
	"context"
	"slices"
	"sync"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainrenters "rentwear/internal/domain/renters"
)

// ItemRepository keeps catalog items in memory.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[domaincatalog.ItemID]domaincatalog.Item
}

func NewItemRepository() *ItemRepository {
	return &ItemRepository{items: make(map[domaincatalog.ItemID]domaincatalog.Item)}
}

func (r *ItemRepository) ByID(ctx context.Context, id domaincatalog.ItemID) (*domaincatalog.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	item, ok := r.items[id]
	if !ok {
		return nil, domaincatalog.ErrItemNotFound
	}
	return &item, nil
}

func (r *ItemRepository) Save(ctx context.Context, item *domaincatalog.Item) error {
	r.put(*item)
	return nil
}

func (r *ItemRepository) put(item domaincatalog.Item) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item.ID] = item
}

// Seed stores items without going through a unit of work.
func (r *ItemRepository) Seed(items ...*domaincatalog.Item) {
	for _, item := range items {
		_ = r.Save(context.Background(), item)
	}
}

// RenterRepository keeps renter accounts in memory.
type RenterRepository struct {
	mu      sync.RWMutex
	renters map[domainrenters.ID]domainrenters.Renter
}

func NewRenterRepository() *RenterRepository {
	return &RenterRepository{renters: make(map[domainrenters.ID]domainrenters.Renter)}
}

func (r *RenterRepository) ByID(ctx context.Context, id domainrenters.ID) (*domainrenters.Renter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	renter, ok := r.renters[id]
	if !ok {
		return nil, domainrenters.ErrRenterNotFound
	}
	return &renter, nil
}

func (r *RenterRepository) Save(ctx context.Context, renter *domainrenters.Renter) error {
	r.put(storedRenter(renter))
	return nil
}

func (r *RenterRepository) put(renter domainrenters.Renter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.renters[renter.ID] = renter
}

// storedRenter bumps renter's version and returns the copy to keep, without pending events.
func storedRenter(renter *domainrenters.Renter) domainrenters.Renter {
	stored := *renter
	stored.ClearEvents()
	stored.Version++
	renter.Version = stored.Version
	return stored
}

// ReservationRepository keeps reservations in memory, indexed by item.
type ReservationRepository struct {
	mu     sync.RWMutex
	byID   map[domainavailability.ReservationID]domainavailability.Reservation
	byItem map[domaincatalog.ItemID][]domainavailability.ReservationID
}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{
		byID:   make(map[domainavailability.ReservationID]domainavailability.Reservation),
		byItem: make(map[domaincatalog.ItemID][]domainavailability.ReservationID),
	}
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainavailability.ReservationID) (*domainavailability.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.byID[id]
	if !ok {
		return nil, domainavailability.ErrReservationNotFound
	}
	return &res, nil
}

// ListByItem returns the item's reservations ordered by start date.
func (r *ReservationRepository) ListByItem(ctx context.Context, itemID domaincatalog.ItemID) ([]domainavailability.Reservation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byItem[itemID]
	out := make([]domainavailability.Reservation, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.byID[id])
	}
	sortByStart(out)
	return out, nil
}

func (r *ReservationRepository) Save(ctx context.Context, reservation *domainavailability.Reservation) error {
	r.put(storedReservation(reservation))
	return nil
}

func (r *ReservationRepository) put(reservation domainavailability.Reservation) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.byID[reservation.ID]; !exists {
		r.byItem[reservation.ItemID] = append(r.byItem[reservation.ItemID], reservation.ID)
	}
	r.byID[reservation.ID] = reservation
}

func storedReservation(reservation *domainavailability.Reservation) domainavailability.Reservation {
	stored := *reservation
	stored.ClearEvents()
	stored.Version++
	reservation.Version = stored.Version
	return stored
}

func sortByStart(reservations []domainavailability.Reservation) {
	slices.SortFunc(reservations, func(a, b domainavailability.Reservation) int {
		return a.Range.Start.Compare(b.Range.Start)
	})
}

var (
	_ domaincatalog.Repository      = (*ItemRepository)(nil)
	_ domainrenters.Repository      = (*RenterRepository)(nil)
	_ domainavailability.Repository = (*ReservationRepository)(nil)
)
