package uow

import (
	"context"

	"rentwear/internal/app/outbox"
	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	domainrenters "rentwear/internal/domain/renters"
)

// UnitOfWork coordinates repositories inside a transaction boundary.
type UnitOfWork interface {
	Items() domaincatalog.Repository
	Renters() domainrenters.Repository
	Reservations() domainavailability.Repository
	// Outbox buffers event records that become visible when the unit commits.
	Outbox() outbox.Outbox

	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// UoWFactory starts unit of work instances.
type UoWFactory interface {
	Begin(ctx context.Context, opts TxOptions) (UnitOfWork, error)
}

// TxOptions configure transaction boundaries.
type TxOptions struct {
	ReadOnly bool
}
