package pricing

import (
	"context"
	"strings"

	"rentwear/internal/app/dto"
	handlersupport "rentwear/internal/app/handlers/support"
	"rentwear/internal/app/queries"
	"rentwear/internal/app/uow"
	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
)

const rentOrBuyKey = "pricing.advice"

type RentOrBuyQuery struct {
	ItemID string
	Usage  string
}

func (q RentOrBuyQuery) Key() string { return rentOrBuyKey }

func (q RentOrBuyQuery) Validate() error {
	if strings.TrimSpace(q.ItemID) == "" {
		return ErrItemIDRequired
	}
	return nil
}

type RentOrBuyHandler struct {
	UoWFactory uow.UoWFactory
}

func (h *RentOrBuyHandler) Handle(ctx context.Context, q RentOrBuyQuery) (dto.RentOrBuyAdvice, error) {
	unit, execCtx, cleanup, err := handlersupport.BeginReadOnlyUnit(ctx, h.UoWFactory)
	if err != nil {
		return dto.RentOrBuyAdvice{}, err
	}
	if cleanup != nil {
		defer cleanup()
	}
	item, err := unit.Items().ByID(execCtx, domaincatalog.ItemID(strings.TrimSpace(q.ItemID)))
	if err != nil {
		return dto.RentOrBuyAdvice{}, err
	}
	return dto.RentOrBuyAdvice{
		ItemID:          string(item.ID),
		OriginalPrice:   item.OriginalPrice,
		RecommendedDays: domainpricing.RecommendedDuration(item.OriginalPrice),
		Recommendation:  domainpricing.RecommendRentOrBuy(item.OriginalPrice, domainpricing.ParseUsage(q.Usage)),
	}, nil
}

var _ queries.Handler[RentOrBuyQuery, dto.RentOrBuyAdvice] = (*RentOrBuyHandler)(nil)
