package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"rentwear/internal/domain/pricing"
)

var (
	ErrIDRequired       = errors.New("catalog: item id is required")
	ErrTitleRequired    = errors.New("catalog: title is required")
	ErrCategoryRequired = errors.New("catalog: category is required")
	ErrInvalidPrice     = errors.New("catalog: original price must be positive")
	ErrItemNotFound     = errors.New("catalog: item not found")
)

type ItemID string

// Item is the slice of a catalog entry the rental flow reads.
type Item struct {
	ID            ItemID
	Title         string
	Category      string
	Brand         string
	OriginalPrice int64
	City          string
	// Seasonality is optional; empty means derive it from the rental start month.
	Seasonality pricing.Seasonality
	CreatedAt   time.Time
}

type Repository interface {
	ByID(ctx context.Context, id ItemID) (*Item, error)
	Save(ctx context.Context, item *Item) error
}

type CreateParams struct {
	ID            ItemID
	Title         string
	Category      string
	Brand         string
	OriginalPrice int64
	City          string
	Seasonality   string
	Now           time.Time
}

func NewItem(params CreateParams) (*Item, error) {
	if strings.TrimSpace(string(params.ID)) == "" {
		return nil, ErrIDRequired
	}
	if strings.TrimSpace(params.Title) == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(params.Category) == "" {
		return nil, ErrCategoryRequired
	}
	if params.OriginalPrice <= 0 {
		return nil, ErrInvalidPrice
	}
	season, _ := pricing.ParseSeasonality(params.Seasonality)
	return &Item{
		ID:            params.ID,
		Title:         strings.TrimSpace(params.Title),
		Category:      strings.TrimSpace(params.Category),
		Brand:         strings.TrimSpace(params.Brand),
		OriginalPrice: params.OriginalPrice,
		City:          strings.TrimSpace(params.City),
		Seasonality:   season,
		CreatedAt:     params.Now.UTC(),
	}, nil
}

// SeasonAt returns the item's fixed seasonality, or the calendar season for t.
func (i *Item) SeasonAt(t time.Time) pricing.Seasonality {
	if i.Seasonality != "" {
		return i.Seasonality
	}
	return pricing.SeasonFor(t.Month())
}
