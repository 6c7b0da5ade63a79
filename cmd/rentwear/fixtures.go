package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	domaincatalog "rentwear/internal/domain/catalog"
)

type itemFixture struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Category      string `json:"category"`
	Brand         string `json:"brand"`
	OriginalPrice int64  `json:"original_price"`
	City          string `json:"city"`
	Seasonality   string `json:"seasonality"`
}

// loadItemFixtures seeds the catalog from a JSON array. A missing file is not an error.
func loadItemFixtures(ctx context.Context, repo domaincatalog.Repository, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("item fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	var fixtures []itemFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	now := time.Now()
	imported := 0
	for _, fx := range fixtures {
		item, err := domaincatalog.NewItem(domaincatalog.CreateParams{
			ID:            domaincatalog.ItemID(fx.ID),
			Title:         fx.Title,
			Category:      fx.Category,
			Brand:         fx.Brand,
			OriginalPrice: fx.OriginalPrice,
			City:          fx.City,
			Seasonality:   fx.Seasonality,
			Now:           now,
		})
		if err != nil {
			logger.Error("fixture invalid", "item_id", fx.ID, "error", err)
			continue
		}
		if err := repo.Save(ctx, item); err != nil {
			logger.Error("cannot store fixture item", "item_id", fx.ID, "error", err)
			continue
		}
		imported++
	}
	logger.Info("item fixtures imported", "count", imported, "path", path)
	return nil
}
