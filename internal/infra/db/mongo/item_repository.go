package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domaincatalog "rentwear/internal/domain/catalog"
	domainpricing "rentwear/internal/domain/pricing"
)

type ItemRepository struct {
	col *mongo.Collection
}

func NewItemRepository(db *mongo.Database) *ItemRepository {
	return &ItemRepository{col: db.Collection("agg_item")}
}

func (r *ItemRepository) ByID(ctx context.Context, id domaincatalog.ItemID) (*domaincatalog.Item, error) {
	var doc itemDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, notFound(err, domaincatalog.ErrItemNotFound)
	}
	return doc.toAggregate(), nil
}

func (r *ItemRepository) Save(ctx context.Context, item *domaincatalog.Item) error {
	doc := newItemDocument(item)
	_, err := r.col.UpdateByID(ctx, doc.ID, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	return err
}

type itemDocument struct {
	ID            string `bson:"_id"`
	Title         string `bson:"title"`
	Category      string `bson:"category"`
	Brand         string `bson:"brand"`
	OriginalPrice int64  `bson:"original_price"`
	City          string `bson:"city"`
	Seasonality   string `bson:"seasonality,omitempty"`
	CreatedAt     int64  `bson:"created_at"`
}

func newItemDocument(item *domaincatalog.Item) itemDocument {
	return itemDocument{
		ID:            string(item.ID),
		Title:         item.Title,
		Category:      item.Category,
		Brand:         item.Brand,
		OriginalPrice: item.OriginalPrice,
		City:          item.City,
		Seasonality:   string(item.Seasonality),
		CreatedAt:     timeToTimestamp(item.CreatedAt),
	}
}

func (d itemDocument) toAggregate() *domaincatalog.Item {
	season, _ := domainpricing.ParseSeasonality(d.Seasonality)
	return &domaincatalog.Item{
		ID:            domaincatalog.ItemID(d.ID),
		Title:         d.Title,
		Category:      d.Category,
		Brand:         d.Brand,
		OriginalPrice: d.OriginalPrice,
		City:          d.City,
		Seasonality:   season,
		CreatedAt:     timestampToTime(d.CreatedAt),
	}
}

var _ domaincatalog.Repository = (*ItemRepository)(nil)
