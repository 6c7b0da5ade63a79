package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainpricing "rentwear/internal/domain/pricing"
	domainrenters "rentwear/internal/domain/renters"
)

type RenterRepository struct {
	col *mongo.Collection
}

func NewRenterRepository(db *mongo.Database) *RenterRepository {
	return &RenterRepository{col: db.Collection("agg_renter")}
}

func (r *RenterRepository) ByID(ctx context.Context, id domainrenters.ID) (*domainrenters.Renter, error) {
	var doc renterDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, notFound(err, domainrenters.ErrRenterNotFound)
	}
	return doc.toAggregate(), nil
}

// Save upserts the renter guarded by its version.
func (r *RenterRepository) Save(ctx context.Context, renter *domainrenters.Renter) error {
	doc := newRenterDocument(renter)
	filter := bson.M{"_id": doc.ID, "version": renter.Version}
	doc.Version = renter.Version + 1
	res, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if res.MatchedCount == 0 && res.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	renter.Version = doc.Version
	return nil
}

type renterDocument struct {
	ID               string  `bson:"_id"`
	Tier             string  `bson:"tier"`
	CompletedRentals int     `bson:"completed_rentals"`
	AverageRating    float64 `bson:"average_rating"`
	UpdatedAt        int64   `bson:"updated_at"`
	Version          int64   `bson:"version"`
}

func newRenterDocument(r *domainrenters.Renter) renterDocument {
	return renterDocument{
		ID:               string(r.ID),
		Tier:             string(r.Tier),
		CompletedRentals: r.CompletedRentals,
		AverageRating:    r.AverageRating,
		UpdatedAt:        timeToTimestamp(r.UpdatedAt),
		Version:          r.Version,
	}
}

func (d renterDocument) toAggregate() *domainrenters.Renter {
	return &domainrenters.Renter{
		ID:               domainrenters.ID(d.ID),
		Tier:             domainpricing.ParseTier(d.Tier),
		CompletedRentals: d.CompletedRentals,
		AverageRating:    d.AverageRating,
		UpdatedAt:        timestampToTime(d.UpdatedAt),
		Version:          d.Version,
	}
}

var _ domainrenters.Repository = (*RenterRepository)(nil)
