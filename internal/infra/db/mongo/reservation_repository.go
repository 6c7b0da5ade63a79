package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	domainavailability "rentwear/internal/domain/availability"
	domaincatalog "rentwear/internal/domain/catalog"
	"rentwear/internal/domain/shared/daterange"
	"rentwear/internal/domain/shared/money"
)

// ReservationRepository stores reservations in agg_reservation. Every save also bumps a
// per-item guard document, so two transactions booking the same item conflict.
type ReservationRepository struct {
	col   *mongo.Collection
	guard *mongo.Collection
}

func NewReservationRepository(ctx context.Context, db *mongo.Database) (*ReservationRepository, error) {
	col := db.Collection("agg_reservation")
	idx := mongo.IndexModel{Keys: bson.D{{Key: "item_id", Value: 1}, {Key: "range.start", Value: 1}}}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, err
	}
	return &ReservationRepository{col: col, guard: db.Collection("item_reservation_guard")}, nil
}

func (r *ReservationRepository) ByID(ctx context.Context, id domainavailability.ReservationID) (*domainavailability.Reservation, error) {
	var doc reservationDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": string(id)}).Decode(&doc); err != nil {
		return nil, notFound(err, domainavailability.ErrReservationNotFound)
	}
	return doc.toAggregate(), nil
}

func (r *ReservationRepository) ListByItem(ctx context.Context, itemID domaincatalog.ItemID) ([]domainavailability.Reservation, error) {
	opts := options.Find().SetSort(bson.D{{Key: "range.start", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"item_id": string(itemID)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)
	out := make([]domainavailability.Reservation, 0)
	for cur.Next(ctx) {
		var doc reservationDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, *doc.toAggregate())
	}
	return out, cur.Err()
}

func (r *ReservationRepository) Save(ctx context.Context, res *domainavailability.Reservation) error {
	if _, err := r.guard.UpdateByID(ctx, string(res.ItemID), bson.M{"$inc": bson.M{"seq": 1}}, options.Update().SetUpsert(true)); err != nil {
		return err
	}
	doc := newReservationDocument(res)
	filter := bson.M{"_id": doc.ID, "version": res.Version}
	doc.Version = res.Version + 1
	result, err := r.col.UpdateOne(ctx, filter, bson.M{"$set": doc}, options.Update().SetUpsert(true))
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrConcurrentUpdate
		}
		return err
	}
	if result.MatchedCount == 0 && result.UpsertedCount == 0 {
		return ErrConcurrentUpdate
	}
	res.Version = doc.Version
	return nil
}

type reservationDocument struct {
	ID        string        `bson:"_id"`
	ItemID    string        `bson:"item_id"`
	RenterID  string        `bson:"renter_id"`
	Range     rangeDocument `bson:"range"`
	Status    string        `bson:"status"`
	Total     money.Money   `bson:"total"`
	CreatedAt int64         `bson:"created_at"`
	UpdatedAt int64         `bson:"updated_at"`
	Version   int64         `bson:"version"`
}

func newReservationDocument(r *domainavailability.Reservation) reservationDocument {
	return reservationDocument{
		ID:        string(r.ID),
		ItemID:    string(r.ItemID),
		RenterID:  r.RenterID,
		Range:     rangeDocument{Start: timeToTimestamp(r.Range.Start), End: timeToTimestamp(r.Range.End)},
		Status:    string(r.Status),
		Total:     r.Total,
		CreatedAt: timeToTimestamp(r.CreatedAt),
		UpdatedAt: timeToTimestamp(r.UpdatedAt),
		Version:   r.Version,
	}
}

func (d reservationDocument) toAggregate() *domainavailability.Reservation {
	return &domainavailability.Reservation{
		ID:        domainavailability.ReservationID(d.ID),
		ItemID:    domaincatalog.ItemID(d.ItemID),
		RenterID:  d.RenterID,
		Range:     daterange.DateRange{Start: timestampToTime(d.Range.Start), End: timestampToTime(d.Range.End)},
		Status:    domainavailability.Status(d.Status),
		Total:     d.Total,
		CreatedAt: timestampToTime(d.CreatedAt),
		UpdatedAt: timestampToTime(d.UpdatedAt),
		Version:   d.Version,
	}
}

var _ domainavailability.Repository = (*ReservationRepository)(nil)
