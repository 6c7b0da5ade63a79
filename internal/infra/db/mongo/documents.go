package mongo

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
)

var ErrConcurrentUpdate = errors.New("mongo: concurrent update detected")

type rangeDocument struct {
	Start int64 `bson:"start"`
	End   int64 `bson:"end"`
}

func timestampToTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}

func timeToTimestamp(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

// notFound maps the driver's empty result onto the caller's domain error.
func notFound(err, domainErr error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domainErr
	}
	return err
}
