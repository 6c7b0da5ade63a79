package memory

import (
	"context"
	"sync"
	"time"

	appoutbox "rentwear/internal/app/outbox"
	infraoutbox "rentwear/internal/infra/outbox"
)

// OutboxQueue holds flushed event records for the outbox worker.
type OutboxQueue struct {
	mu      sync.Mutex
	records []*infraoutbox.Record
	now     func() time.Time
}

func NewOutboxQueue() *OutboxQueue {
	return &OutboxQueue{now: func() time.Time { return time.Now().UTC() }}
}

func (q *OutboxQueue) enqueue(records []appoutbox.EventRecord) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	for _, rec := range records {
		q.records = append(q.records, &infraoutbox.Record{
			ID:          rec.ID,
			Name:        rec.Name,
			Payload:     rec.Payload,
			OccurredAt:  rec.OccurredAt,
			Aggregate:   rec.Aggregate,
			Headers:     rec.Headers,
			State:       infraoutbox.StateNew,
			NextAttempt: now,
			CreatedAt:   now,
		})
	}
}

// Claim hands out the oldest record that is due, or nil when none is.
func (q *OutboxQueue) Claim(ctx context.Context, workerID string) (*infraoutbox.Record, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	now := q.now()
	for _, rec := range q.records {
		if rec.State != infraoutbox.StateNew && rec.State != infraoutbox.StateFailed {
			continue
		}
		if rec.NextAttempt.After(now) {
			continue
		}
		rec.State = infraoutbox.StateClaimed
		rec.ClaimedBy = workerID
		rec.ClaimedAt = now
		claimed := *rec
		return &claimed, nil
	}
	return nil, nil
}

func (q *OutboxQueue) MarkSent(ctx context.Context, id string) error {
	return q.update(id, func(rec *infraoutbox.Record) {
		rec.State = infraoutbox.StateSent
		rec.SentAt = q.now()
	})
}

func (q *OutboxQueue) MarkFailed(ctx context.Context, id string, next time.Time, errMsg string) error {
	return q.update(id, func(rec *infraoutbox.Record) {
		rec.State = infraoutbox.StateFailed
		rec.NextAttempt = next
		rec.LastError = errMsg
		rec.Attempts++
	})
}

// Snapshot copies every record the queue has seen.
func (q *OutboxQueue) Snapshot() []infraoutbox.Record {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]infraoutbox.Record, 0, len(q.records))
	for _, rec := range q.records {
		out = append(out, *rec)
	}
	return out
}

func (q *OutboxQueue) update(id string, apply func(*infraoutbox.Record)) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	for _, rec := range q.records {
		if rec.ID == id {
			apply(rec)
			return nil
		}
	}
	return infraoutbox.ErrRecordNotFound
}

// unitOutbox buffers one unit's records until the unit flushes them.
type unitOutbox struct {
	queue   *OutboxQueue
	pending []appoutbox.EventRecord
}

func (o *unitOutbox) Add(ctx context.Context, record appoutbox.EventRecord) error {
	o.pending = append(o.pending, record)
	return nil
}

func (o *unitOutbox) Flush(ctx context.Context) error {
	if len(o.pending) == 0 {
		return nil
	}
	o.queue.enqueue(o.pending)
	o.pending = nil
	return nil
}

var (
	_ appoutbox.Outbox  = (*unitOutbox)(nil)
	_ infraoutbox.Store = (*OutboxQueue)(nil)
)
