package notification

import (
	"context"
	"log"
)

// dispatcher records every notification in the store and, when a publisher is
// configured, forwards the event to the message queue. Recording is the
// source of truth; a publish failure is logged and swallowed so transient
// broker trouble never loses the audit trail or surfaces to callers.
type dispatcher struct {
	store     Store
	publisher *AMQPPublisher
}

// NewDispatcher creates a Dispatcher. publisher may be nil, in which case
// notifications are only recorded.
func NewDispatcher(store Store, publisher *AMQPPublisher) Dispatcher {
	return &dispatcher{store: store, publisher: publisher}
}

func (d *dispatcher) Send(ctx context.Context, n *Notification) error {
	if err := d.store.Insert(ctx, n); err != nil {
		return err
	}

	if d.publisher != nil {
		if err := d.publisher.Publish(ctx, n); err != nil {
			log.Printf("notification publish failed (kind=%s reservation=%s): %v", n.Kind, n.ReservationID, err)
		}
	}

	return nil
}
