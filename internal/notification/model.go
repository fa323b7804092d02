package notification

import (
	"context"
	"time"
)

// Kind identifies the event a notification describes.
type Kind string

const (
	KindReservationCreated  Kind = "reservation.created"
	KindReservationStarting Kind = "reservation.starting"
)

// Notification is a message delivered to one user about one reservation.
// Every dispatched notification is recorded, which makes delivery observable
// and lets the due-reservation scan skip users it already notified today.
type Notification struct {
	ID            string
	UserID        string
	ReservationID string
	Kind          Kind
	Payload       []byte // JSON event body
	SentAt        time.Time
}

// Dispatcher delivers notifications. Implementations must be safe to call
// after a booking has committed; a delivery failure never affects the booking.
type Dispatcher interface {
	Send(ctx context.Context, n *Notification) error
}

// Filter defines parameters for listing recorded notifications.
type Filter struct {
	UserID        string
	ReservationID string
	Kind          Kind
	Page          int
	PageSize      int
}
