package reservation

import (
	"net/http"
	"time"

	"github.com/deskhive/office-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "reservation not found")
	ErrOfficeNotFound   = apperror.New(http.StatusNotFound, "office not found")
	ErrOwnOffice        = apperror.New(http.StatusBadRequest, "cannot make a reservation on your own office")
	ErrInvalidDateRange = apperror.New(http.StatusBadRequest, "end date must be after start date")
	ErrStartTooSoon     = apperror.New(http.StatusBadRequest, "start date must be at least two days ahead")
	ErrConflict         = apperror.New(http.StatusConflict, "office is already reserved during this period")
	ErrOfficeBusy       = apperror.New(http.StatusServiceUnavailable, "office is busy, please retry")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrAlreadyCancelled = apperror.New(http.StatusBadRequest, "reservation is already cancelled")
	ErrAlreadyStarted   = apperror.New(http.StatusBadRequest, "reservation has already started")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Reservation is a booking of one office by one user for an inclusive
// calendar date range. Price and dates are write-once; only Status ever
// changes after creation (active -> cancelled, terminal).
type Reservation struct {
	ID        string
	OfficeID  string
	UserID    string
	StartDate time.Time // calendar date, UTC midnight
	EndDate   time.Time // calendar date, UTC midnight, inclusive
	Status    Status
	Price     int64 // minor currency units, computed at creation
	CreatedAt time.Time
	UpdatedAt time.Time

	// Denormalized for list/detail responses.
	OfficeTitle string
	HostID      string
}

// Filter defines parameters for listing reservations.
type Filter struct {
	UserID   string // reservations made by this user
	HostID   string // reservations on offices owned by this host
	OfficeID string
	Status   string
	FromDate *time.Time
	ToDate   *time.Time
	Page     int
	PageSize int
}

// LockKey returns the mutual-exclusion key serializing bookings per office.
func LockKey(officeID string) string {
	return "office-lock:" + officeID
}

// DateOnly strips the time component, anchoring the value at UTC midnight.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
