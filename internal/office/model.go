package office

import (
	"net/http"
	"time"

	"github.com/deskhive/office-booking-backend/internal/pkg/apperror"
	"github.com/deskhive/office-booking-backend/internal/tag"
)

var (
	ErrNotFound              = apperror.New(http.StatusNotFound, "office not found")
	ErrTitleRequired         = apperror.New(http.StatusBadRequest, "title is required")
	ErrDescriptionRequired   = apperror.New(http.StatusBadRequest, "description is required")
	ErrAddressRequired       = apperror.New(http.StatusBadRequest, "address is required")
	ErrPriceTooLow           = apperror.New(http.StatusBadRequest, "price per day must be at least 100")
	ErrInvalidDiscount       = apperror.New(http.StatusBadRequest, "monthly discount must be between 0 and 90")
	ErrInvalidTag            = apperror.New(http.StatusBadRequest, "invalid tag id")
	ErrPermissionDenied      = apperror.New(http.StatusForbidden, "permission denied")
	ErrHasActiveReservations = apperror.New(http.StatusConflict, "office has active reservations")
)

// MinPricePerDay is the lowest allowed daily price in minor currency units.
const MinPricePerDay = 100

// ApprovalStatus tracks moderation of a listed office.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// Office is a bookable coworking space listed by a host.
// PricePerDay is in minor currency units; MonthlyDiscount is an integer
// percentage applied to reservations of 28 days or more.
type Office struct {
	ID              string
	UserID          string // owning host
	Title           string
	Description     string
	Lat             float64
	Lng             float64
	AddressLine1    string
	Hidden          bool
	ApprovalStatus  ApprovalStatus
	PricePerDay     int64
	MonthlyDiscount int
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Tags               []tag.Tag
	ActiveReservations int
}

// Filter defines parameters for listing offices.
// Only approved, visible offices are listed; Lat/Lng switch ordering to
// distance from the given point.
type Filter struct {
	UserID    string // offices owned by this host
	VisitorID string // offices this user has reserved at least once
	Lat       *float64
	Lng       *float64
	Page      int
	PageSize  int
}
