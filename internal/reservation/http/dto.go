package http

import (
	"fmt"
	"time"

	"github.com/deskhive/office-booking-backend/internal/pkg/request"
	"github.com/deskhive/office-booking-backend/internal/reservation"
)

// ListReservationsRequest defines query parameters for listing reservations.
// from_date and to_date are calendar dates (YYYY-MM-DD) and must be given
// together; the window uses the same inclusive intersection rule as the
// availability check.
type ListReservationsRequest struct {
	request.ListParams
	OfficeID string `form:"office_id" binding:"omitempty,uuid"`
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=active cancelled"`
	FromDate string `form:"from_date" binding:"omitempty,datetime=2006-01-02"`
	ToDate   string `form:"to_date" binding:"omitempty,datetime=2006-01-02"`
}

// Validate performs custom validation for ListReservationsRequest.
func (r *ListReservationsRequest) Validate() error {
	if (r.FromDate == "") != (r.ToDate == "") {
		return fmt.Errorf("from_date and to_date must be provided together")
	}
	if r.FromDate != "" && r.ToDate <= r.FromDate {
		return fmt.Errorf("to_date must be after from_date")
	}
	return nil
}

type CreateReservationBody struct {
	OfficeID  string `json:"office_id" binding:"required,uuid"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02"`
}

type ReservationResponse struct {
	ID          string    `json:"id"`
	OfficeID    string    `json:"office_id"`
	OfficeTitle string    `json:"office_title"`
	UserID      string    `json:"user_id"`
	StartDate   string    `json:"start_date"`
	EndDate     string    `json:"end_date"`
	Status      string    `json:"status"`
	Price       int64     `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewReservationResponse(r *reservation.Reservation) ReservationResponse {
	return ReservationResponse{
		ID:          r.ID,
		OfficeID:    r.OfficeID,
		OfficeTitle: r.OfficeTitle,
		UserID:      r.UserID,
		StartDate:   r.StartDate.Format(time.DateOnly),
		EndDate:     r.EndDate.Format(time.DateOnly),
		Status:      string(r.Status),
		Price:       r.Price,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
