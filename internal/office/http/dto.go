package http

import (
	"time"

	"github.com/deskhive/office-booking-backend/internal/office"
	"github.com/deskhive/office-booking-backend/internal/pkg/request"
)

// ListOfficesRequest defines query parameters for the public office listing.
type ListOfficesRequest struct {
	request.ListParams
	UserID    string   `form:"user_id" binding:"omitempty,uuid"`
	VisitorID string   `form:"visitor_id" binding:"omitempty,uuid"`
	Lat       *float64 `form:"lat" binding:"omitempty,min=-90,max=90"`
	Lng       *float64 `form:"lng" binding:"omitempty,min=-180,max=180"`
}

// Validate performs custom validation for ListOfficesRequest.
func (r *ListOfficesRequest) Validate() error {
	return nil
}

type TagBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type OfficeResponse struct {
	ID                 string     `json:"id"`
	UserID             string     `json:"user_id"`
	Title              string     `json:"title"`
	Description        string     `json:"description"`
	Lat                float64    `json:"lat"`
	Lng                float64    `json:"lng"`
	AddressLine1       string     `json:"address_line1"`
	Hidden             bool       `json:"hidden"`
	ApprovalStatus     string     `json:"approval_status"`
	PricePerDay        int64      `json:"price_per_day"`
	MonthlyDiscount    int        `json:"monthly_discount"`
	Tags               []TagBrief `json:"tags"`
	ActiveReservations int        `json:"active_reservations"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func NewOfficeResponse(o *office.Office) OfficeResponse {
	tags := make([]TagBrief, 0, len(o.Tags))
	for _, t := range o.Tags {
		tags = append(tags, TagBrief{ID: t.ID, Name: t.Name})
	}

	return OfficeResponse{
		ID:                 o.ID,
		UserID:             o.UserID,
		Title:              o.Title,
		Description:        o.Description,
		Lat:                o.Lat,
		Lng:                o.Lng,
		AddressLine1:       o.AddressLine1,
		Hidden:             o.Hidden,
		ApprovalStatus:     string(o.ApprovalStatus),
		PricePerDay:        o.PricePerDay,
		MonthlyDiscount:    o.MonthlyDiscount,
		Tags:               tags,
		ActiveReservations: o.ActiveReservations,
		CreatedAt:          o.CreatedAt,
		UpdatedAt:          o.UpdatedAt,
	}
}

type CreateOfficeBody struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description" binding:"required"`
	Lat             float64  `json:"lat" binding:"required,min=-90,max=90"`
	Lng             float64  `json:"lng" binding:"required,min=-180,max=180"`
	AddressLine1    string   `json:"address_line1" binding:"required"`
	Hidden          bool     `json:"hidden"`
	PricePerDay     int64    `json:"price_per_day" binding:"required,min=100"`
	MonthlyDiscount int      `json:"monthly_discount" binding:"omitempty,min=0,max=90"`
	Tags            []string `json:"tags" binding:"omitempty,dive,uuid"`
}

type UpdateOfficeBody struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	Lat             *float64 `json:"lat" binding:"omitempty,min=-90,max=90"`
	Lng             *float64 `json:"lng" binding:"omitempty,min=-180,max=180"`
	AddressLine1    *string  `json:"address_line1"`
	Hidden          *bool    `json:"hidden"`
	PricePerDay     *int64   `json:"price_per_day" binding:"omitempty,min=100"`
	MonthlyDiscount *int     `json:"monthly_discount" binding:"omitempty,min=0,max=90"`
	Tags            []string `json:"tags" binding:"omitempty,dive,uuid"`
}
