package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/office-booking-backend/internal/auth"
	"github.com/deskhive/office-booking-backend/internal/pkg/request"
	"github.com/deskhive/office-booking-backend/internal/pkg/response"
	"github.com/deskhive/office-booking-backend/internal/reservation"
)

type Handler struct {
	service reservation.Service
}

func NewHandler(service reservation.Service) *Handler {
	return &Handler{service: service}
}

// List returns the authenticated user's own reservations.
func (h *Handler) List(c *gin.Context) {
	h.list(c, false)
}

// ListForHost returns reservations made on offices the authenticated user owns.
func (h *Handler) ListForHost(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) list(c *gin.Context, asHost bool) {
	var req ListReservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	actorID := auth.GetUserID(c)

	filter := reservation.Filter{
		OfficeID: req.OfficeID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	if asHost {
		filter.HostID = actorID
		// Hosts may narrow to one visitor.
		filter.UserID = req.UserID
	} else {
		filter.UserID = actorID
	}

	if req.FromDate != "" && req.ToDate != "" {
		from, _ := parseDate(req.FromDate)
		to, _ := parseDate(req.ToDate)
		filter.FromDate = &from
		filter.ToDate = &to
	}

	reservations, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		items[i] = NewReservationResponse(r)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Create books an office for the authenticated user.
func (h *Handler) Create(c *gin.Context) {
	var body CreateReservationBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	startDate, err := parseDate(body.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_date"})
		return
	}
	endDate, err := parseDate(body.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_date"})
		return
	}

	// The lock wait is part of the request; give the handler a ceiling so a
	// stuck booking cannot pin the connection.
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	res, err := h.service.Create(ctx, reservation.CreateRequest{
		UserID:    userID,
		OfficeID:  body.OfficeID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewReservationResponse(res))
}

// Get returns one reservation, visible to the booking user and the host.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}

// Cancel transitions the reservation to cancelled.
func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	res, err := h.service.Cancel(c.Request.Context(), uri.ID, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewReservationResponse(res))
}
