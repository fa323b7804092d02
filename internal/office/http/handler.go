package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/office-booking-backend/internal/auth"
	"github.com/deskhive/office-booking-backend/internal/office"
	"github.com/deskhive/office-booking-backend/internal/pkg/request"
	"github.com/deskhive/office-booking-backend/internal/pkg/response"
)

type Handler struct {
	service office.Service
}

func NewHandler(service office.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListOfficesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	filter := office.Filter{
		UserID:    req.UserID,
		VisitorID: req.VisitorID,
		Lat:       req.Lat,
		Lng:       req.Lng,
		Page:      req.Page,
		PageSize:  req.PageSize,
	}

	offices, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OfficeResponse, len(offices))
	for i, o := range offices {
		items[i] = NewOfficeResponse(o)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	o, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOfficeResponse(o))
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateOfficeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	userID := auth.GetUserID(c)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	req := office.CreateRequest{
		UserID:          userID,
		Title:           body.Title,
		Description:     body.Description,
		Lat:             body.Lat,
		Lng:             body.Lng,
		AddressLine1:    body.AddressLine1,
		Hidden:          body.Hidden,
		PricePerDay:     body.PricePerDay,
		MonthlyDiscount: body.MonthlyDiscount,
		TagIDs:          body.Tags,
	}

	o, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewOfficeResponse(o))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateOfficeBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := office.UpdateRequest{
		Title:           body.Title,
		Description:     body.Description,
		Lat:             body.Lat,
		Lng:             body.Lng,
		AddressLine1:    body.AddressLine1,
		Hidden:          body.Hidden,
		PricePerDay:     body.PricePerDay,
		MonthlyDiscount: body.MonthlyDiscount,
		TagIDs:          body.Tags,
	}

	o, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewOfficeResponse(o))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
