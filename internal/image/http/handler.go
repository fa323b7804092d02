package http

import (
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deskhive/office-booking-backend/internal/auth"
	"github.com/deskhive/office-booking-backend/internal/image"
	"github.com/deskhive/office-booking-backend/internal/pkg/response"
)

type Handler struct {
	service image.Service
}

func NewHandler(service image.Service) *Handler {
	return &Handler{service: service}
}

type ImageResponse struct {
	ID           string    `json:"id"`
	OfficeID     string    `json:"office_id"`
	Filename     string    `json:"filename"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *image.Image) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID,
		OfficeID:    img.OfficeID,
		Filename:    img.Filename,
		ContentType: img.ContentType,
		Size:        img.Size,
		URL:         image.URL(img.ID),
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailPath != nil {
		u := image.ThumbnailURL(img.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}

// Upload stores a new image for an office. Owner only.
func (h *Handler) Upload(c *gin.Context) {
	officeID := c.Param("id")

	header, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	img, err := h.service.Upload(c.Request.Context(), officeID, header, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewImageResponse(img))
}

// ListByOffice returns all images attached to an office.
func (h *Handler) ListByOffice(c *gin.Context) {
	officeID := c.Param("id")

	images, err := h.service.ListByOffice(c.Request.Context(), officeID)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ImageResponse, len(images))
	for i, img := range images {
		items[i] = NewImageResponse(img)
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Serve streams the image content by ID.
func (h *Handler) Serve(c *gin.Context) {
	id := c.Param("id")

	stream, img, err := h.service.Download(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", img.ContentType)
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		// Response already started, nothing left to report to the client.
		return
	}
}

// ServeThumbnail streams the thumbnail (always JPEG) by image ID.
func (h *Handler) ServeThumbnail(c *gin.Context) {
	id := c.Param("id")

	stream, img, err := h.service.DownloadThumbnail(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	defer stream.Close()

	c.Header("Content-Type", "image/jpeg")
	c.Header("Content-Disposition", "inline; filename=\""+img.Filename+"_thumb.jpg\"")

	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, stream); err != nil {
		return
	}
}

// Delete removes an office image. Owner only.
func (h *Handler) Delete(c *gin.Context) {
	officeID := c.Param("id")
	imageID := c.Param("imageID")

	if err := h.service.Delete(c.Request.Context(), officeID, imageID, auth.GetUserID(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
