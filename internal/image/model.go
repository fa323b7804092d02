package image

import (
	"net/http"
	"time"

	"github.com/deskhive/office-booking-backend/internal/pkg/apperror"
)

var (
	ErrNotFound         = apperror.New(http.StatusNotFound, "image not found")
	ErrNotAnImage       = apperror.New(http.StatusBadRequest, "file is not an image")
	ErrPermissionDenied = apperror.New(http.StatusForbidden, "permission denied")
	ErrNoThumbnail      = apperror.New(http.StatusNotFound, "thumbnail not available")
)

// Image is a photo attached to an office listing.
type Image struct {
	ID            string
	OfficeID      string
	Filename      string
	StoragePath   string  // internal path, not exposed
	ThumbnailPath *string // internal path, not exposed
	ContentType   string
	Size          int64
	CreatedAt     time.Time
}

// URL returns the public URL for an image by its ID.
func URL(id string) string {
	return "/v1/images/" + id
}

// ThumbnailURL returns the public URL for an image's thumbnail by its ID.
func ThumbnailURL(id string) string {
	return "/v1/images/" + id + "/thumbnail"
}
