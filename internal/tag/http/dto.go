package http

import (
	"time"

	"github.com/deskhive/office-booking-backend/internal/pkg/request"
	"github.com/deskhive/office-booking-backend/internal/tag"
)

// ListTagsRequest defines query parameters for listing tags.
type ListTagsRequest struct {
	request.ListParams
	Keyword string `form:"keyword"`
}

// Validate performs custom validation for ListTagsRequest.
func (r *ListTagsRequest) Validate() error {
	return nil
}

type TagResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func NewResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: t.CreatedAt,
	}
}

type CreateRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// Validate performs custom validation for CreateRequest.
func (r *CreateRequest) Validate() error {
	return nil
}
