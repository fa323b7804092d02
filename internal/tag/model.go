package tag

import (
	"errors"
	"time"
)

var (
	ErrNotFound      = errors.New("tag not found")
	ErrNameRequired  = errors.New("name is required")
	ErrAlreadyExists = errors.New("tag already exists")
)

// Tag is a label offices can be classified with (e.g., "has_coffee_machine").
type Tag struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// Filter defines parameters for listing tags.
type Filter struct {
	Keyword  string
	Page     int
	PageSize int
}
