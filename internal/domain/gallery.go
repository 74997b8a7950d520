package domain

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("not found")

// GalleryImage is one row of the curated natural stones gallery.
// Order only sequences the display; it is neither unique nor contiguous.
type GalleryImage struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ImageURL  string    `json:"image_url"`
	Order     int       `json:"order"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewGalleryImage is the insert shape of a gallery row.
type NewGalleryImage struct {
	Title    string `json:"title"`
	ImageURL string `json:"image_url"`
	Order    int    `json:"order"`
	UserID   string `json:"user_id"`
}

type GalleryRepository interface {
	List(ctx context.Context) ([]GalleryImage, error)
	Get(ctx context.Context, id string) (*GalleryImage, error)
	// InsertMany writes all rows or none.
	InsertMany(ctx context.Context, images []NewGalleryImage) ([]GalleryImage, error)
	UpdateTitle(ctx context.Context, id string, title string) error
	Delete(ctx context.Context, id string) error
}
