package domain

import (
	"context"
	"time"
)

// ContentBlock is an editable text block shown on a category page.
type ContentBlock struct {
	ID          string    `json:"id"`
	Description string    `json:"description"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ContentRepository interface {
	Get(ctx context.Context) (*ContentBlock, error)
	Save(ctx context.Context, description string, userID string) (*ContentBlock, error)
}
