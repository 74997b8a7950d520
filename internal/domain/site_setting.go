package domain

import (
	"context"
	"time"
)

// SiteSetting holds installation-wide branding. LogoURL is nil until a
// logo has been uploaded.
type SiteSetting struct {
	ID        string    `json:"id"`
	LogoURL   *string   `json:"logo_url"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SiteSettingRepository interface {
	Get(ctx context.Context) (*SiteSetting, error)
	SaveLogo(ctx context.Context, logoURL string, userID string) (*SiteSetting, error)
}
