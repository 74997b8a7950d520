package repository

import (
	"context"
	"database/sql"

	"github.com/VSP7988/ISD/internal/domain"
)

type siteSettingRepository struct {
	db *sql.DB
}

func NewSiteSettingRepository(db *sql.DB) domain.SiteSettingRepository {
	return &siteSettingRepository{db: db}
}

// Get returns the most recently updated settings row.
func (r *siteSettingRepository) Get(ctx context.Context) (*domain.SiteSetting, error) {
	query := `SELECT id, logo_url, user_id, created_at, updated_at
			  FROM site_settings
			  ORDER BY updated_at DESC
			  LIMIT 1`

	var s domain.SiteSetting
	var logo sql.NullString
	err := r.db.QueryRowContext(ctx, query).Scan(&s.ID, &logo, &s.UserID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	if logo.Valid {
		s.LogoURL = &logo.String
	}
	return &s, nil
}

// SaveLogo updates the latest settings row, or creates the first one.
func (r *siteSettingRepository) SaveLogo(ctx context.Context, logoURL string, userID string) (*domain.SiteSetting, error) {
	update := `UPDATE site_settings
			   SET logo_url = $1, user_id = $2, updated_at = NOW()
			   WHERE id = (SELECT id FROM site_settings ORDER BY updated_at DESC LIMIT 1)
			   RETURNING id, logo_url, user_id, created_at, updated_at`

	s, err := r.scanOne(r.db.QueryRowContext(ctx, update, logoURL, userID))
	if err == nil {
		return s, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	insert := `INSERT INTO site_settings (logo_url, user_id)
			   VALUES ($1, $2)
			   RETURNING id, logo_url, user_id, created_at, updated_at`
	return r.scanOne(r.db.QueryRowContext(ctx, insert, logoURL, userID))
}

func (r *siteSettingRepository) scanOne(row *sql.Row) (*domain.SiteSetting, error) {
	var s domain.SiteSetting
	var logo sql.NullString
	if err := row.Scan(&s.ID, &logo, &s.UserID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	if logo.Valid {
		s.LogoURL = &logo.String
	}
	return &s, nil
}
