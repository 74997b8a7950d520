package repository

import (
	"context"
	"database/sql"

	"github.com/VSP7988/ISD/internal/domain"
)

type contentRepository struct {
	db *sql.DB
}

// NewContentRepository stores the natural stones page description.
func NewContentRepository(db *sql.DB) domain.ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) Get(ctx context.Context) (*domain.ContentBlock, error) {
	query := `SELECT id, description, user_id, created_at, updated_at
			  FROM natural_stones_content
			  ORDER BY updated_at DESC
			  LIMIT 1`

	var c domain.ContentBlock
	err := r.db.QueryRowContext(ctx, query).Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *contentRepository) Save(ctx context.Context, description string, userID string) (*domain.ContentBlock, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var c domain.ContentBlock
	err = tx.QueryRowContext(ctx, `
		UPDATE natural_stones_content
		SET description = $1, user_id = $2, updated_at = NOW()
		WHERE id = (SELECT id FROM natural_stones_content ORDER BY updated_at DESC LIMIT 1)
		RETURNING id, description, user_id, created_at, updated_at
	`, description, userID).Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		err = tx.QueryRowContext(ctx, `
			INSERT INTO natural_stones_content (description, user_id)
			VALUES ($1, $2)
			RETURNING id, description, user_id, created_at, updated_at
		`, description, userID).Scan(&c.ID, &c.Description, &c.UserID, &c.CreatedAt, &c.UpdatedAt)
	}
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &c, nil
}
