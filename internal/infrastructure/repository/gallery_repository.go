package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/VSP7988/ISD/internal/domain"
)

const galleryColumns = `id, title, image_url, "order", user_id, created_at, updated_at`

type GalleryRepository struct {
	db *sql.DB
}

func NewGalleryRepository(db *sql.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

func (r *GalleryRepository) List(ctx context.Context) ([]domain.GalleryImage, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT `+galleryColumns+`
		FROM natural_stones_gallery
		ORDER BY "order" ASC, created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanImages(rows)
}

func (r *GalleryRepository) Get(ctx context.Context, id string) (*domain.GalleryImage, error) {
	var img domain.GalleryImage
	err := r.db.QueryRowContext(ctx, `SELECT `+galleryColumns+` FROM natural_stones_gallery WHERE id = $1`, id).
		Scan(&img.ID, &img.Title, &img.ImageURL, &img.Order, &img.UserID, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

// InsertMany writes the whole batch in one statement, so either every row
// is stored or none is.
func (r *GalleryRepository) InsertMany(ctx context.Context, images []domain.NewGalleryImage) ([]domain.GalleryImage, error) {
	if len(images) == 0 {
		return nil, nil
	}

	values := make([]string, 0, len(images))
	args := make([]interface{}, 0, len(images)*4)
	for i, img := range images {
		n := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4))
		args = append(args, img.Title, img.ImageURL, img.Order, img.UserID)
	}

	query := `
		INSERT INTO natural_stones_gallery (title, image_url, "order", user_id)
		VALUES ` + strings.Join(values, ", ") + `
		RETURNING ` + galleryColumns

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inserted, err := scanImages(rows)
	if err != nil {
		return nil, err
	}
	if len(inserted) != len(images) {
		return nil, fmt.Errorf("inserted %d of %d gallery rows", len(inserted), len(images))
	}
	return inserted, nil
}

func (r *GalleryRepository) UpdateTitle(ctx context.Context, id string, title string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE natural_stones_gallery SET title = $1, updated_at = NOW() WHERE id = $2", title, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *GalleryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM natural_stones_gallery WHERE id = $1", id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

// ImageURLs returns every stored image URL. Used by the orphan sweeper.
func (r *GalleryRepository) ImageURLs(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT image_url FROM natural_stones_gallery")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var urls []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, err
		}
		urls = append(urls, u)
	}
	return urls, rows.Err()
}

func scanImages(rows *sql.Rows) ([]domain.GalleryImage, error) {
	images := []domain.GalleryImage{}
	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.ID, &img.Title, &img.ImageURL, &img.Order, &img.UserID, &img.CreatedAt, &img.UpdatedAt); err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func expectOneRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
