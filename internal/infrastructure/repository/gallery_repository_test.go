package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/VSP7988/ISD/internal/domain"
)

var galleryCols = []string{"id", "title", "image_url", "order", "user_id", "created_at", "updated_at"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGalleryRepository_List(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGalleryRepository(db)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, title, image_url, "order", user_id, created_at, updated_at\s+FROM natural_stones_gallery\s+ORDER BY "order" ASC`).
		WillReturnRows(sqlmock.NewRows(galleryCols).
			AddRow("a", "Slate", "https://cdn/x/a.jpg", 0, "admin", now, now).
			AddRow("b", "", "https://cdn/x/b.jpg", 1, "admin", now, now))

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, images, 2)
	assert.Equal(t, "Slate", images[0].Title)
	assert.Equal(t, "", images[1].Title)
	assert.Equal(t, 1, images[1].Order)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepository_ListEmpty(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGalleryRepository(db)

	mock.ExpectQuery(`FROM natural_stones_gallery`).WillReturnRows(sqlmock.NewRows(galleryCols))

	images, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, images)
	assert.Empty(t, images)
}

func TestGalleryRepository_Get(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGalleryRepository(db)
	now := time.Now()

	mock.ExpectQuery(`FROM natural_stones_gallery WHERE id = \$1`).WithArgs("a").
		WillReturnRows(sqlmock.NewRows(galleryCols).AddRow("a", "Slate", "https://cdn/x/a.jpg", 3, "admin", now, now))
	mock.ExpectQuery(`FROM natural_stones_gallery WHERE id = \$1`).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(galleryCols))

	img, err := repo.Get(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, 3, img.Order)

	_, err = repo.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepository_InsertMany(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(sqlmock.Sqlmock)
		wantErr   bool
	}{
		{
			name: "single statement for the whole batch",
			setupMock: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				mock.ExpectQuery(`INSERT INTO natural_stones_gallery \(title, image_url, "order", user_id\)\s+VALUES \(\$1, \$2, \$3, \$4\), \(\$5, \$6, \$7, \$8\)\s+RETURNING`).
					WithArgs("one", "https://cdn/x/1.jpg", 2, "admin", "two", "https://cdn/x/2.jpg", 3, "admin").
					WillReturnRows(sqlmock.NewRows(galleryCols).
						AddRow("id-1", "one", "https://cdn/x/1.jpg", 2, "admin", now, now).
						AddRow("id-2", "two", "https://cdn/x/2.jpg", 3, "admin", now, now))
			},
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`INSERT INTO natural_stones_gallery`).WillReturnError(sql.ErrConnDone)
			},
			wantErr: true,
		},
		{
			name: "short result",
			setupMock: func(mock sqlmock.Sqlmock) {
				now := time.Now()
				mock.ExpectQuery(`INSERT INTO natural_stones_gallery`).
					WillReturnRows(sqlmock.NewRows(galleryCols).AddRow("id-1", "one", "https://cdn/x/1.jpg", 2, "admin", now, now))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			repo := NewGalleryRepository(db)
			tt.setupMock(mock)

			rows, err := repo.InsertMany(context.Background(), []domain.NewGalleryImage{
				{Title: "one", ImageURL: "https://cdn/x/1.jpg", Order: 2, UserID: "admin"},
				{Title: "two", ImageURL: "https://cdn/x/2.jpg", Order: 3, UserID: "admin"},
			})
			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, rows)
			} else {
				require.NoError(t, err)
				require.Len(t, rows, 2)
				assert.Equal(t, []int{2, 3}, []int{rows[0].Order, rows[1].Order})
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGalleryRepository_InsertManyEmpty(t *testing.T) {
	db, mock := newMock(t)
	rows, err := NewGalleryRepository(db).InsertMany(context.Background(), nil)
	assert.NoError(t, err)
	assert.Nil(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepository_UpdateTitle(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGalleryRepository(db)

	mock.ExpectExec(`UPDATE natural_stones_gallery SET title = \$1`).WithArgs("", "a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE natural_stones_gallery SET title = \$1`).WithArgs("x", "gone").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.UpdateTitle(context.Background(), "a", ""))
	assert.ErrorIs(t, repo.UpdateTitle(context.Background(), "gone", "x"), domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepository_Delete(t *testing.T) {
	db, mock := newMock(t)
	repo := NewGalleryRepository(db)

	mock.ExpectExec(`DELETE FROM natural_stones_gallery WHERE id = \$1`).WithArgs("a").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM natural_stones_gallery`).WithArgs("b").
		WillReturnError(sql.ErrConnDone)

	assert.NoError(t, repo.Delete(context.Background(), "a"))
	assert.ErrorIs(t, repo.Delete(context.Background(), "b"), sql.ErrConnDone)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGalleryRepository_ImageURLs(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT image_url FROM natural_stones_gallery`).
		WillReturnRows(sqlmock.NewRows([]string{"image_url"}).AddRow("https://cdn/x/a.jpg"))

	urls, err := NewGalleryRepository(db).ImageURLs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/x/a.jpg"}, urls)
}
