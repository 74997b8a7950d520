package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/stretchr/testify/require"

	"github.com/VSP7988/ISD/internal/application"
	"github.com/VSP7988/ISD/internal/catalog"
	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
)

const (
	testEmail    = "admin@ishastoneanddecor.com"
	testPassword = "Admin@123"
)

var errDown = errors.New("store down")

type memGallery struct {
	mu      sync.Mutex
	rows    []domain.GalleryImage
	next    int
	listErr error
}

func (r *memGallery) List(ctx context.Context) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return append([]domain.GalleryImage(nil), r.rows...), nil
}

func (r *memGallery) Get(ctx context.Context, id string) (*domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, row := range r.rows {
		if row.ID == id {
			row := row
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memGallery) InsertMany(ctx context.Context, images []domain.NewGalleryImage) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.GalleryImage
	for _, img := range images {
		r.next++
		row := domain.GalleryImage{ID: fmt.Sprintf("row-%d", r.next), Title: img.Title, ImageURL: img.ImageURL, Order: img.Order, UserID: img.UserID}
		r.rows = append(r.rows, row)
		out = append(out, row)
	}
	return out, nil
}

func (r *memGallery) UpdateTitle(ctx context.Context, id string, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Title = title
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memGallery) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

type memStore struct {
	mu      sync.Mutex
	objects map[string]int
}

func (s *memStore) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.objects == nil {
		s.objects = map[string]int{}
	}
	s.objects[bucket+"/"+key] = len(body)
	return nil
}

func (s *memStore) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func (s *memStore) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, k := range keys {
		delete(s.objects, bucket+"/"+k)
	}
	return nil
}

func (s *memStore) ListObjects(ctx context.Context, bucket string) ([]domain.StoredObject, error) {
	return nil, nil
}

type memSettings struct {
	setting *domain.SiteSetting
}

func (r *memSettings) Get(ctx context.Context) (*domain.SiteSetting, error) {
	if r.setting == nil {
		return nil, domain.ErrNotFound
	}
	return r.setting, nil
}

func (r *memSettings) SaveLogo(ctx context.Context, logoURL string, userID string) (*domain.SiteSetting, error) {
	u := logoURL
	r.setting = &domain.SiteSetting{ID: "s1", LogoURL: &u, UserID: userID}
	return r.setting, nil
}

type memContent struct {
	block *domain.ContentBlock
	err   error
}

func (r *memContent) Get(ctx context.Context) (*domain.ContentBlock, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.block == nil {
		return nil, domain.ErrNotFound
	}
	return r.block, nil
}

func (r *memContent) Save(ctx context.Context, description string, userID string) (*domain.ContentBlock, error) {
	r.block = &domain.ContentBlock{ID: "c1", Description: description, UserID: userID}
	return r.block, nil
}

type passCompressor struct{}

func (passCompressor) Compress(ctx context.Context, name string, data []byte) ([]byte, string, error) {
	return data, "jpg", nil
}

type pinger struct{ err error }

func (p pinger) PingContext(ctx context.Context) error { return p.err }

type testEnv struct {
	app      *fiber.App
	gallery  *memGallery
	store    *memStore
	settings *memSettings
	content  *memContent
}

func newTestEnv(t *testing.T, brochureDir string) *testEnv {
	t.Helper()
	cat, err := catalog.Load()
	require.NoError(t, err)

	log := logger.Discard()
	env := &testEnv{
		gallery:  &memGallery{},
		store:    &memStore{},
		settings: &memSettings{},
		content:  &memContent{},
	}

	limiter := application.NewRateLimiter(time.Minute, 5)
	t.Cleanup(limiter.Stop)

	env.app = NewApp(Deps{
		Catalog:   cat,
		Auth:      application.NewAuthService(testEmail, testPassword),
		Sessions:  session.New(),
		Gallery:   application.NewGalleryService(env.gallery, env.store, passCompressor{}, "natural-stones", log, nil),
		Logo:      application.NewLogoService(env.settings, env.store, passCompressor{}, "site-assets", application.NewSettingsCache(time.Minute), log),
		Content:   application.NewContentService(env.content),
		Brochures: application.NewBrochureService(cat, brochureDir, "https://site.test", nil, limiter, log),
		DB:        pinger{},
		Log:       log,
	})
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*http.Response, string) {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	return resp, string(body)
}

// login signs in and returns the session cookie.
func (e *testEnv) login(t *testing.T) *http.Cookie {
	t.Helper()
	resp, _ := e.do(t, formRequest("/login", url.Values{"email": {testEmail}, "password": {testPassword}}))
	require.Equal(t, fiber.StatusSeeOther, resp.StatusCode)
	for _, c := range resp.Cookies() {
		if c.Name == "session_id" {
			return c
		}
	}
	t.Fatal("no session cookie")
	return nil
}

func formRequest(target string, values url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	return req
}
