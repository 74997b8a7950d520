package application

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
)

var errStore = errors.New("store unavailable")

type fakeGalleryRepo struct {
	mu          sync.Mutex
	rows        []domain.GalleryImage
	nextID      int
	listErr     error
	insertErr   error
	updateErr   error
	deleteErr   error
	insertCalls int
}

func (r *fakeGalleryRepo) seed(titles ...string) {
	for i, t := range titles {
		r.nextID++
		r.rows = append(r.rows, domain.GalleryImage{
			ID:       fmt.Sprintf("img-%d", r.nextID),
			Title:    t,
			ImageURL: fmt.Sprintf("https://cdn.test/natural-stones/seed-%d.jpg", r.nextID),
			Order:    i,
		})
	}
}

func (r *fakeGalleryRepo) List(ctx context.Context) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	out := append([]domain.GalleryImage(nil), r.rows...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out, nil
}

func (r *fakeGalleryRepo) Get(ctx context.Context, id string) (*domain.GalleryImage, error) {
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

func (r *fakeGalleryRepo) InsertMany(ctx context.Context, images []domain.NewGalleryImage) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	out := make([]domain.GalleryImage, 0, len(images))
	for _, img := range images {
		r.nextID++
		row := domain.GalleryImage{
			ID:        fmt.Sprintf("img-%d", r.nextID),
			Title:     img.Title,
			ImageURL:  img.ImageURL,
			Order:     img.Order,
			UserID:    img.UserID,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
		r.rows = append(r.rows, row)
		out = append(out, row)
	}
	return out, nil
}

func (r *fakeGalleryRepo) UpdateTitle(ctx context.Context, id string, title string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.updateErr != nil {
		return r.updateErr
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows[i].Title = title
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeGalleryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.deleteErr != nil {
		return r.deleteErr
	}
	for i := range r.rows {
		if r.rows[i].ID == id {
			r.rows = append(r.rows[:i], r.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeStore fails PutObject for payloads equal to "fail-upload".
type fakeStore struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	removeErr error
	puts      int32
}

func newFakeStore() *fakeStore {
	return &fakeStore{objects: make(map[string][]byte)}
}

func (s *fakeStore) PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	atomic.AddInt32(&s.puts, 1)
	if string(body) == "fail-upload" {
		return errStore
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+key] = body
	return nil
}

func (s *fakeStore) PublicURL(bucket, key string) string {
	return "https://cdn.test/" + bucket + "/" + key
}

func (s *fakeStore) RemoveObjects(ctx context.Context, bucket string, keys []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, keys...)
	if s.removeErr != nil {
		return s.removeErr
	}
	for _, k := range keys {
		delete(s.objects, bucket+"/"+k)
	}
	return nil
}

func (s *fakeStore) ListObjects(ctx context.Context, bucket string) ([]domain.StoredObject, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.StoredObject
	prefix := bucket + "/"
	for k, v := range s.objects {
		if strings.HasPrefix(k, prefix) {
			out = append(out, domain.StoredObject{Key: strings.TrimPrefix(k, prefix), Size: int64(len(v))})
		}
	}
	return out, nil
}

func (s *fakeStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

func (s *fakeStore) putCalls() int {
	return int(atomic.LoadInt32(&s.puts))
}

// fakeCompressor passes data through, fails on "bad" payloads and sleeps
// per file name to shuffle completion order.
type fakeCompressor struct {
	calls  int32
	delays map[string]time.Duration
	hook   func(name string)
}

func (c *fakeCompressor) Compress(ctx context.Context, name string, data []byte) ([]byte, string, error) {
	atomic.AddInt32(&c.calls, 1)
	if d := c.delays[name]; d > 0 {
		time.Sleep(d)
	}
	if c.hook != nil {
		c.hook(name)
	}
	if string(data) == "bad" {
		return nil, "", errors.New("corrupt image")
	}
	return data, "jpg", nil
}

func (c *fakeCompressor) callCount() int {
	return int(atomic.LoadInt32(&c.calls))
}

func newTestGalleryService(repo *fakeGalleryRepo, store *fakeStore, comp *fakeCompressor) *GalleryService {
	return NewGalleryService(repo, store, comp, "natural-stones", logger.Discard(), nil)
}

func file(name, payload string) File {
	return File{Name: name, Size: int64(len(payload)), Data: []byte(payload)}
}
