package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
	"github.com/VSP7988/ISD/internal/metrics"
)

// ImageCompressor shrinks one image. ext names the format of out.
type ImageCompressor interface {
	Compress(ctx context.Context, name string, data []byte) (out []byte, ext string, err error)
}

// uploadConcurrency bounds how many files of one batch are processed at once.
const uploadConcurrency = 4

type storedImage struct {
	title string
	url   string
	key   string
}

// GalleryService runs the compress -> upload -> record pipeline of the
// curated gallery against the table store and the object store.
type GalleryService struct {
	repo       domain.GalleryRepository
	store      domain.ObjectStore
	compressor ImageCompressor
	bucket     string
	log        *logger.Logger
	metrics    *metrics.Metrics
}

func NewGalleryService(repo domain.GalleryRepository, store domain.ObjectStore, compressor ImageCompressor, bucket string, log *logger.Logger, m *metrics.Metrics) *GalleryService {
	return &GalleryService{
		repo:       repo,
		store:      store,
		compressor: compressor,
		bucket:     bucket,
		log:        log.WithComponent("gallery"),
		metrics:    m,
	}
}

// GetAllImages returns every row ordered by display order.
func (s *GalleryService) GetAllImages(ctx context.Context) ([]domain.GalleryImage, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, loadError(err)
	}
	return images, nil
}

// AddImages processes a dropped batch. Row order is startOrder+index of
// each file in files. Rows are inserted only when every file was
// compressed and uploaded; otherwise nothing is inserted and the objects
// already uploaded for the batch are removed.
func (s *GalleryService) AddImages(ctx context.Context, files []File, startOrder int, owner string) ([]domain.GalleryImage, error) {
	if len(files) == 0 {
		return nil, nil
	}
	for _, f := range files {
		if f.size() > MaxUploadBytes {
			s.metrics.ObserveUpload("rejected", 1)
			return nil, validationError(f.Name, fmt.Sprintf("File %q exceeds 100MB limit", f.Name))
		}
	}

	results := make([]storedImage, len(files))
	done := make([]bool, len(files))

	// Siblings keep running when one file fails, so no derived context here.
	var g errgroup.Group
	g.SetLimit(uploadConcurrency)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			stored, err := s.process(ctx, f)
			if err != nil {
				return err
			}
			results[i] = stored
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	uploaded := make([]string, 0, len(files))
	for i, ok := range done {
		if ok {
			uploaded = append(uploaded, results[i].key)
		}
	}

	if err != nil {
		s.metrics.ObserveUpload("failed", len(files))
		s.discard(uploaded, "batch failed")
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		s.metrics.ObserveUpload("cancelled", len(files))
		s.discard(uploaded, "batch cancelled before insert")
		return nil, uploadError("", err)
	}

	rows := make([]domain.NewGalleryImage, len(files))
	for i, r := range results {
		rows[i] = domain.NewGalleryImage{
			Title:    r.title,
			ImageURL: r.url,
			Order:    startOrder + i,
			UserID:   owner,
		}
	}

	inserted, err := s.repo.InsertMany(ctx, rows)
	if err != nil {
		s.metrics.ObserveUpload("failed", len(files))
		s.discard(uploaded, "insert failed")
		return nil, persistenceError(OpInsert, "Failed to upload images", err)
	}

	s.metrics.ObserveUpload("stored", len(inserted))
	s.log.WithField("count", len(inserted)).Info("gallery images added")
	return inserted, nil
}

func (s *GalleryService) process(ctx context.Context, f File) (storedImage, error) {
	start := time.Now()
	data, ext, err := s.compressor.Compress(ctx, f.Name, f.Data)
	s.metrics.ObserveCompression(time.Since(start))
	if err != nil {
		s.log.WithError(err).WithField("file", f.Name).Warn("compression failed")
		return storedImage{}, compressionError(f.Name, err)
	}
	if ext == "" {
		ext = f.extension()
	}
	if ext == "" {
		ext = "jpg"
	}

	key := uuid.NewString() + "." + ext
	if err := s.store.PutObject(ctx, s.bucket, key, data, contentTypeFor(ext)); err != nil {
		s.log.WithError(err).WithField("file", f.Name).Warn("upload failed")
		return storedImage{}, uploadError(f.Name, err)
	}

	return storedImage{
		title: titleFromName(f.Name),
		url:   s.store.PublicURL(s.bucket, key),
		key:   key,
	}, nil
}

// discard removes objects whose rows were never written. It uses its own
// context because the request context may already be gone.
func (s *GalleryService) discard(keys []string, reason string) {
	if len(keys) == 0 {
		return
	}
	entry := s.log.WithField("keys", keys).WithField("reason", reason)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.store.RemoveObjects(ctx, s.bucket, keys); err != nil {
		entry.WithError(err).Warn("orphaned gallery objects left in storage")
		return
	}
	entry.Info("removed uploaded objects of a failed batch")
}

// UpdateTitle changes one row's title. Empty titles are accepted.
func (s *GalleryService) UpdateTitle(ctx context.Context, id string, title string) error {
	if err := s.repo.UpdateTitle(ctx, id, title); err != nil {
		return persistenceError(OpUpdate, "Failed to update title", err)
	}
	return nil
}

// DeleteImage removes the row's stored object (best effort) and the row.
// The object key always comes from the row itself. Only the row deletion
// is reported.
func (s *GalleryService) DeleteImage(ctx context.Context, id string) error {
	img, err := s.repo.Get(ctx, id)
	if err != nil {
		return persistenceError(OpDelete, "Failed to remove image", err)
	}
	if key := objectKeyFromURL(img.ImageURL); key != "" {
		if err := s.store.RemoveObjects(ctx, s.bucket, []string{key}); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("failed to delete gallery object (ignored)")
		}
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return persistenceError(OpDelete, "Failed to remove image", err)
	}
	return nil
}
