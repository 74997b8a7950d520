package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/VSP7988/ISD/internal/domain"
	"github.com/VSP7988/ISD/internal/logger"
)

const logoCacheKey = "logo_url"

var allowedLogoExtensions = map[string]bool{
	"png":  true,
	"jpg":  true,
	"jpeg": true,
	"svg":  true,
}

// LogoService replaces the site logo. The file goes to the assets bucket and
// its URL is stored in site_settings, following the gallery pipeline.
type LogoService struct {
	repo       domain.SiteSettingRepository
	store      domain.ObjectStore
	compressor ImageCompressor
	bucket     string
	cache      *SettingsCache
	log        *logger.Logger
}

func NewLogoService(repo domain.SiteSettingRepository, store domain.ObjectStore, compressor ImageCompressor, bucket string, cache *SettingsCache, log *logger.Logger) *LogoService {
	return &LogoService{
		repo:       repo,
		store:      store,
		compressor: compressor,
		bucket:     bucket,
		cache:      cache,
		log:        log.WithComponent("logo"),
	}
}

// CurrentLogo returns the stored logo URL, or "" when none was uploaded.
func (s *LogoService) CurrentLogo(ctx context.Context) (string, error) {
	if v, ok := s.cache.Get(logoCacheKey); ok {
		return v, nil
	}
	setting, err := s.repo.Get(ctx)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}
	url := ""
	if setting != nil && setting.LogoURL != nil {
		url = *setting.LogoURL
	}
	s.cache.Set(logoCacheKey, url)
	return url, nil
}

// ReplaceLogo stores f as the new logo and removes the previous object.
func (s *LogoService) ReplaceLogo(ctx context.Context, f File, owner string) (*domain.SiteSetting, error) {
	if f.size() > MaxUploadBytes {
		return nil, validationError(f.Name, fmt.Sprintf("File %q exceeds 100MB limit", f.Name))
	}
	ext := f.extension()
	if !allowedLogoExtensions[ext] {
		return nil, validationError(f.Name, "Logo must be a PNG, JPG or SVG file")
	}

	data := f.Data
	if ext != "svg" {
		out, outExt, err := s.compressor.Compress(ctx, f.Name, f.Data)
		if err != nil {
			return nil, compressionError(f.Name, err)
		}
		data = out
		if outExt != "" {
			ext = outExt
		}
	}

	previous, _ := s.CurrentLogo(ctx)

	key := "logo-" + uuid.NewString() + "." + ext
	if err := s.store.PutObject(ctx, s.bucket, key, data, contentTypeFor(ext)); err != nil {
		return nil, uploadError(f.Name, err)
	}
	url := s.store.PublicURL(s.bucket, key)

	setting, err := s.repo.SaveLogo(ctx, url, owner)
	if err != nil {
		if rmErr := s.store.RemoveObjects(context.Background(), s.bucket, []string{key}); rmErr != nil {
			s.log.WithError(rmErr).WithField("key", key).Warn("orphaned logo object left in storage")
		}
		return nil, persistenceError(OpUpdate, "Failed to save logo", err)
	}
	s.cache.Invalidate(logoCacheKey)

	if old := objectKeyFromURL(previous); old != "" && old != key {
		if err := s.store.RemoveObjects(ctx, s.bucket, []string{old}); err != nil {
			s.log.WithError(err).WithField("key", old).Warn("failed to delete previous logo (ignored)")
		}
	}
	s.log.WithField("key", key).Info("logo replaced")
	return setting, nil
}
