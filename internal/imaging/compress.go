// Package imaging shrinks uploaded photos to a size and dimension budget.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"strings"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var (
	// ErrConstraints is returned when no quality/size step fits the budget.
	ErrConstraints = errors.New("image cannot meet size constraints")
	// ErrTooLarge is returned for images declaring more than maxPixels.
	ErrTooLarge = errors.New("image dimensions too large")
)

const (
	// minDimension is the smallest side the halving steps go down to.
	minDimension = 16
	maxPixels    = 100_000_000
)

var qualityLadder = []int{92, 85, 78, 70, 62, 54, 46, 38}

// Options bounds the output of Compress.
type Options struct {
	MaxSizeMB    float64
	MaxDimension int
}

func (o Options) maxBytes() int {
	return int(o.MaxSizeMB * (1 << 20))
}

// Compressor applies fixed Options to every image it is given.
type Compressor struct {
	Options Options
}

// NewCompressor returns a Compressor with the given limits.
func NewCompressor(maxSizeMB float64, maxDimension int) *Compressor {
	return &Compressor{Options: Options{MaxSizeMB: maxSizeMB, MaxDimension: maxDimension}}
}

// Compress implements the gallery compressor contract. ext is the file
// extension (without dot) matching the returned bytes.
func (c *Compressor) Compress(ctx context.Context, name string, data []byte) ([]byte, string, error) {
	return Compress(ctx, name, data, c.Options)
}

// Compress returns data unchanged when it already fits opt, otherwise a
// JPEG no larger than opt.MaxSizeMB whose sides are at most opt.MaxDimension.
func Compress(ctx context.Context, name string, data []byte, opt Options) ([]byte, string, error) {
	if opt.MaxSizeMB <= 0 || opt.MaxDimension <= 0 {
		return nil, "", errors.New("invalid compression options")
	}
	if err := ctx.Err(); err != nil {
		return nil, "", err
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %q: %w", name, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, "", fmt.Errorf("%q is %dx%d: %w", name, cfg.Width, cfg.Height, ErrTooLarge)
	}
	if len(data) <= opt.maxBytes() && cfg.Width <= opt.MaxDimension && cfg.Height <= opt.MaxDimension {
		return data, extensionFor(format, name), nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode %q: %w", name, err)
	}

	// The fitted size is always tried, even for strips thinner than
	// minDimension; only the halving stops there.
	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), opt.MaxDimension)
	for {
		scaled := resize(img, w, h)
		for _, q := range qualityLadder {
			if err := ctx.Err(); err != nil {
				return nil, "", err
			}
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, scaled, &jpeg.Options{Quality: q}); err != nil {
				return nil, "", fmt.Errorf("encode %q: %w", name, err)
			}
			if buf.Len() <= opt.maxBytes() {
				return buf.Bytes(), "jpg", nil
			}
		}
		if w/2 < minDimension || h/2 < minDimension {
			return nil, "", ErrConstraints
		}
		w, h = w/2, h/2
	}
}

// fit scales (w, h) down so neither side exceeds limit, keeping aspect ratio.
func fit(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// resize draws src onto an opaque white canvas of w×h. JPEG has no alpha.
func resize(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)
	return dst
}

func extensionFor(format, name string) string {
	switch format {
	case "jpeg":
		if i := strings.LastIndex(name, "."); i >= 0 {
			if ext := strings.ToLower(name[i+1:]); ext == "jpeg" || ext == "jpg" {
				return ext
			}
		}
		return "jpg"
	case "png", "gif", "webp":
		return format
	default:
		return "jpg"
	}
}
