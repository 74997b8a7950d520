package application

import (
	"net/url"
	"path"
	"strings"
)

// MaxUploadBytes is the per-file ceiling checked before any processing.
const MaxUploadBytes = 100 * 1024 * 1024

// File is one uploaded file as received from a form. Data may be empty for
// files that were too large to read; Size always carries the declared size.
type File struct {
	Name        string
	Size        int64
	ContentType string
	Data        []byte
}

func (f File) size() int64 {
	if n := int64(len(f.Data)); n > f.Size {
		return n
	}
	return f.Size
}

// extension returns the lowercased extension of the file name without dot.
func (f File) extension() string {
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(f.Name)), ".")
	return ext
}

// titleFromName strips the last extension: "white granite.jpg" -> "white granite",
// ".jpg" -> "". A trailing dot is not an extension.
func titleFromName(name string) string {
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 || strings.Contains(name[i+1:], "/") {
		return name
	}
	return name[:i]
}

// objectKeyFromURL recovers the storage key, the last segment of a public URL.
func objectKeyFromURL(raw string) string {
	if raw == "" {
		return ""
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	key := path.Base(p)
	if key == "." || key == "/" {
		return ""
	}
	return key
}

func contentTypeFor(ext string) string {
	switch ext {
	case "jpg", "jpeg":
		return "image/jpeg"
	case "png":
		return "image/png"
	case "webp":
		return "image/webp"
	case "gif":
		return "image/gif"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}
