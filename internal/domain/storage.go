package domain

import (
	"context"
	"time"
)

// StoredObject describes one object listed from a bucket.
type StoredObject struct {
	Key          string
	Size         int64
	LastModified time.Time
}

// ObjectStore is the binary object store holding uploaded images.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte, contentType string) error
	// PublicURL returns the public address of key. The key is always the
	// last path segment of the returned URL.
	PublicURL(bucket, key string) string
	RemoveObjects(ctx context.Context, bucket string, keys []string) error
	ListObjects(ctx context.Context, bucket string) ([]StoredObject, error)
}
