// Package filestore defines the object storage interface used to publish
// rendered profiles as build artifacts.
//
// Providers (MinIO today) implement Store; callers depend only on this
// package.
//
// Usage:
//
//	cfg := filestore.DefaultConfig("localhost:9000", "minioadmin", "minioadmin")
//	store, err := minio.New(ctx, cfg)
//	if err != nil { ... }
//	defer store.Close()
//
//	res, err := filestore.Publish(ctx, store, filestore.PublishRequest{...})
package filestore

import (
	"context"
	"io"
	"time"
)

// Store is the interface all file storage providers must implement.
type Store interface {
	// Ping verifies the storage backend is reachable.
	Ping(ctx context.Context) error

	// Close releases any held resources.
	Close() error

	// EnsureBucket creates bucket when it does not exist yet.
	EnsureBucket(ctx context.Context, bucket string) error

	// PutObject uploads size bytes from body to key inside bucket.
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error

	// StatObject returns metadata for the object at key inside bucket
	// without downloading its content.
	StatObject(ctx context.Context, bucket, key string) (*ObjectInfo, error)

	// PresignGetURL returns a time-limited URL that allows anyone to download
	// the object at key inside bucket without credentials.
	PresignGetURL(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}
