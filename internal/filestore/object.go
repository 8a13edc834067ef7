package filestore

import "time"

// ObjectInfo describes a single object stored in a bucket.
type ObjectInfo struct {
	// Key is the full object path within the bucket (e.g. "filiale/1.0.0/test.properties").
	Key string

	// Size is the byte size of the object. -1 if unknown.
	Size int64

	ContentType string

	// ETag is the object's entity tag / hash, as returned by the backend.
	ETag string

	LastModified time.Time
}
