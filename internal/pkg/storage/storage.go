package storage

import (
	"context"
	"time"
)

// PresignedUpload is the result of issuing a direct-upload URL.
type PresignedUpload struct {
	UploadURL string
	Key       string
	ExpiresAt time.Time
}

// Storage defines the interface for presigned direct-to-bucket uploads.
// The API never proxies file bytes; clients PUT straight to the bucket.
type Storage interface {
	// PresignPut returns a URL the client can PUT the object to.
	PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (*PresignedUpload, error)

	// Delete removes an object by key. Returns nil if the object doesn't exist.
	Delete(ctx context.Context, key string) error

	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)

	// PublicURL returns the public URL for an object key.
	PublicURL(key string) string
}
