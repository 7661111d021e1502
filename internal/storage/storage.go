// Package storage defines the interface for object storage operations.
// The MinIO implementation works with any S3-compatible provider.
package storage

import (
	"context"
	"time"
)

// Storage is the interface for presigning and deleting objects. Uploads
// themselves never pass through this service: clients PUT directly to the
// presigned URL.
type Storage interface {
	// PresignedPutURL mints a time-limited URL that allows a single direct
	// PUT of the object identified by key.
	PresignedPutURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	// Delete removes an object identified by key. Deleting a key that does
	// not exist is not an error.
	Delete(ctx context.Context, key string) error
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
