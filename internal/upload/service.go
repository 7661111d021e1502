// Package upload mints presigned upload tickets and deletes stored objects.
//
// A ticket is stateless: the service records nothing when one is issued. If
// the client never consumes the URL, the target key simply never receives
// bytes and the URL expires on its own.
package upload

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/cineshelf/service/internal/storage"
	"github.com/google/uuid"
)

// Ticket is a single-use presigned upload grant.
type Ticket struct {
	PresignedURL string `json:"presignedUrl"`
	Key          string `json:"key"`
}

// Service contains the business logic for upload ticket issuance.
type Service struct {
	store  storage.Storage
	expiry time.Duration
}

// NewService creates a new upload Service. ttlSeconds bounds how long a minted
// URL stays valid.
func NewService(store storage.Storage, ttlSeconds int) *Service {
	return &Service{store: store, expiry: time.Duration(ttlSeconds) * time.Second}
}

// CreateTicket mints a presigned PUT URL for one object. The storage key is a
// random UUID prefixed onto the sanitized original filename; collisions are
// treated as negligibly improbable and are not guarded against.
func (s *Service) CreateTicket(ctx context.Context, fileName string) (*Ticket, error) {
	key := uuid.New().String() + "-" + sanitizeFileName(fileName)

	url, err := s.store.PresignedPutURL(ctx, key, s.expiry)
	if err != nil {
		return nil, fmt.Errorf("mint upload ticket: %w", err)
	}

	return &Ticket{PresignedURL: url, Key: key}, nil
}

// DeleteObject removes the object at key from the blob store. Deleting a key
// that was never written is indistinguishable from a successful delete.
func (s *Service) DeleteObject(ctx context.Context, key string) error {
	if err := s.store.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}
	return nil
}

// sanitizeFileName strips any path component and replaces characters that are
// awkward in object keys or URLs.
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
