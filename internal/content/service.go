package content

import (
	"context"
	"errors"
	"time"

	"github.com/cineshelf/service/internal/cache"
)

const (
	contentListKey  = "contents:all"
	contentCacheTTL = time.Minute
)

// store is the subset of Repository the service depends on.
type store interface {
	Create(ctx context.Context, req *CreateRequest) (*Content, error)
	GetByID(ctx context.Context, id string) (*Content, error)
	List(ctx context.Context) ([]*Content, error)
	Update(ctx context.Context, id string, req *CreateRequest) (*Content, error)
	Delete(ctx context.Context, id string) error
	ReplaceGenres(ctx context.Context, contentID string, genreIDs []string) error
}

// Service contains business logic for the content catalog. List results are
// cached in Redis; every mutation invalidates the listing.
type Service struct {
	repo  store
	cache *cache.Cache
}

// NewService creates a new content Service. cache may be nil to disable caching.
func NewService(repo store, c *cache.Cache) *Service {
	return &Service{repo: repo, cache: c}
}

// Create adds a catalog entry and invalidates the cached listing.
func (s *Service) Create(ctx context.Context, req *CreateRequest) (*Content, error) {
	c, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, contentListKey)
	return c, nil
}

// GetByID returns one catalog entry with its genres.
func (s *Service) GetByID(ctx context.Context, id string) (*Content, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns the whole catalog, served from cache when warm.
func (s *Service) List(ctx context.Context) ([]*Content, error) {
	var cached []*Content
	if s.cache.Get(ctx, contentListKey, &cached) {
		return cached, nil
	}

	contents, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, contentListKey, contents, contentCacheTTL)
	return contents, nil
}

// Update modifies a catalog entry and invalidates the cached listing.
func (s *Service) Update(ctx context.Context, id string, req *CreateRequest) (*Content, error) {
	c, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	s.cache.Delete(ctx, contentListKey)
	return c, nil
}

// Delete removes a catalog entry and invalidates the cached listing.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.cache.Delete(ctx, contentListKey)
	return nil
}

// ReplaceGenres atomically swaps the genre set and invalidates the listing.
func (s *Service) ReplaceGenres(ctx context.Context, contentID string, genreIDs []string) error {
	if err := s.repo.ReplaceGenres(ctx, contentID, genreIDs); err != nil {
		return err
	}
	s.cache.Delete(ctx, contentListKey)
	return nil
}

// IsNotFound returns true when the error indicates a content entry was not found.
func (s *Service) IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
