package content

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles all content database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new content entry and returns the created record.
func (r *Repository) Create(ctx context.Context, req *CreateRequest) (*Content, error) {
	c := &Content{Genres: []string{}}
	err := r.db.QueryRow(ctx,
		`INSERT INTO contents (title, overview, kind, release_year)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, title, overview, kind, release_year, created_at, updated_at`,
		req.Title, req.Overview, req.Kind, req.ReleaseYear,
	).Scan(&c.ID, &c.Title, &c.Overview, &c.Kind, &c.ReleaseYear, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create content: %w", err)
	}
	return c, nil
}

// GetByID fetches a content entry with its genre names.
func (r *Repository) GetByID(ctx context.Context, id string) (*Content, error) {
	c := &Content{}
	err := r.db.QueryRow(ctx,
		`SELECT c.id, c.title, c.overview, c.kind, c.release_year, c.created_at, c.updated_at,
		        COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		 FROM contents c
		 LEFT JOIN content_genres cg ON cg.content_id = c.id
		 LEFT JOIN genres g ON g.id = cg.genre_id
		 WHERE c.id = $1
		 GROUP BY c.id`,
		id,
	).Scan(&c.ID, &c.Title, &c.Overview, &c.Kind, &c.ReleaseYear, &c.CreatedAt, &c.UpdatedAt, &c.Genres)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get content by id: %w", err)
	}
	return c, nil
}

// List returns all content entries, newest first, with genre names attached.
func (r *Repository) List(ctx context.Context) ([]*Content, error) {
	rows, err := r.db.Query(ctx,
		`SELECT c.id, c.title, c.overview, c.kind, c.release_year, c.created_at, c.updated_at,
		        COALESCE(array_agg(g.name ORDER BY g.name) FILTER (WHERE g.name IS NOT NULL), '{}')
		 FROM contents c
		 LEFT JOIN content_genres cg ON cg.content_id = c.id
		 LEFT JOIN genres g ON g.id = cg.genre_id
		 GROUP BY c.id
		 ORDER BY c.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contents: %w", err)
	}
	defer rows.Close()

	var contents []*Content
	for rows.Next() {
		c := &Content{}
		if err := rows.Scan(&c.ID, &c.Title, &c.Overview, &c.Kind, &c.ReleaseYear,
			&c.CreatedAt, &c.UpdatedAt, &c.Genres); err != nil {
			return nil, fmt.Errorf("scan content: %w", err)
		}
		contents = append(contents, c)
	}
	return contents, rows.Err()
}

// Update modifies a content entry and returns the updated record.
func (r *Repository) Update(ctx context.Context, id string, req *CreateRequest) (*Content, error) {
	c := &Content{Genres: []string{}}
	err := r.db.QueryRow(ctx,
		`UPDATE contents
		 SET title = $2, overview = $3, kind = $4, release_year = $5, updated_at = now()
		 WHERE id = $1
		 RETURNING id, title, overview, kind, release_year, created_at, updated_at`,
		id, req.Title, req.Overview, req.Kind, req.ReleaseYear,
	).Scan(&c.ID, &c.Title, &c.Overview, &c.Kind, &c.ReleaseYear, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update content: %w", err)
	}
	return c, nil
}

// Delete removes a content entry. Media records and genre links cascade in
// the database.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete content: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ReplaceGenres atomically swaps the genre set of a content entry. The
// delete and the inserts run in one transaction so a concurrent reader never
// observes a half-replaced set.
func (r *Repository) ReplaceGenres(ctx context.Context, contentID string, genreIDs []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin genre replacement: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM content_genres WHERE content_id = $1`, contentID); err != nil {
		return fmt.Errorf("clear genres: %w", err)
	}

	for _, genreID := range genreIDs {
		if _, err := tx.Exec(ctx,
			`INSERT INTO content_genres (content_id, genre_id) VALUES ($1, $2)`,
			contentID, genreID); err != nil {
			return fmt.Errorf("insert genre %s: %w", genreID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit genre replacement: %w", err)
	}
	return nil
}
