package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store abstracts media persistence so handlers can be tested without a
// database.
type Store interface {
	Create(ctx context.Context, rec *Record) (*Record, error)
	ListByContent(ctx context.Context, contentID string) ([]*Record, error)
	ListByPerson(ctx context.Context, personID string) ([]*Record, error)
	Delete(ctx context.Context, id string) error
}

// Repository handles all media database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const recordColumns = `id, content_id, person_id, file_url, type, media_category, title, file_size, storage_key, created_at`

// Create inserts a new media record and returns the created row.
func (r *Repository) Create(ctx context.Context, rec *Record) (*Record, error) {
	created := &Record{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO media (content_id, person_id, file_url, type, media_category, title, file_size, storage_key)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+recordColumns,
		rec.ContentID, rec.PersonID, rec.FileURL, rec.Type, rec.Category, rec.Title, rec.FileSize, rec.StorageKey,
	).Scan(&created.ID, &created.ContentID, &created.PersonID, &created.FileURL, &created.Type,
		&created.Category, &created.Title, &created.FileSize, &created.StorageKey, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create media record: %w", err)
	}
	return created, nil
}

// ListByContent returns all media records owned by a content entity.
func (r *Repository) ListByContent(ctx context.Context, contentID string) ([]*Record, error) {
	return r.list(ctx, `SELECT `+recordColumns+` FROM media WHERE content_id = $1 ORDER BY created_at`, contentID)
}

// ListByPerson returns all media records owned by a person entity.
func (r *Repository) ListByPerson(ctx context.Context, personID string) ([]*Record, error) {
	return r.list(ctx, `SELECT `+recordColumns+` FROM media WHERE person_id = $1 ORDER BY created_at`, personID)
}

func (r *Repository) list(ctx context.Context, query, ownerID string) ([]*Record, error) {
	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list media records: %w", err)
	}
	defer rows.Close()

	var records []*Record
	for rows.Next() {
		rec := &Record{}
		if err := rows.Scan(&rec.ID, &rec.ContentID, &rec.PersonID, &rec.FileURL, &rec.Type,
			&rec.Category, &rec.Title, &rec.FileSize, &rec.StorageKey, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan media record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Delete removes a media record by id. The stored object is NOT deleted here;
// blob cleanup goes through the file-deletion endpoint as a separate step.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete media record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound reports whether err indicates a missing media record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, pgx.ErrNoRows)
}
