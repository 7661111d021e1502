// Package genre exposes the fixed genre vocabulary of the catalog.
package genre

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Genre is one catalog genre.
type Genre struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Repository handles genre database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// List returns all genres ordered by name.
func (r *Repository) List(ctx context.Context) ([]*Genre, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name FROM genres ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list genres: %w", err)
	}
	defer rows.Close()

	var genres []*Genre
	for rows.Next() {
		g := &Genre{}
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, fmt.Errorf("scan genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}
