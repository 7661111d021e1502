package person

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository handles all person database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new person and returns the created record.
func (r *Repository) Create(ctx context.Context, req *CreateRequest) (*Person, error) {
	p := &Person{}
	err := r.db.QueryRow(ctx,
		`INSERT INTO people (name, role)
		 VALUES ($1, $2)
		 RETURNING id, name, role, created_at, updated_at`,
		req.Name, req.Role,
	).Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create person: %w", err)
	}
	return p, nil
}

// GetByID fetches a person by their UUID.
func (r *Repository) GetByID(ctx context.Context, id string) (*Person, error) {
	p := &Person{}
	err := r.db.QueryRow(ctx,
		`SELECT id, name, role, created_at, updated_at FROM people WHERE id = $1`,
		id,
	).Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get person by id: %w", err)
	}
	return p, nil
}

// List returns all people ordered by name.
func (r *Repository) List(ctx context.Context) ([]*Person, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, role, created_at, updated_at FROM people ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var people []*Person
	for rows.Next() {
		p := &Person{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		people = append(people, p)
	}
	return people, rows.Err()
}

// Delete removes a person. Their media records cascade in the database.
func (r *Repository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM people WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
