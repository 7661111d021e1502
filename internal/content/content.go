// Package content manages catalog entries (movies and series) and their
// genre associations.
package content

import (
	"errors"
	"time"
)

// Kind distinguishes movies from series.
type Kind string

const (
	KindMovie  Kind = "movie"
	KindSeries Kind = "series"
)

// ErrNotFound is returned when a content entry does not exist.
var ErrNotFound = errors.New("content not found")

// Content is one catalog entry.
type Content struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Overview    string    `json:"overview"`
	Kind        Kind      `json:"kind"`
	ReleaseYear *int      `json:"releaseYear,omitempty"`
	Genres      []string  `json:"genres"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CreateRequest is the body for creating or updating a content entry.
type CreateRequest struct {
	Title       string `json:"title" validate:"required"`
	Overview    string `json:"overview"`
	Kind        Kind   `json:"kind" validate:"required,oneof=movie series"`
	ReleaseYear *int   `json:"releaseYear"`
}

// GenresRequest is the body for replacing a content entry's genre set.
type GenresRequest struct {
	GenreIDs []string `json:"genreIds" validate:"required"`
}
