// Package media persists the association between uploaded objects and the
// catalog entities that own them.
package media

import (
	"errors"
	"time"
)

// Type classifies the payload of a media record.
type Type string

// Category names the slot a media record fills on its owner.
type Category string

const (
	TypeImage Type = "image"
	TypeVideo Type = "video"

	CategoryPoster       Category = "poster"
	CategoryGalleryImage Category = "gallery_image"
	CategoryTrailer      Category = "trailer"
	CategoryClip         Category = "clip"
	CategoryProfileImage Category = "profile_image"
)

// ErrNotFound is returned when a media record does not exist.
var ErrNotFound = errors.New("media record not found")

// Record is one persisted media row. Exactly one of ContentID/PersonID is set.
type Record struct {
	ID         string    `json:"id"`
	ContentID  *string   `json:"contentId,omitempty"`
	PersonID   *string   `json:"personId,omitempty"`
	FileURL    string    `json:"fileUrl"`
	Type       Type      `json:"type"`
	Category   Category  `json:"mediaCategory"`
	Title      string    `json:"title"`
	FileSize   int64     `json:"fileSize"`
	StorageKey string    `json:"storageKey"`
	CreatedAt  time.Time `json:"createdAt"`
}
