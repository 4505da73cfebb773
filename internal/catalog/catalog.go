// Package catalog stores the video library and book list served to
// students. Access to videos is gated by the attendance absence rule; the
// gate itself lives in the attendance package, this one just stores content.
package catalog

import (
	"errors"
	"time"
)

// ErrNotFound means the catalog item does not exist.
var ErrNotFound = errors.New("catalog: item not found")

// Video is one lesson recording, ordered by Position within a group.
type Video struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Group     string    `json:"group"`
	Grade     string    `json:"grade"`
	Position  int       `json:"position"`
	ThumbURL  string    `json:"thumb_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Book is one downloadable document.
type Book struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Group     string    `json:"group"`
	Grade     string    `json:"grade"`
	CoverURL  string    `json:"cover_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
