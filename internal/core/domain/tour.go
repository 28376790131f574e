package domain

import (
	"errors"
	"time"
)

var ErrTourNotFound = errors.New("tour not found")
var ErrNoUpdatableFields = errors.New("no updatable fields")

// Tour is a bookable tour offering. Rating is a derived aggregate: the
// rounded mean of all review ratings, recomputed after review writes. It is
// not settable by end users, only by admins and the recompute worker.
type Tour struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	CoverURL    string    `json:"cover_url,omitempty"`
	Section     string    `json:"section,omitempty"`
	Rating      int       `json:"rating"`
}
