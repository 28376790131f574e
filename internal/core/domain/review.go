package domain

import (
	"errors"
	"time"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Review is an append-only rating left by a client on a tour.
type Review struct {
	ID        string    `json:"id"`
	TourID    string    `json:"tour_id"`
	ClientID  string    `json:"client_id"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
