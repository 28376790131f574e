package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// RatingRecomputer accepts tours whose derived rating needs recomputation.
// Enqueue never blocks the review write path; the recompute itself is
// best-effort and eventually consistent.
type RatingRecomputer interface {
	Enqueue(tourID string)
}

// ReviewService handles review submission and listing. A successful
// submission schedules a rating recompute for the tour; recompute failures
// are logged, never surfaced, and never roll back the review.
type ReviewService interface {
	Submit(ctx context.Context, tourID, clientID string, rating int, text string) (*domain.Review, error)
	ListByTour(ctx context.Context, tourID string) ([]*domain.Review, error)
}
