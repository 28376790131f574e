package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// ReviewRepository defines persistence for reviews. Reviews are append-only.
type ReviewRepository interface {
	Insert(ctx context.Context, r *domain.Review) (*domain.Review, error)
	ListByTour(ctx context.Context, tourID string) ([]*domain.Review, error)
	// AverageRating returns the mean rating over all reviews of the tour,
	// or nil when the tour has no reviews.
	AverageRating(ctx context.Context, tourID string) (*float64, error)
}
