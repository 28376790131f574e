package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

type reviewService struct {
	reviewRepo ports.ReviewRepository
	tourRepo   ports.TourRepository
	recompute  ports.RatingRecomputer
	log        zerolog.Logger
}

// NewReviewService returns a ReviewService implementation.
func NewReviewService(
	reviewRepo ports.ReviewRepository,
	tourRepo ports.TourRepository,
	recompute ports.RatingRecomputer,
	log zerolog.Logger,
) ports.ReviewService {
	return &reviewService{
		reviewRepo: reviewRepo,
		tourRepo:   tourRepo,
		recompute:  recompute,
		log:        log,
	}
}

// Submit inserts the review, then schedules the tour's rating recompute.
// The recompute is eventually consistent: its failure is logged by the
// worker, never surfaced here, and the review insert is never rolled back.
func (s *reviewService) Submit(ctx context.Context, tourID, clientID string, rating int, text string) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.ErrInvalidRating
	}
	if _, err := s.tourRepo.Get(ctx, tourID); err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	created, err := s.reviewRepo.Insert(ctx, &domain.Review{
		TourID:   tourID,
		ClientID: clientID,
		Rating:   rating,
		Text:     text,
	})
	if err != nil {
		return nil, fmt.Errorf("submit review: %w", err)
	}

	s.recompute.Enqueue(tourID)

	s.log.Info().
		Str("review_id", created.ID).
		Str("tour_id", tourID).
		Int("rating", rating).
		Msg("review submitted")

	return created, nil
}

func (s *reviewService) ListByTour(ctx context.Context, tourID string) ([]*domain.Review, error) {
	return s.reviewRepo.ListByTour(ctx, tourID)
}
