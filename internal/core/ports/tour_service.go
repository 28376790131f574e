package ports

import (
	"context"
	"time"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// ListToursInput carries the raw catalog query as received by the transport
// layer. Sort values outside the known set fall back to date ascending and
// Limit is clamped, never rejected.
type ListToursInput struct {
	Search  string
	Section string
	Sort    SortOrder
	Limit   int
}

// CreateTourInput carries the fields for a new tour. Rating is the initial
// admin-set value shown until the first review lands.
type CreateTourInput struct {
	Name        string
	Description string
	Date        time.Time
	CoverURL    string
	Section     string
	Rating      int
}

// TourService defines catalog queries and the admin-only mutations.
type TourService interface {
	List(ctx context.Context, input ListToursInput) ([]*domain.Tour, error)
	Get(ctx context.Context, id string) (*domain.Tour, error)
	Create(ctx context.Context, input CreateTourInput) (*domain.Tour, error)
	Update(ctx context.Context, id string, update TourUpdate) (*domain.Tour, error)
	Delete(ctx context.Context, id string) error
}
