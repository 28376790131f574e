package ports

import (
	"context"
	"time"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// SortOrder enumerates the supported catalog orderings.
type SortOrder string

const (
	SortDateAsc    SortOrder = "date_asc"
	SortDateDesc   SortOrder = "date_desc"
	SortRatingDesc SortOrder = "rating_desc" // date ascending as tie-break
)

// ListToursFilter carries all query parameters for listing tours.
// Search matches case-insensitively against name, description and section.
type ListToursFilter struct {
	Search  string
	Section string
	Sort    SortOrder
	Limit   int // clamped to [1,100] by the service
}

// TourUpdate holds a partial tour update; nil fields are left untouched.
type TourUpdate struct {
	Name        *string
	Description *string
	Date        *time.Time
	CoverURL    *string
	Section     *string
	Rating      *int
}

// TourRepository defines persistence operations for the tour catalog.
type TourRepository interface {
	List(ctx context.Context, filter ListToursFilter) ([]*domain.Tour, error)
	Get(ctx context.Context, id string) (*domain.Tour, error)
	Insert(ctx context.Context, t *domain.Tour) (*domain.Tour, error)
	Update(ctx context.Context, id string, update TourUpdate) (*domain.Tour, error)
	Delete(ctx context.Context, id string) error
	// UpdateRating sets the derived rounded average rating. Used only by the
	// recompute worker; a missing tour is not an error there.
	UpdateRating(ctx context.Context, id string, rating int) error
}
