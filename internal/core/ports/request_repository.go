package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// BookingRequestDetail is the admin read model: a request joined with the
// tour and client names for triage views.
type BookingRequestDetail struct {
	domain.BookingRequest
	TourName   string `json:"tour_name,omitempty"`
	ClientName string `json:"client_name,omitempty"`
}

// BookingRequestRepository defines persistence for booking requests.
type BookingRequestRepository interface {
	Insert(ctx context.Context, r *domain.BookingRequest) (*domain.BookingRequest, error)
	ListByTour(ctx context.Context, tourID string) ([]*domain.BookingRequest, error)
	ListDetailed(ctx context.Context) ([]*BookingRequestDetail, error)
	FindByID(ctx context.Context, id string) (*BookingRequestDetail, error)
	// UpdateStatus applies the conditional single-document update
	// "set status=to where id and status in from" and returns the number of
	// documents modified. That count is the source of truth for conflict
	// resolution between concurrent admins.
	UpdateStatus(ctx context.Context, id string, from []domain.RequestStatus, to domain.RequestStatus) (int64, error)
}
