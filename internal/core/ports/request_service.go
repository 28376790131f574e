package ports

import (
	"context"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

// RequestService governs the booking-request lifecycle.
//
// Transition applies the admin-requested status change: "in_review" advances
// a new request, "accepted"/"rejected" resolve it. A resolve on a request
// still in "new" auto-advances in one step. Transitions on a terminal
// request are idempotent no-ops returning the current state.
type RequestService interface {
	Submit(ctx context.Context, tourID, clientID string) (*domain.BookingRequest, error)
	ListByTour(ctx context.Context, tourID string) ([]*domain.BookingRequest, error)
	ListAll(ctx context.Context) ([]*BookingRequestDetail, error)
	Get(ctx context.Context, id string) (*BookingRequestDetail, error)
	Transition(ctx context.Context, id string, to domain.RequestStatus) (*domain.BookingRequest, error)
}
