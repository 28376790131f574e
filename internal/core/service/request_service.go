package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

// SubmitGuard abstracts the duplicate-submission store (Redis). A client
// re-posting the same tour request within the guard TTL is rejected with a
// conflict; guard outages never block submission.
type SubmitGuard interface {
	IsDuplicate(ctx context.Context, clientID, tourID string) (bool, error)
	Mark(ctx context.Context, clientID, tourID string) error
}

type requestService struct {
	requestRepo ports.BookingRequestRepository
	tourRepo    ports.TourRepository
	guard       SubmitGuard
	log         zerolog.Logger
}

// NewRequestService returns a RequestService implementation.
func NewRequestService(
	requestRepo ports.BookingRequestRepository,
	tourRepo ports.TourRepository,
	guard SubmitGuard,
	log zerolog.Logger,
) ports.RequestService {
	return &requestService{
		requestRepo: requestRepo,
		tourRepo:    tourRepo,
		guard:       guard,
		log:         log,
	}
}

// Submit creates a booking request in the "new" state.
func (s *requestService) Submit(ctx context.Context, tourID, clientID string) (*domain.BookingRequest, error) {
	if _, err := s.tourRepo.Get(ctx, tourID); err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	isDup, err := s.guard.IsDuplicate(ctx, clientID, tourID)
	if err != nil {
		s.log.Warn().Err(err).Str("tour_id", tourID).Msg("submit guard check failed, proceeding")
	} else if isDup {
		s.log.Debug().Str("tour_id", tourID).Str("client_id", clientID).Msg("duplicate request submission rejected")
		return nil, domain.ErrDuplicateRequest
	}

	created, err := s.requestRepo.Insert(ctx, &domain.BookingRequest{
		TourID:   tourID,
		ClientID: clientID,
		Status:   domain.StatusNew,
	})
	if err != nil {
		return nil, fmt.Errorf("submit request: %w", err)
	}

	if markErr := s.guard.Mark(ctx, clientID, tourID); markErr != nil {
		s.log.Warn().Err(markErr).Str("tour_id", tourID).Msg("failed to set submit guard key")
	}

	s.log.Info().Str("request_id", created.ID).Str("tour_id", tourID).Str("client_id", clientID).Msg("booking request submitted")
	return created, nil
}

func (s *requestService) ListByTour(ctx context.Context, tourID string) ([]*domain.BookingRequest, error) {
	return s.requestRepo.ListByTour(ctx, tourID)
}

func (s *requestService) ListAll(ctx context.Context) ([]*ports.BookingRequestDetail, error) {
	return s.requestRepo.ListDetailed(ctx)
}

func (s *requestService) Get(ctx context.Context, id string) (*ports.BookingRequestDetail, error) {
	return s.requestRepo.FindByID(ctx, id)
}

// Transition applies an admin status change. Policy:
//   - "in_review" advances a "new" request.
//   - "accepted"/"rejected" resolve from "in_review", or directly from "new"
//     (auto-advance, logged as one traceable step).
//   - A request already in the requested or a terminal state is returned
//     unchanged: resolving twice is idempotent, not an error.
//
// The repository's conditional update is the source of truth; a lost race is
// detected by zero modified documents and settled with one re-read.
func (s *requestService) Transition(ctx context.Context, id string, to domain.RequestStatus) (*domain.BookingRequest, error) {
	var from []domain.RequestStatus
	switch to {
	case domain.StatusInReview:
		from = []domain.RequestStatus{domain.StatusNew}
	case domain.StatusAccepted, domain.StatusRejected:
		from = []domain.RequestStatus{domain.StatusNew, domain.StatusInReview}
	default:
		return nil, domain.ErrInvalidOutcome
	}

	current, err := s.requestRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.Status.IsTerminal() || current.Status == to {
		return &current.BookingRequest, nil
	}

	if current.Status == domain.StatusNew && to.IsTerminal() {
		s.log.Info().Str("request_id", id).Str("to", string(to)).Msg("auto-advancing new request through review")
	}

	modified, err := s.requestRepo.UpdateStatus(ctx, id, from, to)
	if err != nil {
		return nil, fmt.Errorf("transition request: %w", err)
	}
	if modified == 0 {
		// Lost a race: another admin moved the request, or it vanished.
		latest, err := s.requestRepo.FindByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if latest.Status.IsTerminal() || latest.Status == to {
			return &latest.BookingRequest, nil
		}
		return nil, fmt.Errorf("transition request %s: conditional update from %v to %s modified nothing", id, from, to)
	}

	s.log.Info().
		Str("request_id", id).
		Str("from", string(current.Status)).
		Str("to", string(to)).
		Msg("booking request transitioned")

	updated := current.BookingRequest
	updated.Status = to
	return &updated, nil
}
