package service

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

const maxListLimit = 100

// TourService implements catalog queries and admin mutations.
type TourService struct {
	repo ports.TourRepository
	log  zerolog.Logger
}

func NewTourService(repo ports.TourRepository, log zerolog.Logger) *TourService {
	return &TourService{repo: repo, log: log}
}

// List runs the catalog query. The limit is clamped silently to [1,100] and
// unknown sort orders fall back to date ascending.
func (s *TourService) List(ctx context.Context, input ports.ListToursInput) ([]*domain.Tour, error) {
	limit := input.Limit
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}

	sort := input.Sort
	switch sort {
	case ports.SortDateAsc, ports.SortDateDesc, ports.SortRatingDesc:
	default:
		sort = ports.SortDateAsc
	}

	return s.repo.List(ctx, ports.ListToursFilter{
		Search:  strings.TrimSpace(input.Search),
		Section: strings.TrimSpace(input.Section),
		Sort:    sort,
		Limit:   limit,
	})
}

func (s *TourService) Get(ctx context.Context, id string) (*domain.Tour, error) {
	return s.repo.Get(ctx, id)
}

func (s *TourService) Create(ctx context.Context, input ports.CreateTourInput) (*domain.Tour, error) {
	created, err := s.repo.Insert(ctx, &domain.Tour{
		Name:        strings.TrimSpace(input.Name),
		Description: input.Description,
		Date:        input.Date.UTC(),
		CoverURL:    input.CoverURL,
		Section:     input.Section,
		Rating:      input.Rating,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("tour_id", created.ID).Str("name", created.Name).Msg("tour created")
	return created, nil
}

func (s *TourService) Update(ctx context.Context, id string, update ports.TourUpdate) (*domain.Tour, error) {
	if update == (ports.TourUpdate{}) {
		return nil, domain.ErrNoUpdatableFields
	}
	if update.Date != nil {
		utc := update.Date.UTC()
		update.Date = &utc
	}

	updated, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("tour_id", id).Msg("tour updated")
	return updated, nil
}

func (s *TourService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("tour_id", id).Msg("tour deleted")
	return nil
}
