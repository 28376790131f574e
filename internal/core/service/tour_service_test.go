package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestTourService_List_ClampsLimit(t *testing.T) {
	repo := newStubTourRepo()
	svc := NewTourService(repo, zerolog.Nop())

	cases := []struct {
		in   int
		want int
	}{
		{0, 100},
		{-5, 100},
		{250, 100},
		{17, 17},
	}
	for _, tc := range cases {
		if _, err := svc.List(context.Background(), ports.ListToursInput{Limit: tc.in}); err != nil {
			t.Fatalf("list: %v", err)
		}
		got := repo.listCalls[len(repo.listCalls)-1].Limit
		if got != tc.want {
			t.Errorf("limit %d: expected clamp to %d, got %d", tc.in, tc.want, got)
		}
	}
}

func TestTourService_List_DefaultSortIsDateAsc(t *testing.T) {
	repo := newStubTourRepo()
	svc := NewTourService(repo, zerolog.Nop())

	if _, err := svc.List(context.Background(), ports.ListToursInput{Sort: "bogus"}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if got := repo.listCalls[0].Sort; got != ports.SortDateAsc {
		t.Fatalf("expected date ascending fallback, got %s", got)
	}
}

func TestTourService_List_DateAscOrdering(t *testing.T) {
	repo := newStubTourRepo()
	repo.tours["a"] = &domain.Tour{ID: "a", Name: "A", Date: date("2025-01-01")}
	repo.tours["b"] = &domain.Tour{ID: "b", Name: "B", Date: date("2025-06-15")}
	repo.tours["c"] = &domain.Tour{ID: "c", Name: "C", Date: date("2025-03-10")}
	svc := NewTourService(repo, zerolog.Nop())

	tours, err := svc.List(context.Background(), ports.ListToursInput{Sort: ports.SortDateAsc})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(tours) != 3 || tours[0].Name != "A" {
		t.Fatalf("expected tour A first among tours dated >= 2025-01-01, got %+v", tours)
	}
}

func TestTourService_List_RatingDescWithDateTieBreak(t *testing.T) {
	repo := newStubTourRepo()
	repo.tours["a"] = &domain.Tour{ID: "a", Name: "A", Rating: 4, Date: date("2025-05-01")}
	repo.tours["b"] = &domain.Tour{ID: "b", Name: "B", Rating: 5, Date: date("2025-06-01")}
	repo.tours["c"] = &domain.Tour{ID: "c", Name: "C", Rating: 4, Date: date("2025-04-01")}
	svc := NewTourService(repo, zerolog.Nop())

	tours, err := svc.List(context.Background(), ports.ListToursInput{Sort: ports.SortRatingDesc})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if tours[0].Name != "B" || tours[1].Name != "C" || tours[2].Name != "A" {
		t.Fatalf("expected B, C, A; got %s, %s, %s", tours[0].Name, tours[1].Name, tours[2].Name)
	}
}

func TestTourService_Update_NoFields(t *testing.T) {
	svc := NewTourService(newStubTourRepo(), zerolog.Nop())

	if _, err := svc.Update(context.Background(), "tour_1", ports.TourUpdate{}); !errors.Is(err, domain.ErrNoUpdatableFields) {
		t.Fatalf("expected ErrNoUpdatableFields, got %v", err)
	}
}

func TestTourService_Update_Missing(t *testing.T) {
	svc := NewTourService(newStubTourRepo(), zerolog.Nop())
	name := "Renamed"

	if _, err := svc.Update(context.Background(), "tour_missing", ports.TourUpdate{Name: &name}); !errors.Is(err, domain.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}

func TestTourService_Delete_Missing(t *testing.T) {
	svc := NewTourService(newStubTourRepo(), zerolog.Nop())

	if err := svc.Delete(context.Background(), "tour_missing"); !errors.Is(err, domain.ErrTourNotFound) {
		t.Fatalf("expected ErrTourNotFound, got %v", err)
	}
}
