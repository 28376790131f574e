package queue

import (
	"context"
	"hash/fnv"
	"math"

	"github.com/rs/zerolog"

	"github.com/voyariestuff/tours-api/internal/api/metrics"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// RatingRecomputer recomputes a tour's derived rating in the background.
// Tour IDs are routed to a fixed set of workers by consistent hashing, so
// recomputes for the same tour never run concurrently.
type RatingRecomputer struct {
	workers []chan string
	reviews ports.ReviewRepository
	tours   ports.TourRepository
	log     zerolog.Logger
}

// NewRatingRecomputer creates a RatingRecomputer with numWorkers sharded
// workers. If numWorkers <= 0, defaultWorkers is used.
func NewRatingRecomputer(numWorkers int, reviews ports.ReviewRepository, tours ports.TourRepository, log zerolog.Logger) *RatingRecomputer {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	r := &RatingRecomputer{
		workers: make([]chan string, numWorkers),
		reviews: reviews,
		tours:   tours,
		log:     log,
	}
	for i := range r.workers {
		r.workers[i] = make(chan string, channelBuffer)
	}
	return r
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (r *RatingRecomputer) Start(ctx context.Context) {
	for i, ch := range r.workers {
		go r.runWorker(ctx, i, ch)
	}
}

// Enqueue schedules a recompute for the tour. The call is non-blocking up to
// channelBuffer capacity.
func (r *RatingRecomputer) Enqueue(tourID string) {
	r.workers[r.shardIndex(tourID)] <- tourID
}

// shardIndex maps a tour ID deterministically to a worker index.
func (r *RatingRecomputer) shardIndex(tourID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(tourID))
	return int(h.Sum32()) % len(r.workers)
}

func (r *RatingRecomputer) runWorker(ctx context.Context, id int, ch <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case tourID, ok := <-ch:
			if !ok {
				return
			}
			if err := r.Recompute(ctx, tourID); err != nil {
				r.log.Error().Err(err).
					Str("tour_id", tourID).
					Int("worker_id", id).
					Msg("rating recompute failed")
			}
		}
	}
}

// Recompute reads the tour's current review mean and writes the rounded
// value back to the tour document. A tour with no reviews is left untouched.
func (r *RatingRecomputer) Recompute(ctx context.Context, tourID string) error {
	avg, err := r.reviews.AverageRating(ctx, tourID)
	if err != nil {
		metrics.RatingRecomputesTotal.WithLabelValues("error").Inc()
		return err
	}
	if avg == nil {
		metrics.RatingRecomputesTotal.WithLabelValues("empty").Inc()
		return nil
	}

	if err := r.tours.UpdateRating(ctx, tourID, int(math.Round(*avg))); err != nil {
		metrics.RatingRecomputesTotal.WithLabelValues("error").Inc()
		return err
	}
	metrics.RatingRecomputesTotal.WithLabelValues("ok").Inc()
	return nil
}
