package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyariestuff/tours-api/internal/core/domain"
)

const reviewCollection = "reviews"

// ReviewRepository persists reviews and computes the per-tour rating mean
// used by the recompute worker.
type ReviewRepository struct {
	col *mongo.Collection
}

func NewReviewRepository(db *mongo.Database) *ReviewRepository {
	return &ReviewRepository{col: db.Collection(reviewCollection)}
}

type mongoReview struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TourID    primitive.ObjectID `bson:"tour_id"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Rating    int                `bson:"rating"`
	Text      string             `bson:"text,omitempty"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (r *ReviewRepository) Insert(ctx context.Context, rev *domain.Review) (*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tourOID, err := primitive.ObjectIDFromHex(rev.TourID)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}
	clientOID, err := primitive.ObjectIDFromHex(rev.ClientID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	doc := mongoReview{
		TourID:    tourOID,
		ClientID:  clientOID,
		Rating:    rev.Rating,
		Text:      rev.Text,
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	created := *rev
	created.CreatedAt = doc.CreatedAt
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *ReviewRepository) ListByTour(ctx context.Context, tourID string) ([]*domain.Review, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(tourID)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.col.Find(ctx, bson.M{"tour_id": oid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*domain.Review
	for cursor.Next(ctx) {
		var mr mongoReview
		if err := cursor.Decode(&mr); err != nil {
			return nil, err
		}
		out = append(out, &domain.Review{
			ID:        mr.ID.Hex(),
			TourID:    mr.TourID.Hex(),
			ClientID:  mr.ClientID.Hex(),
			Rating:    mr.Rating,
			Text:      mr.Text,
			CreatedAt: mr.CreatedAt.UTC(),
		})
	}
	return out, cursor.Err()
}

// AverageRating returns the mean rating over the tour's reviews, or nil when
// there are none.
func (r *ReviewRepository) AverageRating(ctx context.Context, tourID string) (*float64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(tourID)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: bson.M{"tour_id": oid}}},
		bson.D{{Key: "$group", Value: bson.M{
			"_id": nil,
			"avg": bson.M{"$avg": "$rating"},
		}}},
	}

	cursor, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		return nil, cursor.Err()
	}

	var result struct {
		Avg float64 `bson:"avg"`
	}
	if err := cursor.Decode(&result); err != nil {
		return nil, err
	}
	return &result.Avg, nil
}

// EnsureIndexes creates the per-tour listing index.
func (r *ReviewRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "tour_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	return err
}
