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
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

const requestCollection = "booking_requests"

// BookingRequestRepository persists booking requests. Status transitions go
// through UpdateStatus, a conditional single-document update whose modified
// count settles races between concurrent admins.
type BookingRequestRepository struct {
	db  *mongo.Database
	col *mongo.Collection
}

func NewBookingRequestRepository(db *mongo.Database) *BookingRequestRepository {
	return &BookingRequestRepository{db: db, col: db.Collection(requestCollection)}
}

type mongoRequest struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	TourID    primitive.ObjectID `bson:"tour_id"`
	ClientID  primitive.ObjectID `bson:"client_id"`
	Status    string             `bson:"status"`
	CreatedAt time.Time          `bson:"created_at"`
}

func (mr mongoRequest) toDomain() domain.BookingRequest {
	return domain.BookingRequest{
		ID:        mr.ID.Hex(),
		TourID:    mr.TourID.Hex(),
		ClientID:  mr.ClientID.Hex(),
		Status:    domain.RequestStatus(mr.Status),
		CreatedAt: mr.CreatedAt.UTC(),
	}
}

func (r *BookingRequestRepository) Insert(ctx context.Context, req *domain.BookingRequest) (*domain.BookingRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tourOID, err := primitive.ObjectIDFromHex(req.TourID)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}
	clientOID, err := primitive.ObjectIDFromHex(req.ClientID)
	if err != nil {
		return nil, domain.ErrPrincipalNotFound
	}

	doc := mongoRequest{
		TourID:    tourOID,
		ClientID:  clientOID,
		Status:    string(req.Status),
		CreatedAt: time.Now().UTC(),
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert booking request: %w", err)
	}

	created := *req
	created.CreatedAt = doc.CreatedAt
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

func (r *BookingRequestRepository) ListByTour(ctx context.Context, tourID string) ([]*domain.BookingRequest, error) {
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

	var out []*domain.BookingRequest
	for cursor.Next(ctx) {
		var mr mongoRequest
		if err := cursor.Decode(&mr); err != nil {
			return nil, err
		}
		req := mr.toDomain()
		out = append(out, &req)
	}
	return out, cursor.Err()
}

// detailPipeline joins requests with tour and client names for the admin
// triage views.
func detailPipeline(match bson.M) mongo.Pipeline {
	pipeline := mongo.Pipeline{}
	if match != nil {
		pipeline = append(pipeline, bson.D{{Key: "$match", Value: match}})
	}
	return append(pipeline,
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         tourCollection,
			"localField":   "tour_id",
			"foreignField": "_id",
			"as":           "tour",
		}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         principalCollection,
			"localField":   "client_id",
			"foreignField": "_id",
			"as":           "client",
		}}},
		bson.D{{Key: "$sort", Value: bson.M{"created_at": -1}}},
	)
}

type mongoRequestDetail struct {
	mongoRequest `bson:",inline"`
	Tour         []mongoTour      `bson:"tour"`
	Client       []mongoPrincipal `bson:"client"`
}

func (md mongoRequestDetail) toDetail() *ports.BookingRequestDetail {
	detail := &ports.BookingRequestDetail{BookingRequest: md.toDomain()}
	if len(md.Tour) > 0 {
		detail.TourName = md.Tour[0].Name
	}
	if len(md.Client) > 0 {
		detail.ClientName = md.Client[0].Name
	}
	return detail
}

func (r *BookingRequestRepository) ListDetailed(ctx context.Context) ([]*ports.BookingRequestDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, detailPipeline(nil))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var out []*ports.BookingRequestDetail
	for cursor.Next(ctx) {
		var md mongoRequestDetail
		if err := cursor.Decode(&md); err != nil {
			return nil, err
		}
		out = append(out, md.toDetail())
	}
	return out, cursor.Err()
}

func (r *BookingRequestRepository) FindByID(ctx context.Context, id string) (*ports.BookingRequestDetail, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	cursor, err := r.col.Aggregate(ctx, detailPipeline(bson.M{"_id": oid}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return nil, err
		}
		return nil, domain.ErrRequestNotFound
	}

	var md mongoRequestDetail
	if err := cursor.Decode(&md); err != nil {
		return nil, err
	}
	return md.toDetail(), nil
}

// UpdateStatus applies "set status=to where _id=id and status in from" and
// returns the modified count. Zero means the request no longer exists or its
// status fell outside the allowed set; the caller decides which.
func (r *BookingRequestRepository) UpdateStatus(ctx context.Context, id string, from []domain.RequestStatus, to domain.RequestStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, domain.ErrRequestNotFound
	}

	allowed := make(bson.A, len(from))
	for i, s := range from {
		allowed[i] = string(s)
	}

	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": oid, "status": bson.M{"$in": allowed}},
		bson.M{"$set": bson.M{"status": string(to)}},
	)
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// EnsureIndexes creates the listing indexes.
func (r *BookingRequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "tour_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
