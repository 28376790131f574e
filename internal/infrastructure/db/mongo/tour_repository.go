package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/voyariestuff/tours-api/internal/core/domain"
	"github.com/voyariestuff/tours-api/internal/core/ports"
)

const tourCollection = "tours"

type TourRepository struct {
	col *mongo.Collection
}

func NewTourRepository(db *mongo.Database) *TourRepository {
	return &TourRepository{col: db.Collection(tourCollection)}
}

type mongoTour struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description,omitempty"`
	Date        time.Time          `bson:"date"`
	CoverURL    string             `bson:"cover_url,omitempty"`
	Section     string             `bson:"section,omitempty"`
	Rating      int                `bson:"rating"`
}

func (mt mongoTour) toDomain() *domain.Tour {
	return &domain.Tour{
		ID:          mt.ID.Hex(),
		Name:        mt.Name,
		Description: mt.Description,
		Date:        mt.Date.UTC(),
		CoverURL:    mt.CoverURL,
		Section:     mt.Section,
		Rating:      mt.Rating,
	}
}

// List runs the catalog query. Search text matches case-insensitively as a
// substring of name, description or section; the sort orders mirror the
// service contract (date ascending default, rating descending with date
// ascending tie-break).
func (r *TourRepository) List(ctx context.Context, filter ports.ListToursFilter) ([]*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Search != "" {
		// QuoteMeta so user search text is always treated literally.
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(filter.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"description": pattern},
			bson.M{"section": pattern},
		}
	}
	if filter.Section != "" {
		query["section"] = filter.Section
	}

	sort := bson.D{{Key: "date", Value: 1}}
	switch filter.Sort {
	case ports.SortDateDesc:
		sort = bson.D{{Key: "date", Value: -1}}
	case ports.SortRatingDesc:
		sort = bson.D{{Key: "rating", Value: -1}, {Key: "date", Value: 1}}
	}

	opts := options.Find().SetSort(sort).SetLimit(int64(filter.Limit))
	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tours []*domain.Tour
	for cursor.Next(ctx) {
		var mt mongoTour
		if err := cursor.Decode(&mt); err != nil {
			return nil, err
		}
		tours = append(tours, mt.toDomain())
	}
	return tours, cursor.Err()
}

func (r *TourRepository) Get(ctx context.Context, id string) (*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}

	var mt mongoTour
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mt); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTourNotFound
		}
		return nil, err
	}
	return mt.toDomain(), nil
}

func (r *TourRepository) Insert(ctx context.Context, t *domain.Tour) (*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoTour{
		Name:        t.Name,
		Description: t.Description,
		Date:        t.Date.UTC(),
		CoverURL:    t.CoverURL,
		Section:     t.Section,
		Rating:      t.Rating,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, err
	}

	created := *t
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		created.ID = oid.Hex()
	}
	return &created, nil
}

// Update applies a partial update; nil fields are left untouched.
func (r *TourRepository) Update(ctx context.Context, id string, update ports.TourUpdate) (*domain.Tour, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrTourNotFound
	}

	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Date != nil {
		set["date"] = update.Date.UTC()
	}
	if update.CoverURL != nil {
		set["cover_url"] = *update.CoverURL
	}
	if update.Section != nil {
		set["section"] = *update.Section
	}
	if update.Rating != nil {
		set["rating"] = *update.Rating
	}

	var mt mongoTour
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mt)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTourNotFound
		}
		return nil, err
	}
	return mt.toDomain(), nil
}

func (r *TourRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTourNotFound
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrTourNotFound
	}
	return nil
}

// UpdateRating sets the derived rounded average. A missing tour is not an
// error here: the recompute worker may race a delete.
func (r *TourRepository) UpdateRating(ctx context.Context, id string, rating int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrTourNotFound
	}

	_, err = r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"rating": rating}})
	return err
}

// EnsureIndexes creates the catalog query indexes.
func (r *TourRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "date", Value: 1}}},
		{Keys: bson.D{{Key: "section", Value: 1}}},
		{Keys: bson.D{{Key: "rating", Value: -1}, {Key: "date", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

