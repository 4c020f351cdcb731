package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"voya/internal/infra"
	"voya/internal/models/db_models"
)

const maxMongoUpdateAttempts = 5

var ErrConcurrentUpdate = errors.New("trip was modified concurrently")

type tripMongoRepository struct {
	coll *mongo.Collection
}

func NewTripMongoRepository(db *mongo.Database) TripRepository {
	return &tripMongoRepository{coll: db.Collection(infra.TripsCollection)}
}

func (t *tripMongoRepository) List(ctx context.Context, user string) ([]db_models.Trip, error) {
	cursor, err := t.coll.Find(ctx, bson.M{"user": user}, options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	trips := []db_models.Trip{}
	if err := cursor.All(ctx, &trips); err != nil {
		return nil, err
	}
	return trips, nil
}

func (t *tripMongoRepository) GetByID(ctx context.Context, id string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&trip)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &trip, nil
}

func (t *tripMongoRepository) Create(ctx context.Context, trip *db_models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	trip.CreatedAt = trip.CreatedAt.Truncate(time.Millisecond)
	trip.UpdatedAt = trip.CreatedAt

	_, err := t.coll.InsertOne(ctx, trip)
	return err
}

// Update replaces the document only if updatedAt still holds the value that
// was read, retrying a bounded number of times on conflict.
func (t *tripMongoRepository) Update(ctx context.Context, id string, mutate TripMutator) (*db_models.Trip, error) {
	for attempt := 0; attempt < maxMongoUpdateAttempts; attempt++ {
		current, err := t.GetByID(ctx, id)
		if err != nil || current == nil {
			return nil, err
		}

		seen := current.UpdatedAt
		now := time.Now().UTC().Truncate(time.Millisecond)
		if !now.After(seen) {
			now = seen.Add(time.Millisecond)
		}
		if err := applyMutation(current, mutate, now); err != nil {
			return nil, err
		}

		res, err := t.coll.ReplaceOne(ctx, bson.M{"_id": id, "updatedAt": seen}, current)
		if err != nil {
			return nil, err
		}
		if res.MatchedCount == 1 {
			return current, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrConcurrentUpdate, id)
}
