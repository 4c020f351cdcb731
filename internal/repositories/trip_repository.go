package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"voya/internal/infra"
	"voya/internal/models/db_models"
)

// TripMutator edits a stored trip in place. Returning an error aborts the
// update and leaves the stored record untouched.
type TripMutator func(trip *db_models.Trip) error

type TripRepository interface {
	// List returns the user's trips oldest first.
	List(ctx context.Context, user string) ([]db_models.Trip, error)
	GetByID(ctx context.Context, id string) (*db_models.Trip, error)
	Create(ctx context.Context, trip *db_models.Trip) error
	// Update applies mutate atomically and returns the stored result, or
	// nil, nil when no trip has that id.
	Update(ctx context.Context, id string, mutate TripMutator) (*db_models.Trip, error)
}

var errRecordMissing = errors.New("record missing")

// applyMutation runs mutate and restores the fields that never change after
// creation.
func applyMutation(trip *db_models.Trip, mutate TripMutator, now time.Time) error {
	id, user, createdAt := trip.ID, trip.User, trip.CreatedAt
	if err := mutate(trip); err != nil {
		return err
	}
	trip.ID = id
	trip.User = user
	trip.CreatedAt = createdAt
	trip.UpdatedAt = now
	return nil
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{
		db: db,
	}
}

func (t *tripRepository) List(ctx context.Context, user string) ([]db_models.Trip, error) {
	var trips []db_models.Trip
	err := t.db.WithContext(ctx).
		Where("owner_id = ?", user).
		Order("created_at ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (t *tripRepository) GetByID(ctx context.Context, id string) (*db_models.Trip, error) {
	var trip db_models.Trip
	err := t.db.WithContext(ctx).First(&trip, "id = ?", id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (t *tripRepository) Create(ctx context.Context, trip *db_models.Trip) error {
	return t.db.WithContext(ctx).Create(trip).Error
}

func (t *tripRepository) Update(ctx context.Context, id string, mutate TripMutator) (*db_models.Trip, error) {
	var updated db_models.Trip

	err := infra.WithTransaction(ctx, t.db, func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&updated, "id = ?", id).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errRecordMissing
			}
			return err
		}

		if err := applyMutation(&updated, mutate, time.Now().UTC()); err != nil {
			return err
		}
		return tx.Save(&updated).Error
	})

	if err != nil {
		if errors.Is(err, errRecordMissing) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}
