package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"voya/internal/infra"
	"voya/internal/models/db_models"
)

type tripFileRepository struct {
	file *infra.JSONFile[db_models.Trip]
}

// NewTripFileRepository keeps every trip in one JSON array file.
func NewTripFileRepository(file *infra.JSONFile[db_models.Trip]) TripRepository {
	return &tripFileRepository{file: file}
}

func (t *tripFileRepository) List(_ context.Context, user string) ([]db_models.Trip, error) {
	all, err := t.file.Load()
	if err != nil {
		return nil, err
	}

	trips := make([]db_models.Trip, 0, len(all))
	for _, trip := range all {
		if trip.User == user {
			trips = append(trips, trip)
		}
	}
	return trips, nil
}

func (t *tripFileRepository) GetByID(_ context.Context, id string) (*db_models.Trip, error) {
	all, err := t.file.Load()
	if err != nil {
		return nil, err
	}
	for i := range all {
		if all[i].ID == id {
			return &all[i], nil
		}
	}
	return nil, nil
}

func (t *tripFileRepository) Create(_ context.Context, trip *db_models.Trip) error {
	if trip.ID == "" {
		trip.ID = uuid.NewString()
	}
	if trip.CreatedAt.IsZero() {
		trip.CreatedAt = time.Now().UTC()
	}
	if trip.UpdatedAt.IsZero() {
		trip.UpdatedAt = trip.CreatedAt
	}

	return t.file.Mutate(func(items []db_models.Trip) ([]db_models.Trip, error) {
		return append(items, *trip), nil
	})
}

func (t *tripFileRepository) Update(_ context.Context, id string, mutate TripMutator) (*db_models.Trip, error) {
	var updated db_models.Trip

	err := t.file.Mutate(func(items []db_models.Trip) ([]db_models.Trip, error) {
		for i := range items {
			if items[i].ID != id {
				continue
			}
			trip := items[i]
			if err := applyMutation(&trip, mutate, time.Now().UTC()); err != nil {
				return nil, err
			}
			items[i] = trip
			updated = trip
			return items, nil
		}
		return nil, errRecordMissing
	})

	if err != nil {
		if errors.Is(err, errRecordMissing) {
			return nil, nil
		}
		return nil, err
	}
	return &updated, nil
}
