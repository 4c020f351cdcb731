package repositories

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voya/internal/infra"
	"voya/internal/models/db_models"
)

func newTripFileRepo(t *testing.T) (TripRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trips.json")
	file, err := infra.NewJSONFile[db_models.Trip](path)
	require.NoError(t, err)
	return NewTripFileRepository(file), path
}

func TestTripFileRepository_CreateThenList(t *testing.T) {
	repo, _ := newTripFileRepo(t)
	ctx := context.Background()

	trip := &db_models.Trip{
		Destination:     "Lisbon, Portugal",
		StartDate:       "2024-06-01",
		LikedActivities: []db_models.Activity{{Name: "Tram 28", Category: "Sightseeing"}},
	}
	require.NoError(t, repo.Create(ctx, trip))
	require.NotEmpty(t, trip.ID)
	require.False(t, trip.CreatedAt.IsZero())

	require.NoError(t, repo.Create(ctx, &db_models.Trip{Destination: "Other", User: "someone-else"}))

	trips, err := repo.List(ctx, "")
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, trip.ID, trips[0].ID)
	assert.Equal(t, "Lisbon, Portugal", trips[0].Destination)
	assert.Equal(t, trip.LikedActivities, trips[0].LikedActivities)
}

func TestTripFileRepository_UpdateMergesAndKeepsIdentity(t *testing.T) {
	repo, _ := newTripFileRepo(t)
	ctx := context.Background()

	trip := &db_models.Trip{Destination: "Kyoto"}
	require.NoError(t, repo.Create(ctx, trip))
	createdAt := trip.CreatedAt

	updated, err := repo.Update(ctx, trip.ID, func(stored *db_models.Trip) error {
		stored.ID = "hijack"
		stored.CreatedAt = time.Time{}
		stored.DislikedActivities = []db_models.Activity{{Name: "Queue"}}
		return nil
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, trip.ID, updated.ID)
	assert.True(t, createdAt.Equal(updated.CreatedAt))
	assert.Equal(t, "Kyoto", updated.Destination)
	assert.Len(t, updated.DislikedActivities, 1)

	stored, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, stored.DislikedActivities, 1)
}

func TestTripFileRepository_UpdateMissingLeavesFileUnchanged(t *testing.T) {
	repo, path := newTripFileRepo(t)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &db_models.Trip{Destination: "Oslo"}))

	before, err := os.ReadFile(path)
	require.NoError(t, err)

	called := false
	updated, err := repo.Update(ctx, "does-not-exist", func(*db_models.Trip) error {
		called = true
		return nil
	})
	require.NoError(t, err)
	assert.Nil(t, updated)
	assert.False(t, called)

	after, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestTripFileRepository_MutatorErrorAborts(t *testing.T) {
	repo, _ := newTripFileRepo(t)
	ctx := context.Background()
	trip := &db_models.Trip{Destination: "Rome"}
	require.NoError(t, repo.Create(ctx, trip))

	boom := errors.New("bad index")
	_, err := repo.Update(ctx, trip.ID, func(stored *db_models.Trip) error {
		stored.Destination = "Milan"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	stored, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rome", stored.Destination)
}

func TestTripFileRepository_CorruptFile(t *testing.T) {
	repo, path := newTripFileRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	_, err := repo.List(context.Background(), "")
	assert.Error(t, err)
}

func TestTripFileRepository_ListPreservesNoDuplicateFreedom(t *testing.T) {
	repo, _ := newTripFileRepo(t)
	ctx := context.Background()

	same := db_models.Activity{Name: "Fado night"}
	trip := &db_models.Trip{
		Destination:        "Lisbon",
		LikedActivities:    []db_models.Activity{same, same},
		DislikedActivities: []db_models.Activity{same},
	}
	require.NoError(t, repo.Create(ctx, trip))

	stored, err := repo.GetByID(ctx, trip.ID)
	require.NoError(t, err)
	assert.Len(t, stored.LikedActivities, 2)
	assert.Len(t, stored.DislikedActivities, 1)
}
