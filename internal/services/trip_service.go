package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"voya/internal/models/db_models"
	"voya/internal/models/request_models"
	"voya/internal/repositories"
	"voya/pkg/utils"
)

const (
	ListLiked    = "liked"
	ListDisliked = "disliked"
)

type TripServiceInterface interface {
	// ListTrips never fails: an unreadable store is reported as no trips.
	ListTrips(ctx context.Context, user string) []db_models.Trip
	GetTrip(ctx context.Context, user, id string) (*db_models.Trip, error)
	CreateTrip(ctx context.Context, user string, req request_models.CreateTripRequest) (*db_models.Trip, error)
	UpdateTrip(ctx context.Context, user, id string, req request_models.UpdateTripRequest) (*db_models.Trip, error)
	MoveActivity(ctx context.Context, user, id string, req request_models.MoveActivityRequest) (*db_models.Trip, error)
}

type TripService struct {
	tripRepo repositories.TripRepository
}

func NewTripService(tripRepo repositories.TripRepository) TripServiceInterface {
	return &TripService{
		tripRepo: tripRepo,
	}
}

func (t *TripService) ListTrips(ctx context.Context, user string) []db_models.Trip {
	trips, err := t.tripRepo.List(ctx, user)
	if err != nil {
		log.Warnf("listing trips failed, returning empty collection: %v", err)
		return []db_models.Trip{}
	}
	if trips == nil {
		return []db_models.Trip{}
	}
	return trips
}

func (t *TripService) GetTrip(ctx context.Context, user, id string) (*db_models.Trip, error) {
	trip, err := t.tripRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil || trip.User != user {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (t *TripService) CreateTrip(ctx context.Context, user string, req request_models.CreateTripRequest) (*db_models.Trip, error) {
	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	startDate, endDate, err := utils.NormalizeDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	trip := &db_models.Trip{
		ID:                 uuid.NewString(),
		User:               user,
		Destination:        destination,
		StartDate:          startDate,
		EndDate:            endDate,
		CreatedAt:          now,
		UpdatedAt:          now,
		LikedActivities:    nonNilActivities(req.LikedActivities),
		DislikedActivities: nonNilActivities(req.DislikedActivities),
	}
	trip.Preferences = ComputePreferences(trip.LikedActivities, trip.DislikedActivities)

	if err := t.tripRepo.Create(ctx, trip); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	log.WithFields(log.Fields{"trip_id": trip.ID, "liked": len(trip.LikedActivities), "disliked": len(trip.DislikedActivities)}).
		Info("trip created")
	return trip, nil
}

func (t *TripService) UpdateTrip(ctx context.Context, user, id string, req request_models.UpdateTripRequest) (*db_models.Trip, error) {
	if req.Destination != nil && strings.TrimSpace(*req.Destination) == "" {
		return nil, fmt.Errorf("%w: destination cannot be empty", utils.ErrInvalidInput)
	}

	trip, err := t.tripRepo.Update(ctx, id, func(stored *db_models.Trip) error {
		if stored.User != user {
			return utils.ErrTripNotFound
		}

		if req.Destination != nil {
			stored.Destination = strings.TrimSpace(*req.Destination)
		}
		startDate, endDate := stored.StartDate, stored.EndDate
		if req.StartDate != nil {
			startDate = *req.StartDate
		}
		if req.EndDate != nil {
			endDate = *req.EndDate
		}
		startDate, endDate, err := utils.NormalizeDateRange(startDate, endDate)
		if err != nil {
			return err
		}
		stored.StartDate, stored.EndDate = startDate, endDate

		if req.LikedActivities != nil {
			stored.LikedActivities = nonNilActivities(*req.LikedActivities)
		}
		if req.DislikedActivities != nil {
			stored.DislikedActivities = nonNilActivities(*req.DislikedActivities)
		}
		stored.Preferences = ComputePreferences(stored.LikedActivities, stored.DislikedActivities)
		return nil
	})

	return t.finishUpdate(trip, err)
}

// MoveActivity reclassifies one activity between (or within) the liked and
// disliked lists.
func (t *TripService) MoveActivity(ctx context.Context, user, id string, req request_models.MoveActivityRequest) (*db_models.Trip, error) {
	if req.FromIndex == nil {
		return nil, fmt.Errorf("%w: fromIndex is required", utils.ErrInvalidInput)
	}

	trip, err := t.tripRepo.Update(ctx, id, func(stored *db_models.Trip) error {
		if stored.User != user {
			return utils.ErrTripNotFound
		}
		if err := moveActivity(stored, req.From, *req.FromIndex, req.To, req.ToIndex); err != nil {
			return err
		}
		stored.Preferences = ComputePreferences(stored.LikedActivities, stored.DislikedActivities)
		return nil
	})

	return t.finishUpdate(trip, err)
}

func (t *TripService) finishUpdate(trip *db_models.Trip, err error) (*db_models.Trip, error) {
	if err != nil {
		if errors.Is(err, utils.ErrTripNotFound) || errors.Is(err, utils.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func moveActivity(trip *db_models.Trip, from string, fromIndex int, to string, toIndex *int) error {
	src, err := listFor(trip, from)
	if err != nil {
		return err
	}
	if _, err := listFor(trip, to); err != nil {
		return err
	}
	if fromIndex < 0 || fromIndex >= len(*src) {
		return fmt.Errorf("%w: fromIndex %d out of range for %s list of %d", utils.ErrInvalidInput, fromIndex, from, len(*src))
	}

	activity := (*src)[fromIndex]
	remaining := make([]db_models.Activity, 0, len(*src)-1)
	remaining = append(remaining, (*src)[:fromIndex]...)
	remaining = append(remaining, (*src)[fromIndex+1:]...)

	dstItems := remaining
	if from != to {
		dst, _ := listFor(trip, to)
		dstItems = *dst
	}

	insertAt := len(dstItems)
	if toIndex != nil {
		insertAt = min(max(*toIndex, 0), len(dstItems))
	}
	if from == to && insertAt == fromIndex {
		return nil
	}

	moved := make([]db_models.Activity, 0, len(dstItems)+1)
	moved = append(moved, dstItems[:insertAt]...)
	moved = append(moved, activity)
	moved = append(moved, dstItems[insertAt:]...)

	if from != to {
		*src = remaining
	}
	dst, _ := listFor(trip, to)
	*dst = moved
	return nil
}

func listFor(trip *db_models.Trip, name string) (*[]db_models.Activity, error) {
	switch name {
	case ListLiked:
		return &trip.LikedActivities, nil
	case ListDisliked:
		return &trip.DislikedActivities, nil
	}
	return nil, fmt.Errorf("%w: unknown list %q", utils.ErrInvalidInput, name)
}

func nonNilActivities(in []db_models.Activity) []db_models.Activity {
	if in == nil {
		return []db_models.Activity{}
	}
	return in
}

// ComputePreferences summarises what the traveller liked and disliked.
func ComputePreferences(liked, disliked []db_models.Activity) *db_models.TripPreferences {
	prefs := &db_models.TripPreferences{
		LikedCategories:    []string{},
		DislikedCategories: []string{},
		PreferredDurations: []string{},
		PreferredTimes:     []string{},
		TotalLiked:         len(liked),
		TotalDisliked:      len(disliked),
	}
	for _, a := range liked {
		prefs.LikedCategories = appendDistinct(prefs.LikedCategories, a.Category)
		prefs.PreferredDurations = appendDistinct(prefs.PreferredDurations, a.Duration)
		prefs.PreferredTimes = appendDistinct(prefs.PreferredTimes, a.BestTime)
	}
	for _, a := range disliked {
		prefs.DislikedCategories = appendDistinct(prefs.DislikedCategories, a.Category)
	}
	return prefs
}

func appendDistinct(values []string, v string) []string {
	if v == "" {
		return values
	}
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}
