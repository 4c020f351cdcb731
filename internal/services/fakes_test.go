package services

import (
	"context"
	"io"

	"voya/internal/models/db_models"
	"voya/internal/models/request_models"
	"voya/internal/repositories"
	"voya/pkg/utils"
)

type fakeLLM struct {
	provider string
	complete func(ctx context.Context, req utils.CompletionRequest) (string, error)
	calls    []utils.CompletionRequest
}

var _ utils.LLMClientInterface = (*fakeLLM)(nil)

func (f *fakeLLM) Provider() string {
	if f.provider == "" {
		return "fake"
	}
	return f.provider
}

func (f *fakeLLM) CompleteJSON(ctx context.Context, req utils.CompletionRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.complete(ctx, req)
}

type fakeTranscriber struct {
	transcribe func(ctx context.Context, filename string, audio io.Reader) (string, error)
}

var _ utils.TranscriberInterface = (*fakeTranscriber)(nil)

func (f *fakeTranscriber) Transcribe(ctx context.Context, filename string, audio io.Reader) (string, error) {
	return f.transcribe(ctx, filename, audio)
}

type fakePlaces struct {
	autocomplete func(ctx context.Context, input string) ([]utils.PlacePrediction, error)
	calls        int
}

var _ utils.PlacesClientInterface = (*fakePlaces)(nil)

func (f *fakePlaces) Autocomplete(ctx context.Context, input string) ([]utils.PlacePrediction, error) {
	f.calls++
	return f.autocomplete(ctx, input)
}

// memTripRepo is an in-memory TripRepository with optional failure hooks.
type memTripRepo struct {
	trips     []db_models.Trip
	listErr   error
	createErr error
	updateErr error
}

var _ repositories.TripRepository = (*memTripRepo)(nil)

func (m *memTripRepo) List(_ context.Context, user string) ([]db_models.Trip, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []db_models.Trip
	for _, t := range m.trips {
		if t.User == user {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *memTripRepo) GetByID(_ context.Context, id string) (*db_models.Trip, error) {
	for i := range m.trips {
		if m.trips[i].ID == id {
			trip := m.trips[i]
			return &trip, nil
		}
	}
	return nil, nil
}

func (m *memTripRepo) Create(_ context.Context, trip *db_models.Trip) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.trips = append(m.trips, *trip)
	return nil
}

func (m *memTripRepo) Update(_ context.Context, id string, mutate repositories.TripMutator) (*db_models.Trip, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	for i := range m.trips {
		if m.trips[i].ID != id {
			continue
		}
		trip := m.trips[i]
		trip.LikedActivities = append([]db_models.Activity(nil), trip.LikedActivities...)
		trip.DislikedActivities = append([]db_models.Activity(nil), trip.DislikedActivities...)
		if err := mutate(&trip); err != nil {
			return nil, err
		}
		m.trips[i] = trip
		return &trip, nil
	}
	return nil, nil
}

type fakeTripService struct {
	create func(ctx context.Context, user string, req request_models.CreateTripRequest) (*db_models.Trip, error)
	get    func(ctx context.Context, user, id string) (*db_models.Trip, error)
}

var _ TripServiceInterface = (*fakeTripService)(nil)

func (f *fakeTripService) ListTrips(context.Context, string) []db_models.Trip { return nil }

func (f *fakeTripService) GetTrip(ctx context.Context, user, id string) (*db_models.Trip, error) {
	return f.get(ctx, user, id)
}

func (f *fakeTripService) CreateTrip(ctx context.Context, user string, req request_models.CreateTripRequest) (*db_models.Trip, error) {
	return f.create(ctx, user, req)
}

func (f *fakeTripService) UpdateTrip(context.Context, string, string, request_models.UpdateTripRequest) (*db_models.Trip, error) {
	return nil, nil
}

func (f *fakeTripService) MoveActivity(context.Context, string, string, request_models.MoveActivityRequest) (*db_models.Trip, error) {
	return nil, nil
}

type fakeActivityService struct {
	generate func(ctx context.Context, destination, startDate, endDate string) ([]db_models.Activity, error)
}

var _ ActivityServiceInterface = (*fakeActivityService)(nil)

func (f *fakeActivityService) GenerateActivities(ctx context.Context, destination, startDate, endDate string) ([]db_models.Activity, error) {
	return f.generate(ctx, destination, startDate, endDate)
}

func activities(names ...string) []db_models.Activity {
	out := make([]db_models.Activity, len(names))
	for i, n := range names {
		out[i] = db_models.Activity{Name: n, Category: "General", Duration: "1-2 hours", BestTime: "Anytime"}
	}
	return out
}

func intPtr(i int) *int { return &i }

func strPtr(s string) *string { return &s }
