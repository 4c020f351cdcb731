package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"voya/internal/models/db_models"
	"voya/internal/models/request_models"
	"voya/internal/models/response_models"
	"voya/internal/triage"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

type TriageServiceInterface interface {
	Start(ctx context.Context, user string, req request_models.StartTriageRequest) (*response_models.TriageSessionResponse, error)
	Get(user, id string) (*response_models.TriageSessionResponse, error)
	Decide(ctx context.Context, user, id string, req request_models.DecisionRequest) (*response_models.TriageSessionResponse, error)
	Abandon(user, id string) error
}

type triageEntry struct {
	mu          sync.Mutex
	id          string
	user        string
	destination string
	startDate   string
	endDate     string
	session     *triage.Session
	trip        *db_models.Trip
}

type TriageService struct {
	activities ActivityServiceInterface
	trips      TripServiceInterface
	sessions   *mem.TTLStore[*triageEntry]
}

// NewTriageService keeps open sessions in memory until they sit idle for
// sessionTTL.
func NewTriageService(activities ActivityServiceInterface, trips TripServiceInterface, sessionTTL time.Duration) TriageServiceInterface {
	return &TriageService{
		activities: activities,
		trips:      trips,
		sessions:   mem.NewTTLStore[*triageEntry](sessionTTL),
	}
}

// Start generates candidates for the destination and opens a session over
// them.
func (t *TriageService) Start(ctx context.Context, user string, req request_models.StartTriageRequest) (*response_models.TriageSessionResponse, error) {
	startDate, endDate, err := utils.NormalizeDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	candidates, err := t.activities.GenerateActivities(ctx, req.Destination, startDate, endDate)
	if err != nil {
		return nil, err
	}

	entry := &triageEntry{
		id:          uuid.NewString(),
		user:        user,
		destination: strings.TrimSpace(req.Destination),
		startDate:   startDate,
		endDate:     endDate,
		session:     triage.NewSession(candidates),
	}
	t.sessions.Set(entry.id, entry)

	entry.mu.Lock()
	defer entry.mu.Unlock()
	if err := t.finalize(ctx, entry); err != nil {
		return nil, err
	}
	return entry.view(""), nil
}

func (t *TriageService) Get(user, id string) (*response_models.TriageSessionResponse, error) {
	entry, err := t.lookup(user, id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.view(""), nil
}

// Decide applies an explicit direction or a finished drag gesture. A drag
// under the threshold and a decision on a finished session both leave the
// session unchanged and report decision "none".
func (t *TriageService) Decide(ctx context.Context, user, id string, req request_models.DecisionRequest) (*response_models.TriageSessionResponse, error) {
	entry, err := t.lookup(user, id)
	if err != nil {
		return nil, err
	}

	var (
		direction triage.Direction
		resolved  bool
	)
	switch {
	case req.Gesture != nil:
		if req.Gesture.ViewportWidth <= 0 {
			return nil, fmt.Errorf("%w: viewportWidth must be positive", utils.ErrInvalidInput)
		}
		direction, resolved = triage.ResolveGesture(req.Gesture.DeltaX, req.Gesture.ViewportWidth)
	case req.Direction != "":
		direction, err = triage.ParseDirection(req.Direction)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", utils.ErrInvalidInput, err)
		}
		resolved = true
	default:
		return nil, fmt.Errorf("%w: direction or gesture is required", utils.ErrInvalidInput)
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	decision := response_models.DecisionNone
	if resolved && entry.session.Decide(direction) {
		decision = direction.String()
	}

	if err := t.finalize(ctx, entry); err != nil {
		return nil, err
	}
	return entry.view(decision), nil
}

func (t *TriageService) Abandon(user, id string) error {
	if _, err := t.lookup(user, id); err != nil {
		return err
	}
	t.sessions.Delete(id)
	return nil
}

func (t *TriageService) lookup(user, id string) (*triageEntry, error) {
	entry, ok := t.sessions.Get(id)
	if !ok || entry.user != user {
		return nil, utils.ErrSessionNotFound
	}
	return entry, nil
}

// finalize hands a terminal session's result to the trip store once. A
// failed save is retried on the next call. Callers hold entry.mu.
func (t *TriageService) finalize(ctx context.Context, entry *triageEntry) error {
	if !entry.session.Done() || entry.trip != nil {
		return nil
	}

	trip, err := t.trips.CreateTrip(ctx, entry.user, request_models.CreateTripRequest{
		Destination:        entry.destination,
		StartDate:          entry.startDate,
		EndDate:            entry.endDate,
		LikedActivities:    entry.session.Liked(),
		DislikedActivities: entry.session.Disliked(),
	})
	if err != nil {
		log.WithField("session_id", entry.id).Errorf("saving triaged trip failed: %v", err)
		return err
	}
	entry.trip = trip
	return nil
}

func (e *triageEntry) view(decision string) *response_models.TriageSessionResponse {
	resp := &response_models.TriageSessionResponse{
		ID:          e.id,
		Destination: e.destination,
		StartDate:   e.startDate,
		EndDate:     e.endDate,
		Status:      response_models.TriageStatusActive,
		Cursor:      e.session.Cursor(),
		Total:       e.session.Total(),
		Liked:       e.session.Liked(),
		Disliked:    e.session.Disliked(),
		Decision:    decision,
		Saved:       e.trip != nil,
		Trip:        e.trip,
	}
	if current, ok := e.session.Current(); ok {
		resp.Current = &current
	} else {
		resp.Status = response_models.TriageStatusTerminal
	}
	return resp
}
