package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voya/internal/api/controllers"
	"voya/internal/config"
	"voya/internal/infra"
	"voya/internal/models/db_models"
	"voya/internal/repositories"
	"voya/internal/services"
	mem "voya/pkg/memcache"
	"voya/pkg/middleware"
	"voya/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubLLM struct {
	reply string
}

func (s *stubLLM) Provider() string { return "stub" }

func (s *stubLLM) CompleteJSON(context.Context, utils.CompletionRequest) (string, error) {
	return s.reply, nil
}

type stubTranscriber struct{}

func (stubTranscriber) Transcribe(_ context.Context, _ string, audio io.Reader) (string, error) {
	_, err := io.Copy(io.Discard, audio)
	return "We hiked to the Pena Palace in Sintra at sunrise.", err
}

const generatedActivities = `{"activities": [
	{"name": "Tram 28", "category": "Sightseeing", "duration": "1 hour", "bestTime": "Morning"},
	{"name": "Pastel de nata tasting", "category": "Food", "duration": "30 minutes", "bestTime": "Afternoon"}
]}`

const extractedActivity = `{"name": "Pena Palace hike", "location": "Sintra, Portugal", "description": "Sunrise hike", "category": "Outdoor"}`

// mp4 "ftyp" box so the upload is sniffed as video
var mp4Header = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'm', 'p', '4', '2', 0x00, 0x00, 0x00, 0x00, 'm', 'p', '4', '2', 'i', 's', 'o', 'm'}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
	tokens *utils.TokenIssuer
}

func newTestServer(t *testing.T, rateLimit int, trustedProxies ...string) *testServer {
	t.Helper()
	dir := t.TempDir()

	tripFile, err := infra.NewJSONFile[db_models.Trip](filepath.Join(dir, "trips.json"))
	require.NoError(t, err)
	accountFile, err := infra.NewJSONFile[db_models.Account](filepath.Join(dir, "accounts.json"))
	require.NoError(t, err)
	videos, err := infra.NewVideoStore(dir)
	require.NoError(t, err)

	cfg := &config.Config{
		StoreDriver:        config.StoreFile,
		RateLimitPerMinute: rateLimit,
		MaxUploadBytes:     1 << 20,
		AppBaseURL:         "http://localhost:3000",
		TrustedProxies:     trustedProxies,
	}
	tokens := utils.NewTokenIssuer("test-secret")

	tripService := services.NewTripService(repositories.NewTripFileRepository(tripFile))
	activityService := services.NewActivityService(&stubLLM{reply: generatedActivities}, time.Second)
	cache := mem.NewMemorySuggestionCache(time.Minute)

	params := RouterParams{
		Config:   cfg,
		Tokens:   tokens,
		Health:   controllers.NewHealthController(services.NewHealthService(cfg.StoreDriver, nil, nil, nil, cache)),
		Accounts: controllers.NewAccountController(services.NewAccountService(repositories.NewAccountFileRepository(accountFile), tokens)),
		Places:   controllers.NewPlacesController(services.NewLocationService(nil, cache, time.Second)),
		Activity: controllers.NewActivityController(activityService),
		Trips:    controllers.NewTripController(tripService, services.NewExportService(tripService, cfg.AppBaseURL)),
		Triage:   controllers.NewTriageController(services.NewTriageService(activityService, tripService, time.Hour)),
		TikTok: controllers.NewTikTokController(services.NewTikTokService(
			stubTranscriber{}, &stubLLM{reply: extractedActivity}, videos, mem.NewTikTokCollection(), time.Second, time.Second)),
	}

	engine, err := NewRouter(params)
	require.NoError(t, err)
	return &testServer{t: t, engine: engine, tokens: tokens}
}

type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	TraceID string          `json:"trace_id"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(req *http.Request, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		_ = json.Unmarshal(rec.Body.Bytes(), &env)
	}
	return rec, env
}

func (s *testServer) doJSON(method, path string, body any, token string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	return s.do(req, token)
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))
	return out
}

func TestRouter_HealthCarriesTraceID(t *testing.T) {
	s := newTestServer(t, 0)

	rec, env := s.doJSON(http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, rec.Header().Get(middleware.TraceIDHeader), env.TraceID)

	health := decode[map[string]any](t, env)
	assert.Equal(t, "file", health["store"])
	assert.Equal(t, false, health["llm"])
	assert.Equal(t, "memory", health["suggestCache"])
}

func TestRouter_TripLifecycle(t *testing.T) {
	s := newTestServer(t, 0)

	rec, env := s.doJSON(http.MethodPost, "/trips", map[string]any{"destination": "Lisbon"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[db_models.Trip](t, env)
	assert.NotEmpty(t, created.ID)
	assert.Empty(t, created.LikedActivities)

	rec, env = s.doJSON(http.MethodPut, "/trips/"+created.ID, map[string]any{
		"likedActivities": []map[string]string{{"name": "Tram 28", "category": "Sightseeing"}},
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[db_models.Trip](t, env)
	assert.Equal(t, "Lisbon", updated.Destination)
	require.Len(t, updated.LikedActivities, 1)

	rec, env = s.doJSON(http.MethodPost, "/trips/"+created.ID+"/move", map[string]any{
		"from": "liked", "fromIndex": 0, "to": "disliked", "toIndex": 0,
	}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	moved := decode[db_models.Trip](t, env)
	assert.Empty(t, moved.LikedActivities)
	assert.Equal(t, "Tram 28", moved.DislikedActivities[0].Name)

	rec, env = s.doJSON(http.MethodGet, "/trips", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]db_models.Trip](t, env), 1)

	rec, _ = s.doJSON(http.MethodGet, "/trips/"+created.ID+"/export?format=csv", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "trip-lisbon.csv")
	assert.Contains(t, rec.Body.String(), "disliked,1,Tram 28")

	rec, env = s.doJSON(http.MethodPut, "/trips/missing", map[string]any{"destination": "Porto"}, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "error", env.Status)

	rec, _ = s.doJSON(http.MethodPost, "/trips", map[string]any{"destination": "Porto", "startDate": "tomorrow"}, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_AuthScopesTrips(t *testing.T) {
	s := newTestServer(t, 0)

	rec, env := s.doJSON(http.MethodPost, "/auth/register", map[string]string{"username": "maria", "password": "correct horse"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	token := decode[map[string]any](t, env)["token"].(string)

	rec, env = s.doJSON(http.MethodPost, "/auth/login", map[string]string{"username": "maria", "password": "correct horse"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.doJSON(http.MethodPost, "/trips", map[string]any{"destination": "Kyoto"}, token)
	require.Equal(t, http.StatusCreated, rec.Code)
	trip := decode[db_models.Trip](t, env)

	rec, env = s.doJSON(http.MethodGet, "/trips", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]db_models.Trip](t, env))

	rec, _ = s.doJSON(http.MethodGet, "/trips/"+trip.ID, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = s.doJSON(http.MethodGet, "/trips/"+trip.ID, nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.doJSON(http.MethodGet, "/trips", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = s.doJSON(http.MethodPost, "/auth/login", map[string]string{"username": "maria", "password": "wrong horse"}, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_TriageSavesTrip(t *testing.T) {
	s := newTestServer(t, 0)

	rec, env := s.doJSON(http.MethodPost, "/triage/sessions", map[string]any{"destination": "Lisbon"}, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	session := decode[map[string]any](t, env)
	id := session["id"].(string)
	assert.Equal(t, float64(2), session["total"])

	rec, env = s.doJSON(http.MethodPost, "/triage/sessions/"+id+"/decisions",
		map[string]any{"gesture": map[string]float64{"deltaX": 50, "viewportWidth": 400}}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "none", decode[map[string]any](t, env)["decision"])

	rec, _ = s.doJSON(http.MethodPost, "/triage/sessions/"+id+"/decisions", map[string]string{"direction": "accept"}, "")
	require.Equal(t, http.StatusOK, rec.Code)
	rec, env = s.doJSON(http.MethodPost, "/triage/sessions/"+id+"/decisions", map[string]string{"direction": "reject"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	final := decode[map[string]any](t, env)
	assert.Equal(t, "terminal", final["status"])
	assert.Equal(t, true, final["saved"])

	rec, env = s.doJSON(http.MethodGet, "/trips", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	trips := decode[[]db_models.Trip](t, env)
	require.Len(t, trips, 1)
	assert.Equal(t, "Tram 28", trips[0].LikedActivities[0].Name)
	assert.Equal(t, "Pastel de nata tasting", trips[0].DislikedActivities[0].Name)

	rec, _ = s.doJSON(http.MethodDelete, "/triage/sessions/"+id, nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = s.doJSON(http.MethodGet, "/triage/sessions/"+id, nil, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func multipartRequest(t *testing.T, path, field, filename string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestRouter_TikTokUploadAndCollection(t *testing.T) {
	s := newTestServer(t, 0)
	video := append(append([]byte{}, mp4Header...), bytes.Repeat([]byte{0x02}, 1024)...)

	rec, env := s.do(multipartRequest(t, "/tiktok/upload", "video", "sintra.mp4", video), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	activity := decode[db_models.TikTokActivity](t, env)
	assert.Equal(t, "Pena Palace hike", activity.Name)
	assert.Equal(t, "Sintra, Portugal", activity.Location)
	assert.FileExists(t, activity.VideoPath)

	rec, _ = s.do(multipartRequest(t, "/tiktok/upload", "video", "notes.txt", []byte("plain text")), "")
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)

	rec, _ = s.do(multipartRequest(t, "/tiktok/upload", "clip", "sintra.mp4", video), "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = s.doJSON(http.MethodPost, "/tiktok/demo", nil, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env = s.doJSON(http.MethodGet, "/tiktok/activities", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]db_models.TikTokActivity](t, env), 2)

	rec, env = s.doJSON(http.MethodGet, "/tiktok/activities?groupBy=location", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, decode[[]map[string]any](t, env))

	rec, _ = s.doJSON(http.MethodGet, "/tiktok/activities?groupBy=category", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UploadTooLarge(t *testing.T) {
	s := newTestServer(t, 0)
	video := append(append([]byte{}, mp4Header...), bytes.Repeat([]byte{0x02}, 2<<20)...)

	rec, _ := s.do(multipartRequest(t, "/tiktok/transcribe", "file", "big.mp4", video), "")
	assert.Contains(t, []int{http.StatusRequestEntityTooLarge, http.StatusBadRequest}, rec.Code)
}

func TestRouter_PlacesFallsBackToGazetteer(t *testing.T) {
	s := newTestServer(t, 0)

	rec, env := s.doJSON(http.MethodGet, "/places/autocomplete?input=lisb", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode[map[string][]map[string]any](t, env)
	require.NotEmpty(t, body["suggestions"])
	assert.Equal(t, "Lisbon", body["suggestions"][0]["name"])

	rec, _ = s.doJSON(http.MethodGet, "/places/autocomplete", nil, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_RateLimitsProviderRoutes(t *testing.T) {
	s := newTestServer(t, 1)

	rec, _ := s.doJSON(http.MethodPost, "/activities", map[string]any{"destination": "Lisbon"}, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = s.doJSON(http.MethodPost, "/activities", map[string]any{"destination": "Lisbon"}, "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	rec, _ = s.doJSON(http.MethodGet, "/trips", nil, "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_RateLimitIgnoresSpoofedForwardedFor(t *testing.T) {
	s := newTestServer(t, 1)

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"destination":"Lisbon"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec, _ := s.do(req, "")
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
}

func TestRouter_TrustedProxyForwardsClientAddress(t *testing.T) {
	// httptest requests come from 192.0.2.1
	s := newTestServer(t, 1, "192.0.2.0/24")

	send := func(forwardedFor string) int {
		req := httptest.NewRequest(http.MethodPost, "/activities", strings.NewReader(`{"destination":"Lisbon"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", forwardedFor)
		rec, _ := s.do(req, "")
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send("203.0.113.1"))
	assert.Equal(t, http.StatusOK, send("203.0.113.2"))
	assert.Equal(t, http.StatusTooManyRequests, send("203.0.113.2"))
}
