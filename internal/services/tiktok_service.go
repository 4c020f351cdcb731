package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"voya/internal/infra"
	"voya/internal/models/db_models"
	"voya/internal/models/response_models"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

const extractionSystemPrompt = "You are a travel activity extraction expert. Always respond with valid JSON only."

// VideoSaverInterface persists an uploaded video and returns where it went.
type VideoSaverInterface interface {
	Save(originalName string, r io.Reader) (string, error)
}

type TikTokServiceInterface interface {
	// Upload runs both stages on a video and records the result for user.
	Upload(ctx context.Context, user, filename string, video io.Reader) (*db_models.TikTokActivity, error)
	Transcribe(ctx context.Context, filename string, media io.Reader) (string, error)
	ExtractActivity(ctx context.Context, transcription string) (*response_models.ExtractedActivity, error)
	Demo(user string) *db_models.TikTokActivity
	ListActivities(user string) []db_models.TikTokActivity
	GroupByLocation(user string) []response_models.TikTokGroup
}

type TikTokService struct {
	transcriber       utils.TranscriberInterface
	llm               utils.LLMClientInterface
	videos            VideoSaverInterface
	collection        *mem.TikTokCollection
	llmTimeout        time.Duration
	transcribeTimeout time.Duration
	pick              func(n int) int
}

func NewTikTokService(
	transcriber utils.TranscriberInterface,
	llm utils.LLMClientInterface,
	videos VideoSaverInterface,
	collection *mem.TikTokCollection,
	llmTimeout, transcribeTimeout time.Duration,
) TikTokServiceInterface {
	return &TikTokService{
		transcriber:       transcriber,
		llm:               llm,
		videos:            videos,
		collection:        collection,
		llmTimeout:        llmTimeout,
		transcribeTimeout: transcribeTimeout,
		pick:              rand.IntN,
	}
}

func (t *TikTokService) Upload(ctx context.Context, user, filename string, video io.Reader) (*db_models.TikTokActivity, error) {
	if t.transcriber == nil {
		return nil, utils.NotConfigured("OPENAI_API_KEY")
	}
	if t.llm == nil {
		return nil, utils.NotConfigured("LLM provider")
	}

	path, err := t.videos.Save(filename, video)
	if err != nil {
		if errors.Is(err, infra.ErrNotAVideo) {
			return nil, fmt.Errorf("%w: %v", utils.ErrUnsupportedMedia, err)
		}
		return nil, fmt.Errorf("save upload: %w", err)
	}
	log.WithField("path", path).Info("video saved")

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reopen upload: %w", err)
	}
	defer file.Close()

	transcription, err := t.Transcribe(ctx, filepath.Base(path), file)
	if err != nil {
		return nil, err
	}

	transcription = strings.TrimSpace(transcription)

	// Videos with only music transcribe to nothing; keep the upload anyway.
	var extracted *response_models.ExtractedActivity
	if transcription == "" {
		log.WithField("path", path).Warn("no speech in upload, using fallback activity")
		extracted = FallbackExtractedActivity("")
	} else if extracted, err = t.ExtractActivity(ctx, transcription); err != nil {
		return nil, err
	}

	activity := db_models.TikTokActivity{
		ID:            uuid.NewString(),
		Name:          extracted.Name,
		Location:      extracted.Location,
		Description:   extracted.Description,
		Category:      extracted.Category,
		Transcription: transcription,
		VideoPath:     path,
		CreatedAt:     time.Now().UTC(),
	}
	t.collection.Append(user, activity)
	return &activity, nil
}

// Transcribe is stage one. Any failure is a transcription error.
func (t *TikTokService) Transcribe(ctx context.Context, filename string, media io.Reader) (string, error) {
	if t.transcriber == nil {
		return "", utils.NotConfigured("OPENAI_API_KEY")
	}

	callCtx, cancel := context.WithTimeout(ctx, t.transcribeTimeout)
	defer cancel()

	text, err := t.transcriber.Transcribe(callCtx, filename, media)
	if err != nil {
		if errors.Is(err, utils.ErrTranscriptionFailed) {
			return "", err
		}
		return "", utils.NewTranscriptionError(err.Error(), err)
	}
	return strings.TrimSpace(text), nil
}

// ExtractActivity is stage two. Once a provider is configured it always
// yields an activity, falling back to a generic one built from the text.
func (t *TikTokService) ExtractActivity(ctx context.Context, transcription string) (*response_models.ExtractedActivity, error) {
	transcription = strings.TrimSpace(transcription)
	if transcription == "" {
		return nil, fmt.Errorf("%w: transcription is required", utils.ErrInvalidInput)
	}
	if t.llm == nil {
		return nil, utils.NotConfigured("LLM provider")
	}

	callCtx, cancel := context.WithTimeout(ctx, t.llmTimeout)
	defer cancel()

	raw, err := t.llm.CompleteJSON(callCtx, utils.CompletionRequest{
		SystemPrompt: extractionSystemPrompt,
		Prompt:       buildExtractionPrompt(transcription),
		Temperature:  0.3,
		MaxTokens:    300,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		log.Warnf("activity extraction failed, using fallback: %v", err)
		return FallbackExtractedActivity(transcription), nil
	}

	activity, ok := ParseExtractedActivity(raw)
	if !ok {
		log.Warnf("extraction response unusable, using fallback: %q", utils.Truncate(raw, 200))
		return FallbackExtractedActivity(transcription), nil
	}
	return activity, nil
}

func buildExtractionPrompt(transcription string) string {
	return fmt.Sprintf(`You are an expert travel activity analyzer. Given a TikTok video transcription, extract travel/activity information and format it as a structured activity recommendation.

Transcription: %q

Analyze the transcription and extract:
1. Activity name (what they're doing/recommending)
2. Location (city, country, or specific place mentioned)
3. Brief description (2-3 sentences about the activity)
4. Category (e.g., Food, Adventure, Culture, Shopping, Nightlife, Nature, etc.)

If the transcription doesn't clearly mention a travel activity or location, try to infer from context. If it's completely unrelated to travel, use the "General" category and "Unknown Location".

Respond with a JSON object in this exact format:
{
  "name": "Activity Name",
  "location": "City, Country",
  "description": "Brief description of the activity",
  "category": "Category"
}`, transcription)
}

func ParseExtractedActivity(raw string) (*response_models.ExtractedActivity, bool) {
	var fields map[string]any
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(raw)), &fields); err != nil {
		return nil, false
	}

	activity := &response_models.ExtractedActivity{
		Name:        pickString(fields, "name"),
		Location:    pickString(fields, "location"),
		Description: pickString(fields, "description"),
		Category:    pickString(fields, "category"),
	}
	if activity.Name == "" {
		activity.Name = "Unknown Activity"
	}
	if activity.Location == "" {
		activity.Location = "Unknown Location"
	}
	if activity.Description == "" {
		activity.Description = "Activity extracted from TikTok video"
	}
	if activity.Category == "" {
		activity.Category = "General"
	}
	return activity, true
}

func FallbackExtractedActivity(transcription string) *response_models.ExtractedActivity {
	return &response_models.ExtractedActivity{
		Name:        "TikTok Activity",
		Location:    "Unknown Location",
		Description: fmt.Sprintf("Activity from TikTok: %s...", utils.Truncate(transcription, 100)),
		Category:    "General",
	}
}

// Demo records one of the canned activities without calling any provider.
func (t *TikTokService) Demo(user string) *db_models.TikTokActivity {
	activity := demoTikTokActivities[t.pick(len(demoTikTokActivities))]
	activity.ID = uuid.NewString()
	activity.CreatedAt = time.Now().UTC()
	t.collection.Append(user, activity)
	return &activity
}

func (t *TikTokService) ListActivities(user string) []db_models.TikTokActivity {
	return t.collection.List(user)
}

// GroupByLocation buckets the user's activities by location, groups ordered
// by first appearance.
func (t *TikTokService) GroupByLocation(user string) []response_models.TikTokGroup {
	groups := []response_models.TikTokGroup{}
	index := map[string]int{}
	for _, activity := range t.collection.List(user) {
		key := activity.Location
		if key == "" {
			key = "Unknown Location"
		}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, response_models.TikTokGroup{Location: key})
		}
		groups[i].Activities = append(groups[i].Activities, activity)
	}
	return groups
}

var demoTikTokActivities = []db_models.TikTokActivity{
	{
		Name:          "Sushi Making Class",
		Location:      "Tokyo, Japan",
		Description:   "Learn authentic sushi making from a master chef in Tokyo. Perfect for food lovers!",
		Category:      "Food",
		Transcription: "OMG guys, I just took the most amazing sushi making class in Tokyo! The chef taught us how to make perfect sushi rice and roll amazing nigiri. This is a must-do if you're visiting Japan!",
		VideoPath:     "/demo/sushi-class.mp4",
	},
	{
		Name:          "Bungee Jumping",
		Location:      "Queenstown, New Zealand",
		Description:   "Heart-pounding bungee jump from the famous Kawarau Gorge Bridge.",
		Category:      "Adventure",
		Transcription: "Just did the most insane bungee jump in Queenstown! My heart is still racing! The views are incredible and the adrenaline rush is unmatched. If you're looking for an adventure, this is it!",
		VideoPath:     "/demo/bungee-jump.mp4",
	},
	{
		Name:          "Street Art Tour",
		Location:      "Berlin, Germany",
		Description:   "Explore the vibrant street art scene in Berlin's alternative neighborhoods.",
		Category:      "Culture",
		Transcription: "Berlin's street art is absolutely mind-blowing! Just finished this incredible walking tour through Kreuzberg and Friedrichshain. Every wall tells a story and the creativity here is off the charts!",
		VideoPath:     "/demo/street-art.mp4",
	},
	{
		Name:          "Rooftop Bar Experience",
		Location:      "Bangkok, Thailand",
		Description:   "Sunset drinks with panoramic city views from one of Bangkok's sky bars.",
		Category:      "Nightlife",
		Transcription: "This rooftop bar in Bangkok has the most incredible sunset views! The cocktails are amazing and you can see the entire city skyline. Perfect spot for a romantic evening or celebration!",
		VideoPath:     "/demo/rooftop-bar.mp4",
	},
	{
		Name:          "Local Market Food Tour",
		Location:      "Marrakech, Morocco",
		Description:   "Taste authentic Moroccan cuisine at the bustling local markets.",
		Category:      "Food",
		Transcription: "The food at Marrakech markets is incredible! Just tried the best tagine of my life and the spices here are so fresh. Don't miss the mint tea - it's a whole experience!",
		VideoPath:     "/demo/market-tour.mp4",
	},
}
