package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"voya/internal/models/db_models"
	"voya/pkg/utils"
)

const targetActivityCount = 5

const activitySystemPrompt = "You are a travel expert who generates exciting, specific activities for destinations. Always respond with valid JSON only."

type ActivityServiceInterface interface {
	GenerateActivities(ctx context.Context, destination, startDate, endDate string) ([]db_models.Activity, error)
}

type ActivityService struct {
	llm     utils.LLMClientInterface
	timeout time.Duration
}

// NewActivityService accepts a nil llm; generation then reports the provider
// as not configured.
func NewActivityService(llm utils.LLMClientInterface, timeout time.Duration) ActivityServiceInterface {
	return &ActivityService{
		llm:     llm,
		timeout: timeout,
	}
}

// GenerateActivities asks the LLM for candidate activities. Provider failures
// and unusable output degrade to a fixed fallback set; only a missing
// provider or invalid input is reported as an error.
func (a *ActivityService) GenerateActivities(ctx context.Context, destination, startDate, endDate string) ([]db_models.Activity, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	}
	startDate, endDate, err := utils.NormalizeDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	if a.llm == nil {
		return nil, utils.NotConfigured("LLM provider")
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.llm.CompleteJSON(callCtx, utils.CompletionRequest{
		SystemPrompt: activitySystemPrompt,
		Prompt:       buildActivityPrompt(destination, startDate, endDate),
		Temperature:  0.8,
		MaxTokens:    1500,
	})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return nil, ctx.Err()
		}
		log.WithField("provider", a.llm.Provider()).Warnf("activity generation failed, using fallback: %v", err)
		return FallbackActivities(destination), nil
	}

	activities, ok := ParseActivities(raw, destination)
	if !ok {
		log.WithField("provider", a.llm.Provider()).Warnf("activity response unusable, using fallback: %q", utils.Truncate(raw, 200))
		return FallbackActivities(destination), nil
	}
	return activities, nil
}

func buildActivityPrompt(destination, startDate, endDate string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Generate %d unique and exciting activities or things to do in %s.\n", targetActivityCount, destination)
	switch {
	case startDate != "" && endDate != "":
		fmt.Fprintf(&sb, "The traveller visits from %s to %s; prefer activities that fit that season.\n",
			utils.FormatDisplayDate(startDate), utils.FormatDisplayDate(endDate))
	case startDate != "":
		fmt.Fprintf(&sb, "The traveller arrives on %s.\n", utils.FormatDisplayDate(startDate))
	}
	sb.WriteString("Make sure the activities are diverse and include cultural, adventure, food, and sightseeing options.\n")
	sb.WriteString(`Respond with a JSON object in this exact format:
{
  "activities": [
    {
      "name": "Specific activity name",
      "category": "Culture | Food | Adventure | Sightseeing | Nature | Nightlife | Shopping",
      "duration": "e.g. 2-3 hours",
      "bestTime": "e.g. Morning",
      "whyRecommended": "One sentence on why it is worth doing",
      "practicalInfo": "Tickets, booking or transport tips"
    }
  ]
}`)
	return sb.String()
}

// ParseActivities reads an LLM reply as activities. It accepts an array of
// objects, an object wrapping them under "activities", or an array of plain
// strings. Missing fields get defaults. ok is false when nothing usable was
// found.
func ParseActivities(raw, destination string) ([]db_models.Activity, bool) {
	cleaned := utils.CleanJSONResponse(raw)

	var items []json.RawMessage
	if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
		var wrapped struct {
			Activities []json.RawMessage `json:"activities"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapped); err != nil {
			return nil, false
		}
		items = wrapped.Activities
	}

	activities := make([]db_models.Activity, 0, len(items))
	for _, item := range items {
		var name string
		if err := json.Unmarshal(item, &name); err == nil {
			if name = strings.TrimSpace(name); name != "" {
				activities = append(activities, withActivityDefaults(db_models.Activity{Name: name}, len(activities), destination))
			}
			continue
		}

		var fields map[string]any
		if err := json.Unmarshal(item, &fields); err != nil {
			continue
		}
		activities = append(activities, withActivityDefaults(db_models.Activity{
			Name:           pickString(fields, "name", "title", "activity"),
			Category:       pickString(fields, "category", "type"),
			Duration:       pickString(fields, "duration"),
			BestTime:       pickString(fields, "bestTime", "best_time"),
			WhyRecommended: pickString(fields, "whyRecommended", "why_recommended", "description"),
			PracticalInfo:  pickString(fields, "practicalInfo", "practical_info", "tips"),
		}, len(activities), destination))
	}

	if len(activities) == 0 {
		return nil, false
	}
	return activities, true
}

func withActivityDefaults(a db_models.Activity, index int, destination string) db_models.Activity {
	if a.Name == "" {
		a.Name = fmt.Sprintf("Activity %d in %s", index+1, destination)
	}
	if a.Category == "" {
		a.Category = "General"
	}
	if a.Duration == "" {
		a.Duration = "1-2 hours"
	}
	if a.BestTime == "" {
		a.BestTime = "Anytime"
	}
	if a.WhyRecommended == "" {
		a.WhyRecommended = fmt.Sprintf("A popular way to experience %s.", destination)
	}
	if a.PracticalInfo == "" {
		a.PracticalInfo = "Check opening hours and prices locally before you go."
	}
	return a
}

func pickString(fields map[string]any, keys ...string) string {
	for _, key := range keys {
		switch v := fields[key].(type) {
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return s
			}
		case float64:
			return fmt.Sprintf("%g", v)
		}
	}
	return ""
}

// FallbackActivities is served whenever generation yields nothing usable.
func FallbackActivities(destination string) []db_models.Activity {
	return []db_models.Activity{
		{
			Name:           fmt.Sprintf("Explore %s City Center", destination),
			Category:       "Sightseeing",
			Duration:       "2-3 hours",
			BestTime:       "Morning",
			WhyRecommended: "Get oriented and see the main landmarks on foot.",
			PracticalInfo:  "Comfortable shoes recommended; most sights are walkable.",
		},
		{
			Name:           "Try Local Cuisine",
			Category:       "Food",
			Duration:       "1-2 hours",
			BestTime:       "Evening",
			WhyRecommended: "Food is one of the quickest ways into a place's culture.",
			PracticalInfo:  "Ask locals for their favourite spots and book ahead on weekends.",
		},
		{
			Name:           "Visit a Local Museum",
			Category:       "Culture",
			Duration:       "2-3 hours",
			BestTime:       "Afternoon",
			WhyRecommended: "Learn the history behind what you see around the city.",
			PracticalInfo:  "Many museums close one day a week; check before going.",
		},
	}
}
