package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"voya/internal/models/response_models"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

const maxSuggestions = 10

var establishmentTypes = map[string]bool{
	"establishment":     true,
	"point_of_interest": true,
	"business":          true,
	"store":             true,
	"restaurant":        true,
	"lodging":           true,
	"food":              true,
	"health":            true,
}

type LocationServiceInterface interface {
	Suggest(ctx context.Context, query string) ([]response_models.Suggestion, error)
}

type LocationService struct {
	places  utils.PlacesClientInterface
	cache   mem.SuggestionCache
	timeout time.Duration
}

// NewLocationService accepts a nil places client; suggestions then come from
// the built-in gazetteer.
func NewLocationService(places utils.PlacesClientInterface, cache mem.SuggestionCache, timeout time.Duration) LocationServiceInterface {
	return &LocationService{
		places:  places,
		cache:   cache,
		timeout: timeout,
	}
}

func (l *LocationService) Suggest(ctx context.Context, query string) ([]response_models.Suggestion, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: input parameter is required", utils.ErrInvalidInput)
	}

	if l.places == nil {
		return SearchGazetteer(query), nil
	}

	if l.cache != nil {
		if cached, ok := l.cache.Get(ctx, query); ok {
			return cached, nil
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	predictions, err := l.places.Autocomplete(callCtx, query)
	if err != nil {
		if errors.Is(err, utils.ErrServiceUnavailable) {
			log.Warnf("places provider unavailable, using gazetteer: %v", err)
			return SearchGazetteer(query), nil
		}
		return nil, err
	}

	suggestions := FilterPredictions(predictions)
	if l.cache != nil {
		l.cache.Set(ctx, query, suggestions)
	}
	return suggestions, nil
}

// FilterPredictions drops establishments and maps the remaining geographic
// predictions to suggestions, keeping at most ten.
func FilterPredictions(predictions []utils.PlacePrediction) []response_models.Suggestion {
	suggestions := make([]response_models.Suggestion, 0, len(predictions))
	for _, p := range predictions {
		if isEstablishment(p.Types) {
			continue
		}
		name := p.MainText
		if name == "" {
			name = p.FullText
		}
		suggestions = append(suggestions, response_models.Suggestion{
			ID:              p.PlaceID,
			Name:            name,
			Description:     p.SecondaryText,
			Type:            LocationTypeLabel(p.Types),
			FullDescription: p.FullText,
		})
		if len(suggestions) == maxSuggestions {
			break
		}
	}
	return suggestions
}

func isEstablishment(types []string) bool {
	for _, t := range types {
		if establishmentTypes[t] {
			return true
		}
	}
	return false
}

// LocationTypeLabel turns provider place types into the label shown next to a
// suggestion.
func LocationTypeLabel(types []string) string {
	has := make(map[string]bool, len(types))
	for _, t := range types {
		has[t] = true
	}
	switch {
	case has["country"]:
		return "Country"
	case has["administrative_area_level_1"]:
		return "State/Province"
	case has["locality"]:
		return "City"
	case has["sublocality"], has["sublocality_level_1"]:
		return "District"
	case has["natural_feature"]:
		return "Natural Feature"
	case has["establishment"]:
		return "Establishment"
	case has["geographic"], has["political"]:
		return "Region"
	}
	return "Location"
}
