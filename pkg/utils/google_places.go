package utils

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	places "google.golang.org/api/places/v1"
)

// PlacePrediction is one autocomplete hit as returned by the provider.
type PlacePrediction struct {
	PlaceID       string
	MainText      string
	SecondaryText string
	FullText      string
	Types         []string
}

type PlacesClientInterface interface {
	Autocomplete(ctx context.Context, input string) ([]PlacePrediction, error)
}

type GooglePlacesClient struct {
	svc *places.Service
}

func NewGooglePlacesClient(ctx context.Context, apiKey string) (*GooglePlacesClient, error) {
	svc, err := places.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Places client: %w", err)
	}
	return &GooglePlacesClient{svc: svc}, nil
}

// Autocomplete returns a ProviderError when Google rejects the request and
// an ErrServiceUnavailable error when Google cannot be reached.
func (g *GooglePlacesClient) Autocomplete(ctx context.Context, input string) ([]PlacePrediction, error) {
	resp, err := g.svc.Places.Autocomplete(&places.GoogleMapsPlacesV1AutocompletePlacesRequest{
		Input: input,
	}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && apiErr.Code >= http.StatusBadRequest && apiErr.Code < http.StatusInternalServerError {
			return nil, &ProviderError{Stage: "places autocomplete", Message: apiErr.Message, Err: err}
		}
		return nil, fmt.Errorf("%w: places autocomplete: %v", ErrServiceUnavailable, err)
	}

	predictions := make([]PlacePrediction, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		if s == nil || s.PlacePrediction == nil {
			continue
		}
		p := s.PlacePrediction
		pred := PlacePrediction{
			PlaceID: p.PlaceId,
			Types:   p.Types,
		}
		if p.Text != nil {
			pred.FullText = p.Text.Text
		}
		if p.StructuredFormat != nil {
			if p.StructuredFormat.MainText != nil {
				pred.MainText = p.StructuredFormat.MainText.Text
			}
			if p.StructuredFormat.SecondaryText != nil {
				pred.SecondaryText = p.StructuredFormat.SecondaryText.Text
			}
		}
		predictions = append(predictions, pred)
	}
	return predictions, nil
}
