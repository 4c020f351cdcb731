package places_fx

import (
	"context"

	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/services"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

var Module = fx.Provide(providePlacesClient, provideLocationService)

func providePlacesClient(cfg *config.Config) utils.PlacesClientInterface {
	if cfg.GoogleMapsKey == "" {
		log.Warn("GOOGLE_MAPS_API_KEY is not set, location suggestions use the built-in list")
		return nil
	}
	client, err := utils.NewGooglePlacesClient(context.Background(), cfg.GoogleMapsKey)
	if err != nil {
		log.Errorf("places client unavailable, using the built-in list: %v", err)
		return nil
	}
	return client
}

func provideLocationService(places utils.PlacesClientInterface, cache mem.SuggestionCache, cfg *config.Config) services.LocationServiceInterface {
	return services.NewLocationService(places, cache, cfg.LLMTimeout)
}
