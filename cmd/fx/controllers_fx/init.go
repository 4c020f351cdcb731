package controllers_fx

import (
	"go.uber.org/fx"
	"voya/internal/api/controllers"
	"voya/internal/config"
	"voya/internal/services"
	mem "voya/pkg/memcache"
	"voya/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideHealthService),
	fx.Provide(controllers.NewHealthController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewActivityController),
	fx.Provide(controllers.NewTripController),
	fx.Provide(controllers.NewTriageController),
	fx.Provide(controllers.NewTikTokController))

func provideHealthService(
	cfg *config.Config,
	llm utils.LLMClientInterface,
	transcriber utils.TranscriberInterface,
	places utils.PlacesClientInterface,
	cache mem.SuggestionCache,
) services.HealthServiceInterface {
	return services.NewHealthService(cfg.StoreDriver, llm, transcriber, places, cache)
}
