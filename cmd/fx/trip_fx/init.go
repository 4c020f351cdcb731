package trip_fx

import (
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/repositories"
	"voya/internal/services"
)

var Module = fx.Provide(provideTripService, provideExportService, provideTriageService)

func provideTripService(tripRepo repositories.TripRepository) services.TripServiceInterface {
	return services.NewTripService(tripRepo)
}

func provideExportService(trips services.TripServiceInterface, cfg *config.Config) services.ExportServiceInterface {
	return services.NewExportService(trips, cfg.AppBaseURL)
}

func provideTriageService(
	activities services.ActivityServiceInterface,
	trips services.TripServiceInterface,
	cfg *config.Config,
) services.TriageServiceInterface {
	return services.NewTriageService(activities, trips, cfg.SessionTTL)
}
