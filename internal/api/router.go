package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"voya/internal/api/controllers"
	"voya/internal/config"
	"voya/pkg/middleware"
	"voya/pkg/utils"
)

type RouterParams struct {
	fx.In

	Config *config.Config
	Tokens *utils.TokenIssuer

	Health   *controllers.HealthController
	Accounts *controllers.AccountController
	Places   *controllers.PlacesController
	Activity *controllers.ActivityController
	Trips    *controllers.TripController
	Triage   *controllers.TriageController
	TikTok   *controllers.TikTokController
}

// NewRouter trusts X-Forwarded-For only from the configured proxies, so the
// per-client rate limit keys on an address the caller cannot spoof.
func NewRouter(p RouterParams) (*gin.Engine, error) {
	r := gin.New()
	if err := r.SetTrustedProxies(p.Config.TrustedProxies); err != nil {
		return nil, err
	}
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORSMiddleware(p.Config.CORSOrigins))
	r.Use(middleware.OptionalAuthMiddleware(p.Tokens))

	RegisterRoutes(r, p, middleware.NewRateLimiter(p.Config.RateLimitPerMinute))
	return r, nil
}

// RegisterRoutes mounts every endpoint. The limiter guards the routes that
// call paid providers.
func RegisterRoutes(r *gin.Engine, p RouterParams, limiter *middleware.RateLimiter) {
	limited := limiter.Middleware()
	upload := middleware.MaxBodySize(p.Config.MaxUploadBytes)

	r.GET("/health", p.Health.Health)

	auth := r.Group("/auth")
	auth.POST("/register", p.Accounts.Register)
	auth.POST("/login", p.Accounts.Login)

	r.GET("/places/autocomplete", p.Places.Autocomplete)
	r.POST("/activities", limited, p.Activity.GenerateActivities)

	trips := r.Group("/trips")
	trips.GET("", p.Trips.ListTrips)
	trips.POST("", p.Trips.CreateTrip)
	trips.GET("/:id", p.Trips.GetTrip)
	trips.PUT("/:id", p.Trips.UpdateTrip)
	trips.POST("/:id/move", p.Trips.MoveActivity)
	trips.GET("/:id/export", p.Trips.ExportTrip)

	triage := r.Group("/triage/sessions")
	triage.POST("", limited, p.Triage.StartSession)
	triage.GET("/:id", p.Triage.GetSession)
	triage.POST("/:id/decisions", p.Triage.Decide)
	triage.DELETE("/:id", p.Triage.AbandonSession)

	tiktok := r.Group("/tiktok")
	tiktok.POST("/upload", limited, upload, p.TikTok.Upload)
	tiktok.POST("/transcribe", limited, upload, p.TikTok.Transcribe)
	tiktok.POST("/extract-activity", limited, p.TikTok.ExtractActivity)
	tiktok.POST("/demo", p.TikTok.Demo)
	tiktok.GET("/activities", p.TikTok.ListActivities)
}
