package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/cmd/fx/account_fx"
	"voya/cmd/fx/config_fx"
	"voya/cmd/fx/controllers_fx"
	"voya/cmd/fx/db_fx"
	"voya/cmd/fx/memcache_fx"
	"voya/cmd/fx/places_fx"
	"voya/cmd/fx/prompt_fx"
	"voya/cmd/fx/tiktok_fx"
	"voya/cmd/fx/trip_fx"
	"voya/internal/api"
	"voya/internal/config"
	"voya/pkg/logger"
)

func main() {
	app := fx.New(
		config_fx.Module,
		fx.Invoke(ConfigureLogging),
		db_fx.Module,
		memcache_fx.Module,
		prompt_fx.Module,
		places_fx.Module,
		tiktok_fx.Module,
		trip_fx.Module,
		account_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.NopLogger,
	)

	app.Run()
}

func ConfigureLogging(cfg *config.Config) error {
	return logger.Configure(logger.Options{
		Level:    cfg.LogLevel,
		Format:   cfg.LogFormat,
		Output:   cfg.LogOutput,
		FilePath: cfg.LogFile,
	})
}

func ProvideRouter(cfg *config.Config, p api.RouterParams) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	return api.NewRouter(p)
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			go func() {
				log.Infof("Starting HTTP server at %s", srv.Addr)
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}
