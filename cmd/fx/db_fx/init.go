package db_fx

import (
	"context"
	"fmt"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/internal/infra"
	"voya/internal/models/db_models"
	"voya/internal/repositories"
)

var Module = fx.Provide(provideStores)

type Stores struct {
	fx.Out

	Trips    repositories.TripRepository
	Accounts repositories.AccountRepository
}

func provideStores(lc fx.Lifecycle, cfg *config.Config) (Stores, error) {
	log.WithField("driver", cfg.StoreDriver).Info("opening trip store")

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := infra.InitPostgresql(context.Background(), cfg.PostgresURL)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.Hook{OnStop: func(context.Context) error {
			infra.ClosePostgresql(db)
			return nil
		}})
		return Stores{
			Trips:    repositories.NewTripRepository(db),
			Accounts: repositories.NewAccountRepository(db),
		}, nil

	case config.StoreMongo:
		client, db, err := infra.InitMongo(context.Background(), cfg.MongoURL, cfg.MongoDB)
		if err != nil {
			return Stores{}, err
		}
		lc.Append(fx.Hook{OnStop: func(ctx context.Context) error {
			infra.CloseMongo(ctx, client)
			return nil
		}})
		return Stores{
			Trips:    repositories.NewTripMongoRepository(db),
			Accounts: repositories.NewAccountMongoRepository(db),
		}, nil

	case config.StoreFile:
		trips, err := infra.NewJSONFile[db_models.Trip](filepath.Join(cfg.DataDir, "trips.json"))
		if err != nil {
			return Stores{}, err
		}
		accounts, err := infra.NewJSONFile[db_models.Account](filepath.Join(cfg.DataDir, "accounts.json"))
		if err != nil {
			return Stores{}, err
		}
		return Stores{
			Trips:    repositories.NewTripFileRepository(trips),
			Accounts: repositories.NewAccountFileRepository(accounts),
		}, nil
	}

	return Stores{}, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
