package config_fx

import (
	"go.uber.org/fx"
	"voya/internal/config"
	"voya/pkg/utils"
)

var Module = fx.Provide(config.Load, provideTokenIssuer)

func provideTokenIssuer(cfg *config.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret)
}
