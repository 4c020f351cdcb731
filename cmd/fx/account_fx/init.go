package account_fx

import (
	"go.uber.org/fx"
	"voya/internal/repositories"
	"voya/internal/services"
	"voya/pkg/utils"
)

var Module = fx.Provide(provideAccountService)

func provideAccountService(accountRepo repositories.AccountRepository, tokens *utils.TokenIssuer) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, tokens)
}
