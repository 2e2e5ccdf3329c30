package account_fx

import (
	"context"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/repositories"
	"schoolmeal/internal/services"
	"schoolmeal/pkg/utils"
)

var Module = fx.Options(
	fx.Provide(provideAccountService, provideAccountRepo, provideTokenIssuer),
	fx.Invoke(seedMasterAdmin))

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideTokenIssuer(cfg *infra.Config) *utils.TokenIssuer {
	return utils.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	studentRepo repositories.StudentRepository,
	ledger services.LedgerServiceInterface,
	tokens *utils.TokenIssuer,
) services.AccountServiceInterface {
	return services.NewAccountService(accountRepo, studentRepo, ledger, tokens)
}

// seedMasterAdmin creates the ADMIN_LOGIN account on startup if it is missing.
func seedMasterAdmin(cfg *infra.Config, accounts services.AccountServiceInterface) error {
	return accounts.EnsureMasterAdmin(context.Background(), cfg.AdminLogin, cfg.AdminPassword)
}
