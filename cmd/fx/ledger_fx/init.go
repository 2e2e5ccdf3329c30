package ledger_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/repositories"
	"schoolmeal/internal/services"
	mem "schoolmeal/pkg/memcache"
)

var Module = fx.Provide(
	provideIntakeRepo, provideLedgerService)

func provideIntakeRepo(db *gorm.DB) repositories.IntakeRepository {
	return repositories.NewIntakeRepository(db)
}

func provideLedgerService(
	db *gorm.DB,
	studentRepo repositories.StudentRepository,
	foodRepo repositories.FoodRepository,
	intakeRepo repositories.IntakeRepository,
	cache mem.RemainingStore,
	cfg *infra.Config,
) services.LedgerServiceInterface {
	return services.NewLedgerService(db, studentRepo, foodRepo, intakeRepo, cache, services.LedgerOptionsFromConfig(cfg))
}
