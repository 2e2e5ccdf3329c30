package menu_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/infra"
	"schoolmeal/internal/repositories"
	"schoolmeal/internal/services"
)

var Module = fx.Provide(
	provideMenuRepo, provideMenuService)

func provideMenuRepo(db *gorm.DB) repositories.MenuRepository {
	return repositories.NewMenuRepository(db)
}

func provideMenuService(menuRepo repositories.MenuRepository, foodRepo repositories.FoodRepository, cfg *infra.Config) services.MenuServiceInterface {
	return services.NewMenuService(menuRepo, foodRepo, services.MenuOptionsFromConfig(cfg))
}
