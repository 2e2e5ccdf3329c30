package food_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/repositories"
	"schoolmeal/internal/services"
)

var Module = fx.Provide(
	provideFoodRepo, provideFoodService)

func provideFoodRepo(db *gorm.DB) repositories.FoodRepository {
	return repositories.NewFoodRepository(db)
}

func provideFoodService(foodRepo repositories.FoodRepository) services.FoodServiceInterface {
	return services.NewFoodService(foodRepo)
}
