package controllers_fx

import (
	"go.uber.org/fx"

	"schoolmeal/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewLedgerController),
	fx.Provide(controllers.NewStudentController),
	fx.Provide(controllers.NewFoodController),
	fx.Provide(controllers.NewMenuController),
	fx.Provide(controllers.NewEstimateController),
	fx.Provide(controllers.NewReportController))
