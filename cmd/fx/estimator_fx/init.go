package estimator_fx

import (
	"context"
	"io"
	"log"

	"go.uber.org/fx"

	"schoolmeal/internal/infra"
	"schoolmeal/pkg/utils"
)

var Module = fx.Provide(
	ProvideNutritionEstimator)

// ProvideNutritionEstimator builds the vision client for ESTIMATOR_PROVIDER.
// Without an API key photo analysis is disabled rather than failing startup.
func ProvideNutritionEstimator(lc fx.Lifecycle, cfg *infra.Config) (utils.NutritionEstimatorInterface, error) {
	apiKey, model := cfg.EstimatorCredentials()

	estimator, err := utils.NewNutritionEstimator(cfg.EstimatorProvider, apiKey, model)
	if err != nil {
		return nil, err
	}
	log.Printf("Initialized %s nutrition estimator", estimator.Provider())

	if closer, ok := estimator.(io.Closer); ok {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				return closer.Close()
			},
		})
	}
	return estimator, nil
}
