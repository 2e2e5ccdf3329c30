package config_fx

import (
	"go.uber.org/fx"

	"schoolmeal/internal/infra"
)

var Module = fx.Provide(infra.LoadConfig)
