package report_fx

import (
	"go.uber.org/fx"

	"schoolmeal/internal/services"
)

var Module = fx.Provide(services.NewReportService)
