package db_fx

import (
	"context"
	"log"

	"go.uber.org/fx"
	"gorm.io/gorm"

	"schoolmeal/internal/infra"
)

var Module = fx.Provide(
	provideDB)

func provideDB(lc fx.Lifecycle, cfg *infra.Config) (*gorm.DB, error) {
	db, err := infra.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}

	if err := infra.AutoMigrate(db); err != nil {
		infra.CloseDatabase(db)
		return nil, err
	}
	log.Printf("Connected to %s database", cfg.DBDriver)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			infra.CloseDatabase(db)
			return nil
		},
	})
	return db, nil
}
