package memcache_fx

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"schoolmeal/internal/infra"
	mem "schoolmeal/pkg/memcache"
)

var Module = fx.Provide(provideRemainingStore)

// provideRemainingStore uses Redis when REDIS_ADDR is set, so snapshots survive
// restarts and are shared between instances. Otherwise snapshots live in process.
func provideRemainingStore(lc fx.Lifecycle, cfg *infra.Config) (mem.RemainingStore, error) {
	if cfg.RedisAddr == "" {
		log.Println("REDIS_ADDR not set; using in-process session cache")
		return mem.NewRemainingSnapshots(), nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	log.Printf("Session cache connected to redis at %s", cfg.RedisAddr)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return mem.NewRedisRemainingStore(client), nil
}
