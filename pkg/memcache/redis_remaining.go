package mem

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const remainingKeyPrefix = "schoolmeal:remaining:"

// RedisRemainingStore shares session snapshots between app instances.
type RedisRemainingStore struct {
	client *redis.Client
}

func NewRedisRemainingStore(client *redis.Client) *RedisRemainingStore {
	return &RedisRemainingStore{client: client}
}

func remainingKey(sessionID string) string {
	return remainingKeyPrefix + sessionID
}

func (r *RedisRemainingStore) Get(ctx context.Context, sessionID string) (*RemainingSnapshot, bool) {
	data, err := r.client.Get(ctx, remainingKey(sessionID)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Printf("Redis get remaining snapshot: %v", err)
		}
		return nil, false
	}

	var snap RemainingSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Printf("Corrupt remaining snapshot for session %s: %v", sessionID, err)
		return nil, false
	}
	return &snap, true
}

func (r *RedisRemainingStore) Set(ctx context.Context, sessionID string, snapshot RemainingSnapshot, ttl time.Duration) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		log.Printf("Encode remaining snapshot: %v", err)
		return
	}
	if err := r.client.Set(ctx, remainingKey(sessionID), data, ttl).Err(); err != nil {
		log.Printf("Redis set remaining snapshot: %v", err)
	}
}

func (r *RedisRemainingStore) Update(ctx context.Context, sessionID string, fn func(*RemainingSnapshot)) bool {
	key := remainingKey(sessionID)
	updated := false

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			return err
		}

		var snap RemainingSnapshot
		if err := json.Unmarshal(data, &snap); err != nil {
			return err
		}
		fn(&snap)

		out, err := json.Marshal(snap)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, out, redis.KeepTTL)
			return nil
		})
		if err == nil {
			updated = true
		}
		return err
	}, key)

	if err != nil && !errors.Is(err, redis.Nil) {
		log.Printf("Redis update remaining snapshot: %v", err)
		// Drop a snapshot we could not keep in step with the log.
		r.Delete(ctx, sessionID)
		return false
	}
	return updated
}

func (r *RedisRemainingStore) Delete(ctx context.Context, sessionID string) {
	if err := r.client.Del(ctx, remainingKey(sessionID)).Err(); err != nil {
		log.Printf("Redis delete remaining snapshot: %v", err)
	}
}
