package mem

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSnapshot() RemainingSnapshot {
	return RemainingSnapshot{
		StudentID: "s-1",
		Day:       "2024-09-02",
		Calories:  1500,
		Protein:   80,
		Fat:       50,
		Carbs:     200,
		Eaten:     []string{"Rice"},
	}
}

func TestRemainingSnapshots_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 9, 2, 8, 0, 0, 0, time.UTC)
	store := NewRemainingSnapshots()
	store.now = func() time.Time { return now }

	store.Set(ctx, "jti-1", sampleSnapshot(), time.Minute)

	got, ok := store.Get(ctx, "jti-1")
	require.True(t, ok)
	assert.Equal(t, 1500.0, got.Calories)

	now = now.Add(2 * time.Minute)
	_, ok = store.Get(ctx, "jti-1")
	assert.False(t, ok)
	assert.False(t, store.Update(ctx, "jti-1", func(*RemainingSnapshot) {}))
}

func TestRemainingSnapshots_UpdateAndIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewRemainingSnapshots()

	snap := sampleSnapshot()
	store.Set(ctx, "jti-1", snap, time.Minute)
	snap.Eaten[0] = "changed by caller"

	ok := store.Update(ctx, "jti-1", func(s *RemainingSnapshot) {
		s.Calories -= 300
		s.Eaten = append(s.Eaten, "Soup")
	})
	require.True(t, ok)

	got, ok := store.Get(ctx, "jti-1")
	require.True(t, ok)
	assert.Equal(t, 1200.0, got.Calories)
	assert.Equal(t, []string{"Rice", "Soup"}, got.Eaten)

	got.Eaten[0] = "mutated copy"
	again, _ := store.Get(ctx, "jti-1")
	assert.Equal(t, "Rice", again.Eaten[0])

	assert.False(t, store.Update(ctx, "missing", func(*RemainingSnapshot) {}))

	store.Delete(ctx, "jti-1")
	_, ok = store.Get(ctx, "jti-1")
	assert.False(t, ok)
}

func newRedisStore(t *testing.T) (*RedisRemainingStore, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisRemainingStore(client), srv
}

func TestRedisRemainingStore_RoundTripAndUpdate(t *testing.T) {
	ctx := context.Background()
	store, srv := newRedisStore(t)

	store.Set(ctx, "jti-1", sampleSnapshot(), time.Minute)
	assert.True(t, srv.Exists(remainingKey("jti-1")))

	ok := store.Update(ctx, "jti-1", func(s *RemainingSnapshot) {
		s.Protein -= 20.5
		s.Eaten = append(s.Eaten, "Fish")
	})
	require.True(t, ok)

	got, ok := store.Get(ctx, "jti-1")
	require.True(t, ok)
	assert.Equal(t, "s-1", got.StudentID)
	assert.Equal(t, 59.5, got.Protein)
	assert.Equal(t, []string{"Rice", "Fish"}, got.Eaten)

	// Update keeps the TTL.
	assert.Greater(t, srv.TTL(remainingKey("jti-1")), time.Duration(0))
}

func TestRedisRemainingStore_MissingAndExpired(t *testing.T) {
	ctx := context.Background()
	store, srv := newRedisStore(t)

	_, ok := store.Get(ctx, "nope")
	assert.False(t, ok)
	assert.False(t, store.Update(ctx, "nope", func(*RemainingSnapshot) {}))

	store.Set(ctx, "jti-2", sampleSnapshot(), time.Minute)
	srv.FastForward(2 * time.Minute)
	_, ok = store.Get(ctx, "jti-2")
	assert.False(t, ok)
}

func TestRedisRemainingStore_CorruptValueIsDropped(t *testing.T) {
	ctx := context.Background()
	store, srv := newRedisStore(t)

	require.NoError(t, srv.Set(remainingKey("jti-3"), "{not json"))

	_, ok := store.Get(ctx, "jti-3")
	assert.False(t, ok)

	assert.False(t, store.Update(ctx, "jti-3", func(*RemainingSnapshot) {}))
	assert.False(t, srv.Exists(remainingKey("jti-3")))
}

func TestRedisRemainingStore_Delete(t *testing.T) {
	ctx := context.Background()
	store, srv := newRedisStore(t)

	store.Set(ctx, "jti-4", sampleSnapshot(), time.Minute)
	store.Delete(ctx, "jti-4")
	assert.False(t, srv.Exists(remainingKey("jti-4")))
}
