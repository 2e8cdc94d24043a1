package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newTestRedis(t)
	ctx := context.Background()

	if _, err := store.Get(ctx, "wolio.onboarding"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing key error = %v, want ErrNotFound", err)
	}

	if err := store.Set(ctx, "wolio.onboarding", []byte(`{"completed":true}`)); err != nil {
		t.Fatalf("Set: %v", err)
	}
	value, err := store.Get(ctx, "wolio.onboarding")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(value) != `{"completed":true}` {
		t.Fatalf("value = %q", value)
	}

	if err := store.Remove(ctx, "wolio.onboarding"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := store.Get(ctx, "wolio.onboarding"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("removed key error = %v, want ErrNotFound", err)
	}
}

func TestRedisStoreUnavailable(t *testing.T) {
	store, mr := newTestRedis(t)
	ctx := context.Background()

	mr.Close()

	if _, err := store.Get(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Get error = %v, want ErrUnavailable", err)
	}
	if err := store.Set(ctx, "k", []byte("v")); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Set error = %v, want ErrUnavailable", err)
	}
	if err := store.Remove(ctx, "k"); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("Remove error = %v, want ErrUnavailable", err)
	}
}
