package wolio

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/wolio-app/wolio-go/storage"
)

func newTestRedisStore(t *testing.T) *storage.RedisStore {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return storage.NewRedisStore(client)
}

func TestSessionRoundTripThroughRedis(t *testing.T) {
	backend := newTestRedisStore(t)
	ctx := context.Background()

	first, err := New().
		WithStorage(backend).
		WithAuthClient(&fakeAuth{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(first.Close)

	first.Hydrate(ctx)
	user := User{ID: "u-9", Name: "Redis Student", Email: "redis@example.com"}
	if err := first.SetAuthAfterVerify(ctx, "tok-redis", user); err != nil {
		t.Fatalf("SetAuthAfterVerify: %v", err)
	}
	first.CompleteOnboarding(ctx, "parent")

	second, err := New().
		WithStorage(backend).
		WithAuthClient(&fakeAuth{}).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(second.Close)

	second.Hydrate(ctx)

	if !second.IsLoggedIn() || second.Token() != "tok-redis" {
		t.Fatal("session must round-trip through the Redis backend")
	}
	restored := second.CurrentUser()
	if restored == nil || restored.Name != "Redis Student" {
		t.Fatalf("restored user = %+v", restored)
	}
	snap := second.Snapshot()
	if !snap.Onboarding.Completed || snap.Onboarding.Role != "parent" {
		t.Fatalf("restored onboarding = %+v", snap.Onboarding)
	}
}
