package session

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

// Integration tests are enabled when SPECTER_REDIS_ADDR is set.
// Without it, these tests skip to keep local runs fast.

func mustRedisStore(ctx context.Context, t *testing.T) *RedisStore {
	t.Helper()

	addr := os.Getenv("SPECTER_REDIS_ADDR")
	if addr == "" {
		t.Skip("SPECTER_REDIS_ADDR is not set; skipping Redis integration test")
	}

	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis at %s not reachable: %v", addr, err)
	}

	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client)
}

func TestRedisStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := mustRedisStore(ctx, t)

	principal := fmt.Sprintf("it-%s", ulid.Make())
	t.Cleanup(func() { _ = store.Delete(ctx, RealmHuman, principal) })

	if err := store.Put(ctx, RealmHuman, principal, "tok", 30*time.Second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	v, err := store.Get(ctx, RealmHuman, principal)
	if err != nil || v != "tok" {
		t.Fatalf("Get = %q, %v", v, err)
	}

	ok, err := store.Exists(ctx, RealmHuman, principal)
	if err != nil || !ok {
		t.Fatalf("Exists = %v, %v", ok, err)
	}

	if err := store.Delete(ctx, RealmHuman, principal); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, RealmHuman, principal); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession after delete, got %v", err)
	}
	// Idempotent delete.
	if err := store.Delete(ctx, RealmHuman, principal); err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
}

func TestRedisStore_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	store := mustRedisStore(ctx, t)

	principal := fmt.Sprintf("it-%s", ulid.Make())
	t.Cleanup(func() { _ = store.Delete(ctx, RealmGhost, principal) })

	if err := store.Put(ctx, RealmGhost, principal, "tok", time.Second); err != nil {
		t.Fatalf("Put: %v", err)
	}

	time.Sleep(1500 * time.Millisecond)

	if ok, err := store.Exists(ctx, RealmGhost, principal); err != nil || ok {
		t.Fatalf("entry survived past its TTL: ok=%v err=%v", ok, err)
	}
}

func TestRedisStore_ServiceLifecycle(t *testing.T) {
	ctx := context.Background()
	store := mustRedisStore(ctx, t)

	cfg := testConfig(RealmHuman)
	codec, err := NewHMACCodec(cfg)
	if err != nil {
		t.Fatalf("NewHMACCodec: %v", err)
	}

	principal := fmt.Sprintf("it-%s", ulid.Make())
	svc := NewService(cfg, store, codec, StaticResolver{PrincipalID: principal}, nil)
	t.Cleanup(func() { _ = store.Delete(ctx, RealmHuman, principal) })

	now := time.Now().UTC()
	issued, err := svc.Login(ctx, now, Credentials{})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	if id, err := svc.Verify(ctx, now, issued.AccessToken); err != nil || id != principal {
		t.Fatalf("Verify = %q, %v", id, err)
	}

	rotated, err := svc.Refresh(ctx, now.Add(time.Second), issued.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if _, err := svc.Verify(ctx, now.Add(time.Second), issued.AccessToken); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("expected ErrSessionMismatch for pre-refresh token, got %v", err)
	}
	if _, err := svc.Verify(ctx, now.Add(time.Second), rotated.AccessToken); err != nil {
		t.Fatalf("Verify rotated: %v", err)
	}

	if err := svc.Logout(ctx, principal); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.Verify(ctx, now.Add(time.Second), rotated.AccessToken); !errors.Is(err, ErrSessionMismatch) {
		t.Fatalf("expected ErrSessionMismatch after logout, got %v", err)
	}
}
