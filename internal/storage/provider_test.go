package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/redis/go-redis/v9"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

func TestOpenProvider(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"memory", Options{Kind: KindMemory}, false},
		{"sqlite", Options{Kind: KindSQLite, DBPath: filepath.Join(t.TempDir(), "p.db")}, false},
		{"default is sqlite", Options{DBPath: filepath.Join(t.TempDir(), "p.db")}, false},
		{"unknown", Options{Kind: "floppy"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := OpenProvider(ctx, tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("OpenProvider() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			defer p.Close()
			exerciseBackend(t, p.Profile("alice"))
		})
	}
}

func TestMemoryProfilesAreIsolated(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if err := m.Profile("alice").Set(ctx, progress.KeySolvedLevels, "[1]"); err != nil {
		t.Fatal(err)
	}
	if _, ok, _ := m.Profile("bob").Get(ctx, progress.KeySolvedLevels); ok {
		t.Error("bob sees alice's progress")
	}
}

// TestRedis runs against a live server named by AFFINITY_TEST_REDIS.
func TestRedis(t *testing.T) {
	addr := os.Getenv("AFFINITY_TEST_REDIS")
	if addr == "" {
		t.Skip("AFFINITY_TEST_REDIS not set")
	}
	ctx := context.Background()
	r, err := OpenRedis(ctx, addr, "affinity-test")
	if err != nil {
		t.Fatalf("OpenRedis() failed: %v", err)
	}
	defer r.Close()
	t.Cleanup(func() {
		r.client.Del(ctx, r.key("alice", progress.KeySolvedLevels), r.key("alice", progress.KeyValues))
	})

	exerciseBackend(t, r.Profile("alice"))
}

func TestOpenRedisUnreachable(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := OpenRedis(ctx, "127.0.0.1:1", ""); err == nil {
		t.Error("OpenRedis() on a dead address should fail")
	}
}

func TestRedisKeyLayout(t *testing.T) {
	r := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), "")
	defer r.Close()
	if got := r.key("alice", progress.KeyValues); got != "affinity:alice:affineAffinityValues" {
		t.Errorf("key = %q", got)
	}
}

// exerciseBackend checks get/set/delete semantics shared by every backend.
func exerciseBackend(t *testing.T, b progress.Backend) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := b.Get(ctx, progress.KeySolvedLevels); err != nil || ok {
		t.Fatalf("Get() on empty profile = ok %v, err %v", ok, err)
	}
	if err := b.Set(ctx, progress.KeySolvedLevels, "[1,2]"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	if err := b.Set(ctx, progress.KeySolvedLevels, "[1,2,3]"); err != nil {
		t.Fatalf("Set() overwrite failed: %v", err)
	}
	v, ok, err := b.Get(ctx, progress.KeySolvedLevels)
	if err != nil || !ok || v != "[1,2,3]" {
		t.Fatalf("Get() = %q, %v, %v", v, ok, err)
	}
	if err := b.Delete(ctx, progress.KeySolvedLevels); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := b.Get(ctx, progress.KeySolvedLevels); ok {
		t.Error("key still present after Delete()")
	}
	if err := b.Delete(ctx, progress.KeyValues); err != nil {
		t.Errorf("Delete() of missing key failed: %v", err)
	}
}
