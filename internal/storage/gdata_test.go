package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func openTestGData(t *testing.T) *GData {
	t.Helper()
	appName := fmt.Sprintf("affinity_test_%d", time.Now().UnixNano())
	g, err := OpenGData(appName)
	if err != nil {
		t.Skipf("cannot open save data: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})
	return g
}

func TestGDataBackend(t *testing.T) {
	ctx := context.Background()
	g := openTestGData(t)
	p := g.Profile("player")

	if _, ok, err := p.Get(ctx, "solvedLevels"); ok || err != nil {
		t.Fatalf("Get() on fresh data = %v, %v", ok, err)
	}
	if err := p.Set(ctx, "solvedLevels", "[1,2]"); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	v, ok, err := p.Get(ctx, "solvedLevels")
	if err != nil || !ok || v != "[1,2]" {
		t.Errorf("Get() = %q, %v, %v", v, ok, err)
	}
	if err := p.Delete(ctx, "solvedLevels"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, ok, _ := p.Get(ctx, "solvedLevels"); ok {
		t.Error("key should be gone after Delete()")
	}
	if err := p.Delete(ctx, "solvedLevels"); err != nil {
		t.Errorf("second Delete() should succeed, got %v", err)
	}
}

func TestGDataProfileNamesStayInsideDataDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("save data lives under AppData on windows")
	}
	ctx := context.Background()
	home := t.TempDir()
	t.Setenv("HOME", home)

	g, err := OpenGData("affinity_test")
	if err != nil {
		t.Skipf("cannot open save data: %v", err)
	}
	dataDir := filepath.Join(home, ".local", "share", "affinity_test")

	names := []string{"../../../../escaped", "../escaped", "a/b", "..", "", "bob"}
	for _, name := range names {
		t.Run(fmt.Sprintf("%q", name), func(t *testing.T) {
			p := g.Profile(name)
			if err := p.Set(ctx, "solvedLevels", name); err != nil {
				t.Fatalf("Set() failed: %v", err)
			}
			v, ok, err := p.Get(ctx, "solvedLevels")
			if err != nil || !ok || v != name {
				t.Errorf("Get() = %q, %v, %v", v, ok, err)
			}
			path := g.manager.ObjectPropPath(objectKey(name), "solvedLevels")
			if rel, err := filepath.Rel(dataDir, path); err != nil || strings.HasPrefix(rel, "..") {
				t.Errorf("prop stored at %s, outside %s", path, dataDir)
			}
		})
	}

	for _, escaped := range []string{filepath.Join(home, "escaped"), filepath.Join(home, ".local", "escaped")} {
		if _, err := os.Stat(escaped); !os.IsNotExist(err) {
			t.Errorf("%s was created", escaped)
		}
	}
	if _, ok, _ := g.Profile("a/b").Get(ctx, "solvedLevels"); !ok {
		t.Error("profile a/b lost its data")
	}
	if v, _, _ := g.Profile("bob").Get(ctx, "solvedLevels"); v != "bob" {
		t.Errorf("profiles share storage: bob sees %q", v)
	}
}
