package main

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		arg      string
		want     int
		notFound bool
		wantErr  bool
	}{
		{"1", 1, false, false},
		{"10", 10, false, false},
		{"0", 0, true, true},
		{"11", 0, true, true},
		{"abc", 0, false, true},
		{"", 0, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseLevel(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseLevel(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if errors.Is(err, progress.ErrLevelNotFound) != tt.notFound {
				t.Errorf("parseLevel(%q) error = %v, not-found %v", tt.arg, err, tt.notFound)
			}
			if got != tt.want {
				t.Errorf("parseLevel(%q) = %d, want %d", tt.arg, got, tt.want)
			}
		})
	}
}

func TestFirstUnsolved(t *testing.T) {
	ctx := context.Background()
	session, err := progress.NewSession(ctx, storage.NewMemory().Profile("p"), nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := firstUnsolved(session); got != 1 {
		t.Fatalf("fresh profile starts at %d, want 1", got)
	}

	for lv := 1; lv <= 3; lv++ {
		goal, _ := affine.GoalParams(lv)
		if err := session.GoTo(ctx, lv); err != nil {
			t.Fatal(err)
		}
		if err := session.SetParams(ctx, goal); err != nil {
			t.Fatal(err)
		}
	}
	if got := firstUnsolved(session); got != 4 {
		t.Errorf("after solving 1-3 got %d, want 4", got)
	}
}

func TestFormatControls(t *testing.T) {
	p := affine.Params{TX: 20, TY: -5, S: 1.5, G: 10, H: 0}
	tests := []struct {
		level int
		want  string
	}{
		{1, "tx=20 ty=-5"},
		{3, "s=1.5"},
		{7, "g=10 h=0"},
	}
	for _, tt := range tests {
		if got := formatControls(tt.level, p); got != tt.want {
			t.Errorf("formatControls(%d) = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestProfileNamesFallsBackToConfiguredProfile(t *testing.T) {
	appConfig.Storage.Profile = "local"
	names, err := profileNames(context.Background(), storage.NewMemory())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "local" {
		t.Errorf("profileNames = %v, want [local]", names)
	}
}

func TestProfileNamesFromSQLite(t *testing.T) {
	ctx := context.Background()
	store, err := storage.Open(t.TempDir() + "/progress.db")
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, name := range []string{"alice", "bob"} {
		if err := store.Profile(name).Set(ctx, progress.KeySolvedLevels, "[1]"); err != nil {
			t.Fatal(err)
		}
	}
	names, err := profileNames(ctx, store)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 {
		t.Errorf("profileNames = %v, want alice and bob", names)
	}
}
