package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

func newTestBoard(t *testing.T, profiles ...string) BoardModel {
	t.Helper()
	ctx := context.Background()
	store := storage.NewMemory()

	session, err := progress.NewSession(ctx, store.Profile("alice"), nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	goal, _ := affine.GoalParams(1)
	if err := session.SetParams(ctx, goal); err != nil {
		t.Fatal(err)
	}
	return NewBoardModel(ctx, store, profiles, 100, 30)
}

func TestBoardSwitchProfile(t *testing.T) {
	m := newTestBoard(t, "alice", "bob")
	if len(m.levels) != affine.LevelCount || !m.levels[0].Solved {
		t.Fatalf("alice should have level 1 solved: %+v", m.levels)
	}
	if !strings.Contains(m.View(), "PROGRESS - alice") {
		t.Error("board should open on the first profile")
	}

	tests := []struct {
		name        string
		msg         tea.Msg
		profile     string
		firstSolved bool
	}{
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, "bob", false},
		{"tab wraps", tea.KeyMsg{Type: tea.KeyTab}, "alice", true},
		{"shift+tab wraps", tea.KeyMsg{Type: tea.KeyShiftTab}, "bob", false},
		{"left", tea.KeyMsg{Type: tea.KeyLeft}, "alice", true},
	}

	var next tea.Model = m
	for _, tt := range tests {
		next = update(t, next, tt.msg)
		board := next.(BoardModel)
		if got := board.profiles[board.cursor]; got != tt.profile {
			t.Errorf("%s: profile = %q, expected %q", tt.name, got, tt.profile)
		}
		if board.levels[0].Solved != tt.firstSolved {
			t.Errorf("%s: level 1 solved = %v, expected %v", tt.name, board.levels[0].Solved, tt.firstSolved)
		}
		if !strings.Contains(next.View(), "PROGRESS - "+tt.profile) {
			t.Errorf("%s: title should name %s", tt.name, tt.profile)
		}
	}
}

func TestBoardQuitAndEmpty(t *testing.T) {
	for _, msg := range []tea.Msg{runeKey('q'), tea.KeyMsg{Type: tea.KeyEsc}} {
		next, cmd := newTestBoard(t, "alice").Update(msg)
		if cmd == nil || next.View() != "" {
			t.Errorf("%v should quit the board", msg)
		}
	}

	empty := newTestBoard(t)
	next := update(t, empty, tea.KeyMsg{Type: tea.KeyTab}, tea.WindowSizeMsg{Width: 60, Height: 20})
	if next.(BoardModel).showSidebar {
		t.Error("narrow board should hide the sidebar")
	}
	if !strings.Contains(next.View(), "No progress recorded yet.") {
		t.Error("board without profiles should say so")
	}
}
