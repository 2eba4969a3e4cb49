package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/games/affinity"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

func newTestSession(t *testing.T, level int) *progress.Session {
	t.Helper()
	session, err := progress.NewSession(context.Background(), storage.NewMemory().Profile("test"), nil, level)
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	return session
}

func update(t *testing.T, m tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		m, _ = m.Update(msg)
	}
	return m
}

func TestModelKeys(t *testing.T) {
	session := newTestSession(t, 1)
	cfg := core.DefaultConfig()
	m := NewModel(context.Background(), affinity.New(session, cfg), cfg)

	update(t, m,
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyDown},
		tea.KeyMsg{Type: tea.KeyShiftRight},
		tea.KeyMsg{Type: tea.KeyShiftRight},
	)
	if got := session.Params(); got.TX != 20 || got.TY != 20 {
		t.Fatalf("params = %+v, expected tx=20 ty=20", got)
	}
	if !session.Solved(1) {
		t.Error("level 1 should be solved")
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if session.Level() != 2 {
		t.Errorf("level = %d after enter, expected 2", session.Level())
	}

	update(t, m, runeKey('7'))
	if session.Level() != 7 {
		t.Errorf("level = %d after pressing 7, expected 7", session.Level())
	}
}

func TestModelQuitAndMenu(t *testing.T) {
	session := newTestSession(t, 1)
	cfg := core.DefaultConfig()

	next, cmd := NewModel(context.Background(), affinity.New(session, cfg), cfg).Update(runeKey('q'))
	if !next.(Model).IsQuitting() || cmd == nil {
		t.Error("q should quit")
	}

	next, _ = NewModel(context.Background(), affinity.New(session, cfg), cfg).Update(runeKey('m'))
	if !next.(Model).BackToMenu() {
		t.Error("m should request the level picker")
	}
}

func TestModelMouseDrag(t *testing.T) {
	session := newTestSession(t, 3)
	cfg := core.DefaultConfig()
	m := NewModel(context.Background(), affinity.New(session, cfg), cfg)

	m.View()
	row, track := -1, -1
	for y := 0; y < m.screen.Height(); y++ {
		if !strings.Contains(m.screen.Row(y), "s = 1.0") {
			continue
		}
		row = y
		for x, r := range []rune(m.screen.Row(y)) {
			if r == '─' {
				track = x
				break
			}
		}
		break
	}
	if row < 0 || track < 0 {
		t.Fatal("scale slider track not found on screen")
	}

	press := tea.MouseMsg{X: track, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	next := update(t, m, press)
	if got := session.Params().S; got != affine.ScaleMin {
		t.Errorf("s = %v after clicking the track start, expected %v", got, affine.ScaleMin)
	}

	drag := tea.MouseMsg{X: track + cfg.SliderWidth - 1, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}
	next = update(t, next, drag)
	if got := session.Params().S; got != affine.ScaleMax {
		t.Errorf("s = %v after dragging to the end, expected %v", got, affine.ScaleMax)
	}

	release := tea.MouseMsg{X: track, Y: row, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	update(t, next, release, drag)
	if m.game.Dragging() {
		t.Error("release should stop dragging")
	}
}

func TestModelDragStaysOnGrabbedSlider(t *testing.T) {
	session := newTestSession(t, 3)
	cfg := core.DefaultConfig()
	m := NewModel(context.Background(), affinity.New(session, cfg), cfg)

	m.View()
	row, track := -1, -1
	for y := 0; y < m.screen.Height(); y++ {
		if !strings.Contains(m.screen.Row(y), "s = 1.0") {
			continue
		}
		row = y
		track = strings.IndexRune(m.screen.Row(y), '─')
		track = len([]rune(m.screen.Row(y)[:track]))
		break
	}
	if row < 0 || track < 0 {
		t.Fatal("scale slider track not found on screen")
	}
	seven := strings.Index(m.screen.Row(1), " 7")
	if seven < 0 {
		t.Fatalf("level 7 label not found on row 1: %q", m.screen.Row(1))
	}
	seven = len([]rune(m.screen.Row(1)[:seven])) + 1

	tests := []struct {
		name  string
		msg   tea.MouseMsg
		wantS float64
	}{
		{"press inside track", tea.MouseMsg{X: track + 5, Y: row, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}, -1},
		{"overshoot right end", tea.MouseMsg{X: track + cfg.SliderWidth + 3, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, affine.ScaleMax},
		{"over level strip", tea.MouseMsg{X: seven, Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, -1},
		{"overshoot left end", tea.MouseMsg{X: 0, Y: row, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft}, affine.ScaleMin},
	}

	var next tea.Model = m
	for _, tt := range tests {
		next = update(t, next, tt.msg)
		next.View()
		if session.Level() != 3 {
			t.Fatalf("%s: level = %d, dragging must not navigate", tt.name, session.Level())
		}
		if tt.wantS >= 0 && session.Params().S != tt.wantS {
			t.Errorf("%s: s = %v, expected %v", tt.name, session.Params().S, tt.wantS)
		}
	}
	if !m.game.Dragging() {
		t.Error("slider should stay grabbed until release")
	}
}

func TestModelResizeKeepsState(t *testing.T) {
	session := newTestSession(t, 1)
	cfg := core.DefaultConfig()
	m := NewModel(context.Background(), affinity.New(session, cfg), cfg)

	next := update(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.WindowSizeMsg{Width: 120, Height: 50})
	if session.Params().TX != 1 {
		t.Error("resize should keep session state")
	}
	if got := next.(Model).Config(); got.ScreenW != 120 || got.ScreenH != 50 {
		t.Errorf("config = %+v after resize", got)
	}
	if !strings.Contains(next.View(), "AffineAffinity") {
		t.Error("view should render after resize")
	}
}

func TestSessionModelFlow(t *testing.T) {
	session := newTestSession(t, 1)
	cfg := core.DefaultConfig()

	var m tea.Model = NewSessionModel(context.Background(), session, cfg, true)
	if m.(SessionModel).InGame() {
		t.Fatal("session should start in the menu")
	}
	if !strings.Contains(m.View(), "Pick a level") {
		t.Error("menu view expected")
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.(SessionModel).InGame() {
		t.Fatal("enter should open the level")
	}
	if session.Level() != 3 {
		t.Errorf("level = %d, expected 3", session.Level())
	}

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.(SessionModel).InGame() {
		t.Error("esc should return to the menu")
	}

	m, cmd := m.Update(runeKey('q'))
	if cmd == nil || m.View() != "" {
		t.Error("q in the menu should quit")
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(4, 2)
	s.DrawTextColor(0, 0, "ab", core.ColorTX)
	s.DrawText(0, 1, "cd")

	out := RenderScreen(s)
	if !strings.Contains(out, "ab") || !strings.Contains(out, "cd") {
		t.Errorf("RenderScreen lost text: %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("RenderScreen should join rows with newlines: %q", out)
	}
}
