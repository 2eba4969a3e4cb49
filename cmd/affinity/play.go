package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/platform/tui"
	"github.com/vovakirdan/affine-affinity/internal/progress"
)

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play a level",
	Long: `Open the level screen. Without a level, play starts at the first
unsolved level.

Controls:
  Up/Down        - Focus slider
  Left/Right     - Adjust slider (Shift = coarse)
  [ / ]          - Previous / next level
  Enter/N        - Next level once solved
  1-9, 0         - Jump to level
  R              - Reset level
  Shift+R        - Reset all progress (after all levels are solved)
  Esc/M          - Level picker
  ?              - Help
  Q/Ctrl+C       - Quit

The mouse can click and drag on slider tracks.

Examples:
  affinity play
  affinity play 4
  affinity play --profile alice --store gdata`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the level picker",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter or a digit to pick a level.
Esc on the level screen returns to the picker.

Examples:
  affinity menu
  affinity menu --db ./progress.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runPlay(cmd *cobra.Command, args []string) error {
	level := 0
	if len(args) == 1 {
		lv, err := parseLevel(args[0])
		if err != nil {
			return err
		}
		level = lv
	}
	return runTUI(cmd, level, false)
}

func runMenu(cmd *cobra.Command, _ []string) error {
	return runTUI(cmd, 0, true)
}

// runTUI opens the player's session and hands the terminal to Bubble Tea.
// A zero level starts on the first unsolved one.
func runTUI(cmd *cobra.Command, level int, inMenu bool) error {
	ctx := cmd.Context()
	start := level
	if start == 0 {
		start = 1
	}

	session, closeStore, err := openSession(ctx, quietLogger(), start)
	if err != nil {
		return err
	}
	defer closeStore()

	if level == 0 {
		if lv := firstUnsolved(session); lv != start {
			if err := session.GoTo(ctx, lv); err != nil {
				return err
			}
		}
	}

	loggerFromContext(ctx).Debug("starting", "profile", appConfig.Storage.Profile, "level", session.Level())
	return tui.Run(ctx, session, runtimeConfig(), inMenu)
}

// firstUnsolved returns the lowest unsolved level, or 1 when all are solved.
func firstUnsolved(session *progress.Session) int {
	for lv := 1; lv <= affine.LevelCount; lv++ {
		if !session.Solved(lv) {
			return lv
		}
	}
	return 1
}

// parseLevel parses a level argument.
func parseLevel(s string) (int, error) {
	lv, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid level %q: want a number from 1 to %d", s, affine.LevelCount)
	}
	if !affine.ValidLevel(lv) {
		return 0, fmt.Errorf("level %d: %w", lv, progress.ErrLevelNotFound)
	}
	return lv, nil
}
