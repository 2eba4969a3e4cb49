package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/platform/tui"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/storage"
)

var flagBoard bool

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all levels",
	Long:  `Shows every level with its mode, its sliders and the goal transform.`,
	Args:  cobra.NoArgs,
	Run:   runLevels,
}

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show saved progress",
	Long: `Display the solved levels and saved slider values of a profile.

With --board, browse every profile of the store in an interactive table.

Examples:
  affinity progress
  affinity progress --profile alice
  affinity progress --board`,
	Args: cobra.NoArgs,
	RunE: runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagBoard, "board", false, "Browse all profiles interactively")
}

func runLevels(_ *cobra.Command, _ []string) {
	fmt.Println("Levels:")
	fmt.Println()
	fmt.Printf("  %-5s  %-9s  %-14s  %s\n", "Level", "Mode", "Sliders", "Goal")
	fmt.Printf("  %-5s  %-9s  %-14s  %s\n", "-----", "----", "-------", "----")

	for lv := 1; lv <= affine.LevelCount; lv++ {
		goal, _ := affine.GoalTransform(lv)
		fmt.Printf("  %-5d  %-9s  %-14s  %s\n", lv, affine.ModeFor(lv), fieldNames(affine.ControlsFor(lv)), goal.CSS())
	}

	fmt.Println()
	fmt.Println("Run 'affinity play <level>' to play a level.")
}

func runProgress(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagBoard {
		profiles, err := profileNames(ctx, store)
		if err != nil {
			return err
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunBoard(ctx, store, profiles, width, height)
	}

	profile := appConfig.Storage.Profile
	session, err := progress.NewSession(ctx, store.Profile(profile), loggerFromContext(ctx), 1)
	if err != nil {
		return err
	}

	solved := session.SolvedLevels()
	fmt.Printf("Progress - %s (%d/%d solved)\n", profile, len(solved), affine.LevelCount)
	fmt.Println()
	fmt.Printf("  %-5s  %-6s  %s\n", "Level", "Solved", "Sliders")
	fmt.Printf("  %-5s  %-6s  %s\n", "-----", "------", "-------")

	for _, st := range session.Levels() {
		mark := "•"
		if st.Solved {
			mark = "✓"
		}
		fmt.Printf("  %-5d  %-6s  %s\n", st.Level, mark, formatControls(st.Level, st.Params))
	}

	if session.AllSolved() {
		fmt.Println()
		fmt.Println("All levels solved. Congrats!")
	}
	return nil
}

// profileNames lists the profiles of store. Stores that cannot enumerate
// players show only the configured profile.
func profileNames(ctx context.Context, store storage.Provider) ([]string, error) {
	lister, ok := store.(interface {
		Profiles(context.Context) ([]storage.ProfileInfo, error)
	})
	if !ok {
		return []string{appConfig.Storage.Profile}, nil
	}

	infos, err := lister.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	if len(infos) == 0 {
		return []string{appConfig.Storage.Profile}, nil
	}
	names := make([]string, 0, len(infos))
	for _, p := range infos {
		names = append(names, p.Name)
	}
	return names, nil
}

func fieldNames(fields []affine.Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, " ")
}

// formatControls renders the slider values of level, e.g. "tx=20 ty=-5".
func formatControls(level int, p affine.Params) string {
	fields := affine.ControlsFor(level)
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = fmt.Sprintf("%s=%g", f, f.Get(p))
	}
	return strings.Join(parts, " ")
}
