package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/affine"
	"github.com/vovakirdan/affine-affinity/internal/progress"
)

var errNotSolved = errors.New("parameters do not match the goal")

var (
	flagTX, flagTY, flagS, flagG, flagH float64
	flagSave                            bool
)

var checkCmd = &cobra.Command{
	Use:   "check <level>",
	Short: "Check parameters against a level's goal",
	Long: `Check whether the given slider values solve a level. Unset values keep
their identity value (0, or 1 for s). Values are clamped to the slider ranges.
Exits non-zero when the level is not solved.

With --save, the values are stored in the profile as if entered in the game.

Examples:
  affinity check 1 --tx 20 --ty 20
  affinity check 7 --g 25 --h 10 --save`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Float64Var(&flagTX, "tx", 0, "Horizontal translation")
	checkCmd.Flags().Float64Var(&flagTY, "ty", 0, "Vertical translation")
	checkCmd.Flags().Float64Var(&flagS, "s", 1, "Scale")
	checkCmd.Flags().Float64Var(&flagG, "g", 0, "Horizontal shear")
	checkCmd.Flags().Float64Var(&flagH, "h", 0, "Vertical shear")
	checkCmd.Flags().BoolVar(&flagSave, "save", false, "Store the values in the profile")
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}

	p := affine.Params{TX: flagTX, TY: flagTY, S: flagS, G: flagG, H: flagH}.Clamped()
	live := affine.ToVisualTransform(level, p)
	goal, _ := affine.GoalTransform(level)

	fmt.Printf("Level %d (%s)\n", level, affine.ModeFor(level))
	fmt.Printf("  live: %s\n", live.CSS())
	fmt.Printf("  goal: %s\n", goal.CSS())

	if flagSave {
		store, err := openProvider(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		session, err := progress.NewSession(ctx, store.Profile(appConfig.Storage.Profile), loggerFromContext(ctx), level)
		if err != nil {
			return err
		}
		if err := session.SetParams(ctx, p); err != nil {
			return err
		}
	}

	if !affine.IsSolved(level, p) {
		return fmt.Errorf("level %d: %w", level, errNotSolved)
	}
	fmt.Println("Solved!")
	return nil
}
