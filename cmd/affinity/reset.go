package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/progress"
)

var flagResetLevel int

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset saved progress",
	Long: `Clear the solved levels and slider values of a profile.

With --level, only that level's sliders go back to the identity values;
its solved mark is kept.

Examples:
  affinity reset
  affinity reset --level 3
  affinity reset --profile alice`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().IntVar(&flagResetLevel, "level", 0, "Reset only this level's sliders")
}

func runReset(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	store, err := openProvider(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	profile := appConfig.Storage.Profile
	start := 1
	if flagResetLevel != 0 {
		start = flagResetLevel
	}
	session, err := progress.NewSession(ctx, store.Profile(profile), logger, start)
	if err != nil {
		return err
	}

	if flagResetLevel != 0 {
		if err := session.ResetLevel(ctx); err != nil {
			return err
		}
		fmt.Printf("Level %d of %s reset.\n", flagResetLevel, profile)
		return nil
	}

	if err := session.ResetAll(ctx); err != nil {
		return err
	}
	fmt.Printf("Progress of %s reset.\n", profile)
	return nil
}
