package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/registry"
	"github.com/vovakirdan/affine-affinity/internal/render"
)

var (
	flagFormat string
	flagKind   string
	flagOutput string
)

var renderCmd = &cobra.Command{
	Use:   "render <level>",
	Short: "Export a goal or live image",
	Long: `Render Scotty for a level. The goal image uses the level's target
transform; the live image uses the profile's saved slider values.

Formats:
  svg  - vector image
  png  - raster image
  txt  - terminal art

Examples:
  affinity render 1
  affinity render 9 --format png -o goal9.png
  affinity render 4 --kind live --profile alice --format txt`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

func init() {
	renderCmd.Flags().StringVarP(&flagFormat, "format", "f", "svg", "Image format: "+formatNames())
	renderCmd.Flags().StringVar(&flagKind, "kind", "goal", "Image kind: goal or live")
	renderCmd.Flags().StringVarP(&flagOutput, "output", "o", "-", "Output file (- for stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	level, err := parseLevel(args[0])
	if err != nil {
		return err
	}
	kind, err := registry.ParseKind(flagKind)
	if err != nil {
		return err
	}
	renderer, err := registry.Create(flagFormat, renderOptions())
	if err != nil {
		return fmt.Errorf("%w (available: %s)", err, formatNames())
	}

	var scene registry.Scene
	if kind == registry.KindGoal {
		scene, err = render.GoalScene(level)
		if err != nil {
			return err
		}
	} else {
		session, closeStore, err := openSession(ctx, loggerFromContext(ctx), level)
		if err != nil {
			return err
		}
		defer closeStore()
		scene = render.SceneFor(kind, session.Snapshot())
	}

	var w io.Writer = os.Stdout
	if flagOutput != "-" {
		f, err := os.Create(flagOutput)
		if err != nil {
			return fmt.Errorf("cannot create %s: %w", flagOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := renderer.Render(w, scene); err != nil {
		return err
	}
	if flagOutput != "-" {
		loggerFromContext(ctx).Info("image written", "file", flagOutput, "format", renderer.Format(), "kind", kind)
	}
	return nil
}

func formatNames() string {
	infos := registry.List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Format
	}
	return strings.Join(names, ", ")
}
