// affinity is a terminal tutorial on 2D affine transformations: ten levels
// where the player warps Scotty the dog to match a goal image.
//
// Usage:
//
//	affinity play [level]    - Play, starting at a level (default: first unsolved)
//	affinity menu            - Pick a level interactively
//	affinity levels          - List the levels and their controls
//	affinity progress        - Show saved progress
//	affinity reset           - Reset progress
//	affinity check <level>   - Check parameters against a level's goal
//	affinity render <level>  - Export the goal or live image
//	affinity serve           - Start the SSH server for remote play
//	affinity web             - Start the HTTP API
//
// Global flags:
//
//	--store <kind>    - sqlite, gdata, redis or memory
//	--db <path>       - SQLite database path (default: ~/.affinity/progress.db)
//	--redis <addr>    - Redis address
//	--profile <name>  - Player profile (default: local)
//	--config <path>   - Config file
//	--verbose         - Debug logging
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/affine-affinity/internal/config"
	"github.com/vovakirdan/affine-affinity/internal/core"
	"github.com/vovakirdan/affine-affinity/internal/progress"
	"github.com/vovakirdan/affine-affinity/internal/registry"
	"github.com/vovakirdan/affine-affinity/internal/storage"

	// Register image renderers
	_ "github.com/vovakirdan/affine-affinity/internal/render"
)

var (
	// Global flags
	flagStore   string
	flagDBPath  string
	flagRedis   string
	flagProfile string
	flagConfig  string
	flagVerbose bool

	appConfig config.Config
)

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "affinity",
	Short: "Affine Affinity - learn 2D affine transformations in your terminal",
	Long: `Affine Affinity teaches translation, scaling and shearing in ten levels.
Move the sliders until Scotty matches the goal image, then go to the next level.

Available commands:
  play      - Play a level directly
  menu      - Interactive level picker
  levels    - Show all levels
  progress  - Show saved progress
  reset     - Reset progress
  check     - Check parameters against a level's goal
  render    - Export goal or live images (svg, png, txt)
  serve     - Start SSH server for remote play
  web       - Start the HTTP API

Examples:
  affinity play
  affinity play 5
  affinity menu --profile alice
  affinity render 7 --format svg -o level7.svg
  affinity serve --ssh :2222
  affinity web --store redis --redis localhost:6379`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", "", "Progress store: sqlite, gdata, redis or memory")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the progress database")
	rootCmd.PersistentFlags().StringVar(&flagRedis, "redis", "", "Redis address (host:port)")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Player profile")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
}

// setup loads the configuration, applies flag overrides and attaches the logger.
func setup(cmd *cobra.Command, _ []string) error {
	level := log.InfoLevel
	if flagVerbose {
		level = log.DebugLevel
	}
	logger := newLogger(os.Stderr, level)
	cmd.SetContext(withLogger(cmd.Context(), logger))

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	config.ApplyEnv(&cfg)

	if flagStore != "" {
		cfg.Storage.Backend = flagStore
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagRedis != "" {
		cfg.Storage.RedisAddr = flagRedis
	}
	if flagProfile != "" {
		cfg.Storage.Profile = flagProfile
	}
	if cfg.Storage.Profile == "" {
		cfg.Storage.Profile = "local"
	}

	appConfig = cfg
	logger.Debug("configuration loaded", "store", cfg.Storage.Backend, "profile", cfg.Storage.Profile)
	return nil
}

// openProvider opens the configured progress store.
func openProvider(ctx context.Context) (storage.Provider, error) {
	sc := appConfig.Storage
	return storage.OpenProvider(ctx, storage.Options{
		Kind:        sc.Backend,
		DBPath:      sc.DBPath,
		RedisAddr:   sc.RedisAddr,
		RedisPrefix: sc.RedisPrefix,
		AppName:     sc.AppName,
	})
}

// openSession opens the store and loads the configured profile positioned on
// level. When the store cannot be opened the session runs in memory only.
// The returned close function releases the store.
func openSession(ctx context.Context, logger *log.Logger, level int) (*progress.Session, func(), error) {
	closeStore := func() {}
	var backend progress.Backend

	store, err := openProvider(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress store: %v\n", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved.")
	} else {
		backend = store.Profile(appConfig.Storage.Profile)
		closeStore = func() {
			if cerr := store.Close(); cerr != nil {
				loggerFromContext(ctx).Warn("cannot close progress store", "error", cerr)
			}
		}
	}

	session, err := progress.NewSession(ctx, backend, logger, level)
	if err != nil {
		closeStore()
		return nil, nil, err
	}
	return session, closeStore, nil
}

// runtimeConfig builds the terminal layout from the config and the current
// terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	tc := appConfig.TUI
	if tc.SliderWidth > 0 {
		cfg.SliderWidth = tc.SliderWidth
	}
	if tc.CoarseStep > 0 {
		cfg.CoarseStep = tc.CoarseStep
	}
	if tc.ImageWidth > 0 {
		cfg.ImageW = tc.ImageWidth
	}
	if tc.ImageHeight > 0 {
		cfg.ImageH = tc.ImageHeight
	}
	return cfg
}

// renderOptions maps the render config onto renderer options.
func renderOptions() registry.Options {
	rc := appConfig.Render
	return registry.Options{
		Size:       rc.Size,
		Background: rc.Background,
		Body:       rc.Body,
		Accent:     rc.Accent,
		Ghost:      rc.Ghost,
	}
}
