package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session starting in the level picker.
The SSH user name is the profile, so progress is kept between visits.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.affinity/host_key

Examples:
  affinity serve                           # Listen on :23234 with auto-generated key
  affinity serve --ssh :2222               # Listen on port 2222
  affinity serve --host-key ./my_host_key  # Use specific host key
  affinity serve --store redis             # Share progress through Redis

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle time before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx).WithPrefix("ssh")

	cfg := tui.DefaultSSHServerConfig()
	cfg.Runtime = runtimeConfig()
	sc := appConfig.SSH
	if sc.Address != "" {
		cfg.Address = sc.Address
	}
	cfg.HostKeyPath = sc.HostKeyPath
	if sc.IdleTimeout > 0 {
		cfg.IdleTimeout = sc.IdleTimeout
	}
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = flagIdleTimeout
	}

	store, err := openProvider(ctx)
	if err != nil {
		return err
	}

	server, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		store.Close()
		return err
	}

	fmt.Printf("Starting Affine Affinity SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe(ctx)
}
