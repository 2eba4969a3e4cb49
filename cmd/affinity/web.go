package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/affine-affinity/internal/web"
)

var flagHTTPAddr string

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Start the HTTP API",
	Long: `Start an HTTP server exposing the levels as JSON and images.

Every browser gets a profile cookie; progress lives in the configured store.
The PORT environment variable sets the listen port.

Endpoints:
  GET  /api/levels
  GET  /api/level/{level}
  PUT  /api/level/{level}/params
  POST /api/level/{level}/slider
  POST /api/level/{level}/reset
  POST /api/reset-all
  GET  /level/{level}/{goal|live}.{svg|png|txt}

Examples:
  affinity web
  affinity web --http :9000 --store redis`,
	Args: cobra.NoArgs,
	RunE: runWeb,
}

func init() {
	webCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "HTTP server address (host:port)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx).WithPrefix("web")

	wc := appConfig.Web
	cfg := web.ServerConfig{
		Address:        wc.Address,
		ReadTimeout:    wc.ReadTimeout,
		WriteTimeout:   wc.WriteTimeout,
		RequestTimeout: wc.RequestTimeout,
		Handler: web.Options{
			CookieName:   wc.CookieName,
			CookieMaxAge: wc.CookieMaxAge,
			Render:       renderOptions(),
		},
	}
	if flagHTTPAddr != "" {
		cfg.Address = flagHTTPAddr
	}

	store, err := openProvider(ctx)
	if err != nil {
		return err
	}

	server := web.NewServer(cfg, store, logger)
	fmt.Printf("Listening on http://localhost%s\n", server.Addr())
	return server.ListenAndServe(ctx)
}
