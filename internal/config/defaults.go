package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/affinity.yaml
var defaultAffinityYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			Backend:     "sqlite",
			DBPath:      "~/.affinity/progress.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "affinity",
			AppName:     "affine_affinity",
			Profile:     "local",
		},
		SSH: SSHConfig{
			Address:     ":23234",
			IdleTimeout: 30 * time.Minute,
		},
		Web: WebConfig{
			Address:        ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			RequestTimeout: 15 * time.Second,
			CookieName:     "affinity_profile",
			CookieMaxAge:   365 * 24 * time.Hour,
		},
		TUI: TUIConfig{
			SliderWidth: 41,
			CoarseStep:  10,
			ImageWidth:  36,
			ImageHeight: 18,
		},
		Render: RenderConfig{
			Size:       236,
			Background: "#ffffff",
			Body:       "#3f3f3f",
			Accent:     "#ff4040",
			Ghost:      "#bebebe",
		},
	}
}
