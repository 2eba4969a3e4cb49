// Package config provides YAML-based configuration loading for the
// AffineAffinity hosts: storage, SSH and HTTP servers, terminal layout and
// image rendering.
package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	SSH     SSHConfig     `yaml:"ssh"`
	Web     WebConfig     `yaml:"web"`
	TUI     TUIConfig     `yaml:"tui"`
	Render  RenderConfig  `yaml:"render"`
}

// StorageConfig selects where player progress lives.
type StorageConfig struct {
	Backend     string `yaml:"backend"` // "sqlite", "gdata", "redis" or "memory"
	DBPath      string `yaml:"db_path"`
	RedisAddr   string `yaml:"redis_addr"`
	RedisPrefix string `yaml:"redis_prefix"`
	AppName     string `yaml:"app_name"` // gdata application directory
	Profile     string `yaml:"profile"`  // local player name
}

// SSHConfig configures the remote terminal server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKeyPath string        `yaml:"host_key_path"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// WebConfig configures the HTTP server.
type WebConfig struct {
	Address        string        `yaml:"address"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	CookieName     string        `yaml:"cookie_name"`
	CookieMaxAge   time.Duration `yaml:"cookie_max_age"`
}

// TUIConfig controls the terminal layout.
type TUIConfig struct {
	SliderWidth int `yaml:"slider_width"`
	CoarseStep  int `yaml:"coarse_step"` // notches moved with shift+arrow
	ImageWidth  int `yaml:"image_width"` // cells per mascot image
	ImageHeight int `yaml:"image_height"`
}

// RenderConfig controls exported images.
type RenderConfig struct {
	Size       int    `yaml:"size"` // pixels per side of the image box
	Background string `yaml:"background"`
	Body       string `yaml:"body"`
	Accent     string `yaml:"accent"`
	Ghost      string `yaml:"ghost"` // outline of the untransformed mascot
}
