package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const configFile = "affinity.yaml"

// Load loads the application configuration.
// Search order: customPath -> ~/.affinity/configs/affinity.yaml -> ./configs/affinity.yaml -> embedded default
// Files are applied on top of the built-in defaults, so partial files are fine.
func Load(customPath string) (Config, error) {
	cfg := DefaultConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(configFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
			cfg = DefaultConfig()
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", configFile)); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			return cfg, nil
		}
		cfg = DefaultConfig()
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultAffinityYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ApplyEnv overrides configuration from the environment.
// PORT sets the web listen port and AFFINITY_STORE the storage backend.
func ApplyEnv(cfg *Config) {
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.Web.Address = ":" + port
	}
	if store := strings.TrimSpace(os.Getenv("AFFINITY_STORE")); store != "" {
		cfg.Storage.Backend = store
	}
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".affinity", "configs", filename)
}

// DataDir returns ~/.affinity, or ".affinity" when home is unavailable.
func DataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".affinity"
	}
	return filepath.Join(home, ".affinity")
}
