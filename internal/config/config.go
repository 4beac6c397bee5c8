// Package config loads the CLI configuration from global, local, and
// environment sources.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Configuration holds the dynaform CLI settings.
type Configuration struct {
	Renderer      string `koanf:"renderer" validate:"required"`
	Theme         string `koanf:"theme"`
	ThemeVariant  string `koanf:"theme_variant"`
	OutputPath    string `koanf:"output_path" validate:"required"`
	SubmissionOut string `koanf:"submission_out" validate:"required"`
	AllowHTTP     bool   `koanf:"allow_http"`
	HTTPTimeout   int    `koanf:"http_timeout" validate:"omitempty,min=1,max=300"`
	WatchDebounce int    `koanf:"watch_debounce_ms" validate:"omitempty,min=10,max=10000"`
}

// Load loads configuration from global, local, and environment sources.
// Priority: environment variables > local config > global config > defaults.
func Load(localConfigPath string) (*Configuration, error) {
	k := koanf.New(".")

	for key, value := range GetDefaults() {
		k.Set(key, value)
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		globalPath := filepath.Join(homeDir, ".dynaform", "config.json")
		if _, err := os.Stat(globalPath); err == nil {
			if err := k.Load(file.Provider(globalPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load global config: %w", err)
			}
		}
	}

	if localConfigPath != "" {
		if _, err := os.Stat(localConfigPath); err == nil {
			if err := k.Load(file.Provider(localConfigPath), json.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load local config: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider("DYNAFORM_", ".", envTransform), nil); err != nil {
		return nil, fmt.Errorf("failed to load env config: %w", err)
	}

	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	cfg.OutputPath = expandHomePath(cfg.OutputPath)
	cfg.SubmissionOut = expandHomePath(cfg.SubmissionOut)

	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: DYNAFORM_THEME_VARIANT -> theme_variant.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "DYNAFORM_"))
}

// expandHomePath expands ~ to the user's home directory.
func expandHomePath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(homeDir, path[2:])
		}
	}
	return path
}
