// Package config loads tradepost settings from viper.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/market"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/viper"
)

// Viper keys.
const (
	KeyBaseURL   = "api.base_url"
	KeyTimeout   = "api.timeout"
	KeyExportDir = "export.dir"
	KeyTab       = "ui.tab"
	KeyQuality   = "ui.quality"
	KeyRange     = "ui.range"
	KeyRole      = "ui.role"
	KeyGrade     = "ui.grade"
)

// API configures the backend client.
type API struct {
	BaseURL string
	Timeout time.Duration
}

// Export configures CSV export downloads.
type Export struct {
	Dir string
}

// UI holds the dashboard start-up selections.
type UI struct {
	Role    model.Role
	Grade   model.Grade
	Range   model.TimeRange
	Tab     model.Kind
	Quality model.QualityTier
}

// Config is the full application configuration.
type Config struct {
	Export Export
	API    API
	UI     UI
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API: API{
			BaseURL: market.DefaultBaseURL,
			Timeout: market.RequestTimeout,
		},
		Export: Export{Dir: "."},
		UI: UI{
			Tab:     model.KindAccessory,
			Role:    model.RoleDealer,
			Grade:   model.GradeAncient,
			Range:   model.DefaultTimeRange,
			Quality: model.DefaultQualityTier,
		},
	}
}

// Load reads configuration from viper (config file, TRADEPOST_ env vars, bound
// flags) on top of the defaults and validates it.
func Load() (*Config, error) {
	cfg := Default()

	if v := viper.GetString(KeyBaseURL); v != "" {
		cfg.API.BaseURL = strings.TrimRight(v, "/")
	}
	if viper.IsSet(KeyTimeout) {
		cfg.API.Timeout = viper.GetDuration(KeyTimeout)
	}
	if v := viper.GetString(KeyExportDir); v != "" {
		cfg.Export.Dir = ExpandPath(v)
	}

	var err error
	if v := viper.GetString(KeyTab); v != "" {
		if cfg.UI.Tab, err = model.ParseKind(v); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyTab, err)
		}
	}
	if v := viper.GetString(KeyQuality); v != "" {
		if cfg.UI.Quality, err = model.ParseQualityTier(v); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyQuality, err)
		}
	}
	if v := viper.GetString(KeyRange); v != "" {
		if cfg.UI.Range, err = model.ParseTimeRange(v); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", common.ErrInvalidConfig, KeyRange, err)
		}
	}
	if v := viper.GetString(KeyRole); v != "" {
		cfg.UI.Role = model.Role(v)
	}
	if v := viper.GetString(KeyGrade); v != "" {
		cfg.UI.Grade = model.Grade(v)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot check while parsing.
func (c Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("%w: %s is empty", common.ErrMissingConfig, KeyBaseURL)
	}
	if !strings.HasPrefix(c.API.BaseURL, "http://") && !strings.HasPrefix(c.API.BaseURL, "https://") {
		return fmt.Errorf("%w: %s must be an http(s) URL, got %q", common.ErrInvalidConfig, KeyBaseURL, c.API.BaseURL)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: %s must be positive", common.ErrInvalidConfig, KeyTimeout)
	}
	if c.UI.Role != model.RoleDealer && c.UI.Role != model.RoleSupport {
		return fmt.Errorf("%w: %s must be dealer or support, got %q", common.ErrInvalidConfig, KeyRole, c.UI.Role)
	}
	if c.UI.Grade != model.GradeAncient && c.UI.Grade != model.GradeRelic {
		return fmt.Errorf("%w: %s must be 고대 or 유물, got %q", common.ErrInvalidConfig, KeyGrade, c.UI.Grade)
	}
	return nil
}

// Dir returns the tradepost config directory, ~/.config/tradepost.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".tradepost")
	}
	return filepath.Join(home, ".config", "tradepost")
}

// ExpandPath expands a leading ~ and environment variables in a path.
func ExpandPath(path string) string {
	switch {
	case path == "~" || strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}
	return os.ExpandEnv(path)
}
