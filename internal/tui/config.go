package tui

import (
	"context"

	"github.com/Veraticus/tradepost/internal/dashboard"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/Veraticus/tradepost/internal/tui/themes"
)

// Exporter downloads a CSV export and returns the written path.
type Exporter func(ctx context.Context) (string, error)

// Config holds TUI configuration.
type Config struct {
	Theme    themes.Theme
	Fetcher  dashboard.Fetcher
	Exporter Exporter
	Role     model.Role
	Grade    model.Grade
	Range    model.TimeRange
	Width    int
	Height   int
	Quality  model.QualityTier
	Tab      model.Kind
	ShowHelp bool
}

// Option is a functional option for configuring the TUI.
type Option func(*Config)

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		Theme:   themes.Default,
		Tab:     model.KindAccessory,
		Role:    model.RoleDealer,
		Grade:   model.GradeAncient,
		Range:   model.DefaultTimeRange,
		Quality: model.DefaultQualityTier,
		Width:   120,
		Height:  40,
	}
}

// WithFetcher sets the API client both dashboards fetch through.
func WithFetcher(f dashboard.Fetcher) Option {
	return func(c *Config) {
		c.Fetcher = f
	}
}

// WithExporter enables the export key.
func WithExporter(e Exporter) Option {
	return func(c *Config) {
		c.Exporter = e
	}
}

// WithTheme sets the visual theme.
func WithTheme(theme themes.Theme) Option {
	return func(c *Config) {
		c.Theme = theme
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(c *Config) {
		c.Width = width
		c.Height = height
	}
}

// WithTab selects the dashboard shown first.
func WithTab(kind model.Kind) Option {
	return func(c *Config) {
		c.Tab = kind
	}
}

// WithSelections sets the initial role, grade, time range and quality tier.
func WithSelections(role model.Role, grade model.Grade, r model.TimeRange, q model.QualityTier) Option {
	return func(c *Config) {
		c.Role = role
		c.Grade = grade
		c.Range = r
		c.Quality = q
	}
}

// WithFullHelp starts with the full key help expanded.
func WithFullHelp(show bool) Option {
	return func(c *Config) {
		c.ShowHelp = show
	}
}
