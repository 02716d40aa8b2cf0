package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/config"
	"github.com/Veraticus/tradepost/internal/tui"
	"github.com/Veraticus/tradepost/internal/tui/themes"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func dashCmd() *cobra.Command {
	var (
		theme    string
		fullHelp bool
	)

	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive price dashboard",
		Long: `Open the accessory and bracelet dashboards. Pick a role or grade, filter the
pattern list, toggle patterns with space to compare their prices, and press e to
export the collected market data.

Start-up selections come from the ui.* config keys.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, cfg, err := initClient()
			if err != nil {
				return err
			}

			// Log lines on stderr would draw over the alternate screen.
			if viper.GetString("logging.file") == "" {
				if err := logToConfigDir(); err != nil {
					return err
				}
			}

			exportDir := cfg.Export.Dir
			return tui.Run(cmd.Context(),
				tui.WithFetcher(client),
				tui.WithExporter(func(ctx context.Context) (string, error) {
					return client.ExportData(ctx, nil, exportDir, nil)
				}),
				tui.WithTheme(themes.GetTheme(theme)),
				tui.WithTab(cfg.UI.Tab),
				tui.WithSelections(cfg.UI.Role, cfg.UI.Grade, cfg.UI.Range, cfg.UI.Quality),
				tui.WithFullHelp(fullHelp),
			)
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "default", "color theme (default, catppuccin-mocha)")
	cmd.Flags().BoolVar(&fullHelp, "keys", false, "start with the full key help shown")

	return cmd
}

// logToConfigDir sends logs to ~/.config/tradepost/tradepost.log.
func logToConfigDir() error {
	dir := config.Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "tradepost.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	return common.SetupLogger(f, level, viper.GetString("logging.format"))
}
