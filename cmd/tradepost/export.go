package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/Veraticus/tradepost/internal/cli"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func exportCmd() *cobra.Command {
	var (
		dir    string
		params []string
		quiet  bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the market data CSV export",
		Long: `Download the backend's CSV export into a timestamped file,
market-data-<UTC time>.csv, in the export directory.

Examples:
  tradepost export
  tradepost export --dir ~/exports --param grade=고대`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			query, err := parseParams(params)
			if err != nil {
				return err
			}

			client, cfg, err := initClient()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.Export.Dir
			}
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return fmt.Errorf("failed to create export directory: %w", err)
			}

			var bar *progressbar.ProgressBar
			if !quiet {
				bar = progressbar.NewOptions64(-1,
					progressbar.OptionSetWriter(cmd.ErrOrStderr()),
					progressbar.OptionEnableColorCodes(true),
					progressbar.OptionShowBytes(true),
					progressbar.OptionSetWidth(40),
					progressbar.OptionSpinnerType(14),
					progressbar.OptionSetDescription("[cyan]Downloading export...[reset]"),
					progressbar.OptionClearOnFinish(),
				)
			}

			var path string
			if bar != nil {
				path, err = client.ExportData(cmd.Context(), query, dir, bar)
				_ = bar.Finish()
			} else {
				path, err = client.ExportData(cmd.Context(), query, dir, nil)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Exported market data to "+path))
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "directory to write into (default export.dir)")
	cmd.Flags().StringArrayVar(&params, "param", nil, "query parameter key=value passed to the export endpoint (repeatable)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "hide the progress bar")

	return cmd
}

// parseParams turns key=value pairs into a query map.
func parseParams(pairs []string) (map[string]string, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, common.NewUserError(fmt.Sprintf("invalid --param %q (want key=value)", pair), common.ErrInvalidArgument)
		}
		out[strings.TrimSpace(k)] = v
	}
	return out, nil
}
