package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/cli"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/cobra"
)

func chartCmd() *cobra.Command {
	var (
		keys    []string
		all     bool
		quality string
		out     string
		title   string
		width   int
		height  int
	)

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Render selected patterns as a PNG line chart",
		Long: `Render the price history of the selected patterns as one line per pattern,
coloured in selection order. Gaps are bridged between neighbouring prices.

Example:
  tradepost chart --key k1 --key k2 --range 1m --out trend.png`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := parseSelection(cmd)
			if err != nil {
				return err
			}
			tier, err := model.ParseQualityTier(quality)
			if err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidArgument)
			}

			client, _, err := initClient()
			if err != nil {
				return err
			}
			catalog, series, err := loadAll(cmd.Context(), client, sel)
			if err != nil {
				return err
			}
			selected, err := resolveKeys(keys, all, series)
			if err != nil {
				return err
			}

			if title == "" {
				title = fmt.Sprintf("가격 추이 (%s)", sel.timeRange.Label())
			}

			// Render into memory so a failed render leaves no partial file.
			var buf bytes.Buffer
			table := chart.Align(series, selected, tier)
			if err := chart.RenderPNG(&buf, table, catalog, chart.RenderOptions{
				Title: title, Width: width, Height: height, Selection: selected,
			}); err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("failed to write chart: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Wrote %s (%d patterns)", out, len(table.Keys))))
			return nil
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringArrayVar(&keys, "key", nil, "pattern key to include (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "include every pattern with price history")
	cmd.Flags().StringVar(&quality, "quality", model.DefaultQualityTier.Key(), "accessory quality tier (60, 70, 80, 90)")
	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "PNG file to write")
	cmd.Flags().StringVar(&title, "title", "", "chart title")
	cmd.Flags().IntVar(&width, "width", chart.DefaultWidth, "image width in pixels")
	cmd.Flags().IntVar(&height, "height", chart.DefaultHeight, "image height in pixels")

	return cmd
}
