package main

import (
	"fmt"
	"time"

	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/cli"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/cobra"
)

func detailCmd() *cobra.Command {
	var timeRange string

	cmd := &cobra.Command{
		Use:   "detail KEY",
		Short: "Show the price history of one accessory pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tr, err := model.ParseTimeRange(timeRange)
			if err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidArgument)
			}

			client, _, err := initClient()
			if err != nil {
				return err
			}
			points, err := client.GetPatternDetails(cmd.Context(), args[0], tr)
			if err != nil {
				return fmt.Errorf("failed to load pattern %s: %w", args[0], err)
			}

			w := cmd.OutOrStdout()
			if len(points) == 0 {
				fmt.Fprintln(w, cli.FormatInfo("No price history in this range."))
				return nil
			}

			headers := []string{"시간", "60+", "70+", "80+", "90+", "샘플"}
			rows := make([][]string, 0, len(points))
			for _, p := range points {
				row := []string{time.UnixMilli(p.Timestamp()).Format("01-02 15:04")}
				var prices model.QualityPrices
				if p.Accessory != nil {
					prices = p.Accessory.QualityPrices
				}
				for _, tier := range model.QualityTiers {
					row = append(row, goldOrBlank(prices.Price(tier)))
				}
				row = append(row, chart.FormatCount(p.SampleCount()))
				rows = append(rows, row)
			}

			fmt.Fprintln(w, cli.FormatTitle(args[0]))
			fmt.Fprintln(w, cli.RenderTable(headers, rows, 1, 2, 3, 4, 5))
			return nil
		},
	}

	cmd.Flags().StringVar(&timeRange, "range", string(model.DefaultTimeRange), "time range (1d, 1w, 1m, 3m)")

	return cmd
}

func goldOrBlank(v float64) string {
	if v <= 0 {
		return ""
	}
	return chart.FormatGold(v)
}
