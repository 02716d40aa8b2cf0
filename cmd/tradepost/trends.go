package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/cli"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/cobra"
)

// Output formats of the trends command.
const (
	formatTable = "table"
	formatCSV   = "csv"
	formatJSON  = "json"
	formatXLSX  = "xlsx"
)

func trendsCmd() *cobra.Command {
	var (
		keys    []string
		all     bool
		quality string
		format  string
		out     string
		tail    int
	)

	cmd := &cobra.Command{
		Use:   "trends",
		Short: "Show aligned price history of selected patterns",
		Long: `Fetch price history for a role or grade and show the selected patterns on a
shared timeline. Each row is one timestamp; a pattern without a price at that
timestamp leaves its cell empty.

Examples:
  tradepost trends --key "고대:목걸이:3:추피 상 + 적주피 중" --range 1w
  tradepost trends --all --quality 70 --format csv --out prices.csv
  tradepost trends --kind bracelet --grade 유물 --all --format xlsx --out bracelets.xlsx`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := parseSelection(cmd)
			if err != nil {
				return err
			}
			tier, err := model.ParseQualityTier(quality)
			if err != nil {
				return common.NewUserError(err.Error(), common.ErrInvalidArgument)
			}
			format = strings.ToLower(format)
			switch format {
			case formatTable, formatCSV, formatJSON:
			case formatXLSX:
				if out == "" {
					return common.NewUserError("--format xlsx needs --out", common.ErrInvalidArgument)
				}
			default:
				return common.NewUserError(fmt.Sprintf("invalid format %q (want table, csv, json or xlsx)", format), common.ErrInvalidArgument)
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

			table := chart.Align(series, selected, tier)
			if table.Empty() {
				return common.NewUserError("none of the selected patterns has price data in this range", common.ErrEmptySelection)
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("failed to create output file: %w", err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}

			switch format {
			case formatCSV:
				err = chart.WriteCSV(w, table, catalog)
			case formatXLSX:
				err = chart.WriteXLSX(w, table, catalog)
			case formatJSON:
				err = writeTrendsJSON(w, table)
			default:
				writeTrendsTable(w, table, catalog, tail)
			}
			if err != nil {
				return err
			}
			if out != "" {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Wrote "+out))
			}
			return nil
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringArrayVar(&keys, "key", nil, "pattern key to include (repeatable)")
	cmd.Flags().BoolVar(&all, "all", false, "include every pattern with price history")
	cmd.Flags().StringVar(&quality, "quality", model.DefaultQualityTier.Key(), "accessory quality tier (60, 70, 80, 90)")
	cmd.Flags().StringVar(&format, "format", formatTable, "output format (table, csv, json, xlsx)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	cmd.Flags().IntVar(&tail, "tail", 20, "table format: show only the newest N rows (0 = all)")

	return cmd
}

func writeTrendsTable(w io.Writer, table *chart.AlignedTable, catalog model.Catalog, tail int) {
	headers := make([]string, 0, len(table.Keys)+1)
	headers = append(headers, "시간")
	rightAlign := make([]int, 0, len(table.Keys))
	for i, key := range table.Keys {
		headers = append(headers, chart.Label(catalog, key))
		rightAlign = append(rightAlign, i+1)
	}

	rows := table.Rows
	if tail > 0 && len(rows) > tail {
		rows = rows[len(rows)-tail:]
	}
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		r := make([]string, 0, len(table.Keys)+1)
		r = append(r, time.UnixMilli(row.Timestamp).Format("01-02 15:04"))
		for _, key := range table.Keys {
			if c, ok := row.Cell(key); ok {
				r = append(r, chart.FormatGold(c.Value))
			} else {
				r = append(r, "")
			}
		}
		out = append(out, r)
	}

	fmt.Fprintln(w, cli.RenderTable(headers, out, rightAlign...))

	palette := chart.NewPalette(table.Keys)
	for _, key := range table.Keys {
		label := cli.SubtleStyle.Render(chart.Label(catalog, key))
		fmt.Fprintf(w, "%s\n  %s\n", label, chart.Sparkline(table, key))
	}

	last := table.Rows[len(table.Rows)-1]
	fmt.Fprintln(w)
	fmt.Fprintln(w, chart.RenderTooltip(last.Timestamp, chart.FormatTooltip(last, catalog), palette))
}

type trendRowJSON struct {
	Values    map[string]float64 `json:"values"`
	Timestamp int64              `json:"timestamp"`
}

func writeTrendsJSON(w io.Writer, table *chart.AlignedTable) error {
	rows := make([]trendRowJSON, 0, len(table.Rows))
	for _, row := range table.Rows {
		values := make(map[string]float64, len(row.Cells))
		for key, c := range row.Cells {
			values[key] = c.Value
		}
		rows = append(rows, trendRowJSON{Timestamp: row.Timestamp, Values: values})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Keys []string       `json:"keys"`
		Rows []trendRowJSON `json:"rows"`
	}{Keys: table.Keys, Rows: rows})
}
