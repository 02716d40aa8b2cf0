package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/cli"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/cobra"
)

func patternsCmd() *cobra.Command {
	var (
		args   catalog.FilterArgs
		sortBy string
		limit  int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "List patterns matching a filter",
		Long: `List the pattern catalog of one role (accessories) or grade (bracelets),
filtered and sorted the way the dashboard list is.

Examples:
  tradepost patterns --role support --part 목걸이 --level 3
  tradepost patterns --kind bracelet --grade 유물 --fixed 2 --stat 치명 --sort samples`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sel, err := parseSelection(cmd)
			if err != nil {
				return err
			}
			if sel.kind == model.KindAccessory && cmd.Flags().Changed("grade") {
				args.Grade = string(sel.grade)
			}
			filter, err := catalog.ParseFilter(args)
			if err != nil {
				return common.NewUserError(err.Error(), err)
			}

			client, _, err := initClient()
			if err != nil {
				return err
			}
			c, err := loadCatalog(cmd.Context(), client, sel)
			if err != nil {
				return fmt.Errorf("failed to load patterns: %w", err)
			}

			entries := catalog.FilterAndSort(c, filter, catalog.ParseSortKey(sortBy))
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}

			if asJSON {
				return writePatternsJSON(cmd.OutOrStdout(), entries)
			}
			writePatternsTable(cmd.OutOrStdout(), sel.kind, entries)
			return nil
		},
	}

	addSelectionFlags(cmd)
	cmd.Flags().StringVar(&args.Part, "part", "", "accessory part (목걸이, 귀걸이, 반지)")
	cmd.Flags().StringVar(&args.Level, "level", "", "accessory enhancement level (0-3)")
	cmd.Flags().StringVar(&args.Fixed, "fixed", "", "bracelet fixed option count (1, 2)")
	cmd.Flags().StringVar(&args.Extra, "extra", "", "bracelet extra option count")
	cmd.Flags().StringVar(&args.Stat, "stat", "", "bracelet combat stat (특화, 치명, 신속)")
	cmd.Flags().StringVar(&sortBy, "sort", string(catalog.SortPrice), "sort key (price, samples)")
	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many patterns (0 = all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")

	return cmd
}

func writePatternsTable(w io.Writer, kind model.Kind, entries []catalog.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, cli.FormatInfo("No patterns match the filter."))
		return
	}

	headers := []string{"#", "부위", "연마", "패턴", "가격", "샘플", "key"}
	if kind == model.KindBracelet {
		headers = []string{"#", "종류", "옵션", "고정/부여", "가격", "샘플", "key"}
	}

	rows := make([][]string, 0, len(entries))
	for i, e := range entries {
		price := chart.FormatGold(e.Record.Price())
		samples := chart.FormatCount(e.Record.SampleCount())
		if kind == model.KindBracelet {
			counts := ""
			if fixed, ok := e.Record.FixedOptionCount(); ok {
				extra, _ := e.Record.ExtraOptionCount()
				counts = fmt.Sprintf("%d/%d", fixed, extra)
			}
			rows = append(rows, []string{strconv.Itoa(i + 1), e.Record.PartOrType(), e.Record.Description(), counts, price, samples, e.Key})
			continue
		}
		rows = append(rows, []string{strconv.Itoa(i + 1), e.Record.PartOrType(), strconv.Itoa(e.Record.Level()), e.Record.Description(), price, samples, e.Key})
	}

	fmt.Fprintln(w, cli.RenderTable(headers, rows, 0, 4, 5))
	fmt.Fprintln(w, cli.SubtleStyle.Render(fmt.Sprintf("%d patterns", len(entries))))
}

type patternJSON struct {
	Key         string  `json:"key"`
	Label       string  `json:"label"`
	Price       float64 `json:"price"`
	SampleCount float64 `json:"sample_count"`
}

func writePatternsJSON(w io.Writer, entries []catalog.Entry) error {
	out := make([]patternJSON, 0, len(entries))
	for _, e := range entries {
		out = append(out, patternJSON{
			Key:         e.Key,
			Label:       e.Record.Label(),
			Price:       e.Record.Price(),
			SampleCount: e.Record.SampleCount(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
