package main

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/config"
	"github.com/Veraticus/tradepost/internal/market"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// initClient loads the configuration and builds an API client from it.
func initClient() (*market.Client, *config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return market.NewClient(cfg.API.BaseURL, market.WithTimeout(cfg.API.Timeout)), cfg, nil
}

// selection is the pattern group a command works on.
type selection struct {
	role      model.Role
	grade     model.Grade
	timeRange model.TimeRange
	kind      model.Kind
}

// addSelectionFlags registers --kind, --role, --grade and --range.
func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("kind", "accessory", "pattern kind (accessory, bracelet)")
	cmd.Flags().String("role", string(model.RoleDealer), "accessory role (dealer, support)")
	cmd.Flags().String("grade", string(model.GradeAncient), "bracelet grade (고대, 유물)")
	cmd.Flags().String("range", string(model.DefaultTimeRange), "time range (1d, 1w, 1m, 3m)")
}

func parseSelection(cmd *cobra.Command) (selection, error) {
	kindFlag, _ := cmd.Flags().GetString("kind")
	roleFlag, _ := cmd.Flags().GetString("role")
	gradeFlag, _ := cmd.Flags().GetString("grade")
	rangeFlag, _ := cmd.Flags().GetString("range")

	var sel selection
	var err error
	if sel.kind, err = model.ParseKind(kindFlag); err != nil {
		return selection{}, common.NewUserError(err.Error(), common.ErrInvalidArgument)
	}
	if sel.timeRange, err = model.ParseTimeRange(rangeFlag); err != nil {
		return selection{}, common.NewUserError(err.Error(), common.ErrInvalidArgument)
	}

	switch model.Role(roleFlag) {
	case model.RoleDealer, model.RoleSupport:
		sel.role = model.Role(roleFlag)
	default:
		return selection{}, common.NewUserError(fmt.Sprintf("invalid role %q (want dealer or support)", roleFlag), common.ErrInvalidArgument)
	}

	switch model.Grade(gradeFlag) {
	case model.GradeAncient, model.GradeRelic:
		sel.grade = model.Grade(gradeFlag)
	default:
		return selection{}, common.NewUserError(fmt.Sprintf("invalid grade %q (want 고대 or 유물)", gradeFlag), common.ErrInvalidArgument)
	}

	return sel, nil
}

// loadCatalog fetches the pattern catalog of the selection.
func loadCatalog(ctx context.Context, client *market.Client, sel selection) (model.Catalog, error) {
	if sel.kind == model.KindBracelet {
		return client.GetBraceletPatterns(ctx, market.BraceletQuery{Grade: sel.grade})
	}
	roles, err := client.GetAllPatterns(ctx)
	if err != nil {
		return nil, err
	}
	return roles.ForRole(sel.role), nil
}

// loadSeries fetches the price history of the selection.
func loadSeries(ctx context.Context, client *market.Client, sel selection) (model.SeriesSet, error) {
	if sel.kind == model.KindBracelet {
		return client.GetBraceletTrends(ctx, market.BraceletQuery{Grade: sel.grade, TimeRange: sel.timeRange})
	}
	return client.GetPriceTrends(ctx, market.TrendQuery{Role: sel.role, TimeRange: sel.timeRange})
}

// loadAll fetches catalog and series concurrently.
func loadAll(ctx context.Context, client *market.Client, sel selection) (model.Catalog, model.SeriesSet, error) {
	var (
		catalog model.Catalog
		series  model.SeriesSet
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, err = loadCatalog(gctx, client, sel)
		if err != nil {
			return fmt.Errorf("load patterns: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		series, err = loadSeries(gctx, client, sel)
		if err != nil {
			return fmt.Errorf("load price trends: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return catalog, series, nil
}

// resolveKeys returns the requested keys, or every series key in sorted order
// when all is set.
func resolveKeys(keys []string, all bool, series model.SeriesSet) ([]string, error) {
	if all {
		return sortedKeys(series), nil
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			out = append(out, k)
		}
	}
	if len(out) == 0 {
		return nil, common.NewUserError("no pattern keys given; pass --key or --all", common.ErrEmptySelection)
	}
	return out, nil
}

func sortedKeys(series model.SeriesSet) []string {
	keys := make([]string, 0, len(series))
	for k := range series {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
