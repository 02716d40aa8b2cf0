// Package dashboard holds the state machines behind the accessory and bracelet
// dashboards: filters, selection, fetched snapshots and their derived views.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/market"
	"github.com/Veraticus/tradepost/internal/model"
	"golang.org/x/sync/errgroup"
)

// Fetcher is the subset of the API client the dashboards need.
type Fetcher interface {
	GetPriceTrends(ctx context.Context, q market.TrendQuery) (model.SeriesSet, error)
	GetAllPatterns(ctx context.Context) (model.RoleCatalog, error)
	GetBraceletTrends(ctx context.Context, q market.BraceletQuery) (model.SeriesSet, error)
	GetBraceletPatterns(ctx context.Context, q market.BraceletQuery) (model.Catalog, error)
}

// Slot identifies an independently fetched piece of state.
type Slot int

// Fetch slots.
const (
	SlotCatalog Slot = iota
	SlotSeries
)

func (s Slot) String() string {
	if s == SlotCatalog {
		return "catalog"
	}
	return "series"
}

// Request is a pending fetch produced by a transition. Its zero value fetches nothing.
type Request struct {
	role        model.Role
	grade       model.Grade
	timeRange   model.TimeRange
	catalogGen  uint64
	seriesGen   uint64
	wantCatalog bool
	wantSeries  bool
}

// Empty reports whether the request fetches nothing.
func (r Request) Empty() bool {
	return !r.wantCatalog && !r.wantSeries
}

// Wants reports whether the request fetches slot.
func (r Request) Wants(slot Slot) bool {
	if slot == SlotCatalog {
		return r.wantCatalog
	}
	return r.wantSeries
}

// Controller owns one dashboard's state. It is safe for concurrent use: transitions
// run on the UI goroutine while Fetch runs in the background.
type Controller struct {
	fetcher Fetcher
	memo    chart.Memo
	state   State
	mu      sync.Mutex
	// latest generation issued per slot
	issued [2]uint64
	// bumped whenever the series snapshot is replaced
	seriesVersion uint64
}

// Option configures a Controller.
type Option func(*State)

// WithRole sets the initial accessory role.
func WithRole(role model.Role) Option {
	return func(s *State) { s.Role = role }
}

// WithGrade sets the initial bracelet grade.
func WithGrade(grade model.Grade) Option {
	return func(s *State) { s.Grade = grade }
}

// WithTimeRange sets the initial time range.
func WithTimeRange(r model.TimeRange) Option {
	return func(s *State) { s.TimeRange = r }
}

// WithQualityTier sets the initial accessory quality tier.
func WithQualityTier(q model.QualityTier) Option {
	return func(s *State) { s.Quality = q }
}

// WithFilter sets the initial list filter.
func WithFilter(f catalog.Filter) Option {
	return func(s *State) { s.Filter = f }
}

// WithSort sets the initial list sort key.
func WithSort(k catalog.SortKey) Option {
	return func(s *State) { s.Sort = k }
}

// NewAccessory creates the accessory dashboard controller (default role dealer).
func NewAccessory(f Fetcher, opts ...Option) *Controller {
	return newController(f, State{
		Kind:      model.KindAccessory,
		Role:      model.RoleDealer,
		TimeRange: model.DefaultTimeRange,
		Quality:   model.DefaultQualityTier,
		Sort:      catalog.SortPrice,
	}, opts)
}

// NewBracelet creates the bracelet dashboard controller (default grade 고대).
func NewBracelet(f Fetcher, opts ...Option) *Controller {
	return newController(f, State{
		Kind:      model.KindBracelet,
		Grade:     model.GradeAncient,
		TimeRange: model.DefaultTimeRange,
		Quality:   model.DefaultQualityTier,
		Sort:      catalog.SortPrice,
	}, opts)
}

func newController(f Fetcher, initial State, opts []Option) *Controller {
	for _, opt := range opts {
		opt(&initial)
	}
	return &Controller{fetcher: f, state: initial}
}

// Kind returns the dashboard kind.
func (c *Controller) Kind() model.Kind {
	return c.state.Kind
}

// State returns a copy of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Selection = slices.Clone(c.state.Selection)
	return s
}

// Reload requests both slots with the current filters.
func (c *Controller) Reload() Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.issue(true, true)
}

// SetRole switches the accessory role, clearing the selection.
func (c *Controller) SetRole(role model.Role) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Role = role
	c.state.Selection = nil
	return c.issue(true, true)
}

// SetGrade switches the bracelet grade, clearing the selection. An extra-count
// filter the new grade does not offer is dropped.
func (c *Controller) SetGrade(grade model.Grade) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Grade = grade
	c.state.Selection = nil
	if n := c.state.Filter.ExtraCount; n != nil && !slices.Contains(catalog.ExtraCountOptions(grade), *n) {
		c.state.Filter.ExtraCount = nil
	}
	return c.issue(true, true)
}

// SetTimeRange switches the time range. Only the series is refetched.
func (c *Controller) SetTimeRange(r model.TimeRange) Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.TimeRange = r
	return c.issue(false, true)
}

// SetQualityTier changes the accessory tier the chart reads. No refetch.
func (c *Controller) SetQualityTier(q model.QualityTier) {
	c.mu.Lock()
	c.state.Quality = q
	c.mu.Unlock()
}

// SetFilter replaces the list filter. No refetch.
func (c *Controller) SetFilter(f catalog.Filter) {
	c.mu.Lock()
	c.state.Filter = f
	c.mu.Unlock()
}

// SetSort replaces the list sort key. No refetch.
func (c *Controller) SetSort(k catalog.SortKey) {
	c.mu.Lock()
	c.state.Sort = k
	c.mu.Unlock()
}

// Toggle adds key to the selection or removes it. Reports whether key is now selected.
func (c *Controller) Toggle(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if i := slices.Index(c.state.Selection, key); i >= 0 {
		c.state.Selection = slices.Delete(c.state.Selection, i, i+1)
		return false
	}
	c.state.Selection = append(c.state.Selection, key)
	return true
}

// Selected reports whether key is in the selection.
func (c *Controller) Selected(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Contains(c.state.Selection, key)
}

// ClearSelection empties the selection, which hides the chart.
func (c *Controller) ClearSelection() {
	c.mu.Lock()
	c.state.Selection = nil
	c.mu.Unlock()
}

// ChartVisible reports whether a chart should be shown.
func (c *Controller) ChartVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.state.Selection) > 0
}

// issue stamps a request with fresh generations for the wanted slots. c.mu must be held.
func (c *Controller) issue(wantCatalog, wantSeries bool) Request {
	req := Request{
		role:        c.state.Role,
		grade:       c.state.Grade,
		timeRange:   c.state.TimeRange,
		wantCatalog: wantCatalog,
		wantSeries:  wantSeries,
	}
	if wantCatalog {
		c.issued[SlotCatalog]++
		req.catalogGen = c.issued[SlotCatalog]
		c.state.LoadingCatalog = true
	}
	if wantSeries {
		c.issued[SlotSeries]++
		req.seriesGen = c.issued[SlotSeries]
		c.state.LoadingSeries = true
	}
	return req
}

// Fetch runs the request's fetches concurrently and commits both results together
// once every wanted slot has resolved. Each slot is applied on its own: a failed
// slot keeps its previous snapshot and records the error in State; a response
// older than the latest request for its slot is discarded. The returned error
// joins the failures of both slots.
func (c *Controller) Fetch(ctx context.Context, req Request) error {
	if req.Empty() {
		return nil
	}

	var (
		g        errgroup.Group
		patterns catalogResult
		trends   seriesResult
	)

	if req.wantCatalog {
		g.Go(func() error {
			patterns = c.loadCatalog(ctx, req)
			return nil
		})
	}
	if req.wantSeries {
		g.Go(func() error {
			trends = c.loadSeries(ctx, req)
			return nil
		})
	}
	_ = g.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()

	var catalogErr, seriesErr error
	if req.wantCatalog {
		catalogErr = c.applyCatalog(req, patterns)
	}
	if req.wantSeries {
		seriesErr = c.applySeries(req, trends)
	}
	return errors.Join(catalogErr, seriesErr)
}

type catalogResult struct {
	roles model.RoleCatalog
	flat  model.Catalog
	err   error
}

type seriesResult struct {
	series model.SeriesSet
	err    error
}

func (c *Controller) loadCatalog(ctx context.Context, req Request) catalogResult {
	var r catalogResult
	if c.Kind() == model.KindAccessory {
		r.roles, r.err = c.fetcher.GetAllPatterns(ctx)
	} else {
		r.flat, r.err = c.fetcher.GetBraceletPatterns(ctx, market.BraceletQuery{Grade: req.grade})
	}
	return r
}

func (c *Controller) loadSeries(ctx context.Context, req Request) seriesResult {
	var r seriesResult
	if c.Kind() == model.KindAccessory {
		r.series, r.err = c.fetcher.GetPriceTrends(ctx, market.TrendQuery{Role: req.role, TimeRange: req.timeRange})
	} else {
		r.series, r.err = c.fetcher.GetBraceletTrends(ctx, market.BraceletQuery{Grade: req.grade, TimeRange: req.timeRange})
	}
	return r
}

// applyCatalog commits a catalog result. c.mu must be held.
func (c *Controller) applyCatalog(req Request, r catalogResult) error {
	if c.stale(SlotCatalog, req.catalogGen) {
		return nil
	}
	c.state.LoadingCatalog = false
	if r.err != nil {
		c.state.CatalogErr = r.err
		slog.Warn("Failed to load patterns", "kind", c.state.Kind, "error", r.err)
		return fmt.Errorf("load patterns: %w", r.err)
	}

	c.state.CatalogErr = nil
	if c.state.Kind == model.KindAccessory {
		c.state.Roles = r.roles
	} else {
		c.state.Bracelets = r.flat
	}
	slog.Debug("Patterns loaded", "kind", c.state.Kind, "generation", req.catalogGen)
	return nil
}

// applySeries commits a series result. c.mu must be held.
func (c *Controller) applySeries(req Request, r seriesResult) error {
	if c.stale(SlotSeries, req.seriesGen) {
		return nil
	}
	c.state.LoadingSeries = false
	if r.err != nil {
		c.state.SeriesErr = r.err
		slog.Warn("Failed to load price trends", "kind", c.state.Kind, "error", r.err)
		return fmt.Errorf("load price trends: %w", r.err)
	}

	c.state.SeriesErr = nil
	c.state.Series = r.series
	c.seriesVersion++
	slog.Debug("Price trends loaded",
		"kind", c.state.Kind,
		"generation", req.seriesGen,
		"series", len(r.series),
		"points", r.series.PointCount())
	return nil
}

// stale reports whether gen is older than the latest issued for slot. c.mu must be held.
func (c *Controller) stale(slot Slot, gen uint64) bool {
	if gen < c.issued[slot] {
		slog.Debug("Discarding stale response", "slot", slot, "generation", gen, "latest", c.issued[slot])
		return true
	}
	return false
}

// Catalog returns the catalog the list panel shows: the current role's accessory
// catalog or the bracelet catalog.
func (c *Controller) Catalog() model.Catalog {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.catalogLocked()
}

func (c *Controller) catalogLocked() model.Catalog {
	if c.state.Kind == model.KindAccessory {
		return c.state.Roles.ForRole(c.state.Role)
	}
	return c.state.Bracelets
}

// Patterns returns the filtered, sorted list panel entries. The bracelet list
// only shows records of the selected grade.
func (c *Controller) Patterns() []catalog.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	f := c.state.Filter
	if c.state.Kind == model.KindBracelet {
		f.Grade = c.state.Grade
	}
	return catalog.FilterAndSort(c.catalogLocked(), f, c.state.Sort)
}

// Table returns the aligned chart table for the current selection.
func (c *Controller) Table() *chart.AlignedTable {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.memo.Align(c.seriesVersion, c.state.Series, c.state.Selection, c.state.Quality)
}

// Tooltip returns the tooltip blocks of one table row; nil when out of range.
func (c *Controller) Tooltip(row int) []chart.TooltipBlock {
	table := c.Table()
	if row < 0 || row >= len(table.Rows) {
		return nil
	}
	return chart.FormatTooltip(table.Rows[row], c.Catalog())
}
