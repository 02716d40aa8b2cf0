// Package market is the HTTP client for the trading-post backend API.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/go-resty/resty/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultBaseURL is the backend address used when none is configured.
	DefaultBaseURL = "http://localhost:8000/api"
	// RequestTimeout bounds every request. Requests are attempted once.
	RequestTimeout = 10 * time.Second
)

// Endpoint paths relative to the base URL.
const (
	pathPriceTrends      = "/price-trends"
	pathAllPatterns      = "/all-patterns"
	pathPatternDetails   = "/all-patterns/{key}"
	pathBraceletTrends   = "/bracelet-trends"
	pathBraceletPatterns = "/bracelet-patterns"
	pathExport           = "/export"
)

// Client issues typed GET requests against the backend and unwraps response bodies.
type Client struct {
	http     *resty.Client
	now      func() time.Time
	inflight singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http.SetTimeout(d)
	}
}

// WithClock sets the clock used to name export files.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// NewClient creates a client for the API rooted at baseURL (e.g. http://host:8000/api).
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(RequestTimeout).
		SetHeader("Content-Type", "application/json")

	c := &Client{
		http: client,
		now:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured API root.
func (c *Client) BaseURL() string {
	return c.http.BaseURL
}

// TrendQuery selects accessory price trends. Zero values are not sent.
type TrendQuery struct {
	Role      model.Role
	Grade     model.Grade
	Part      model.Part
	TimeRange model.TimeRange
}

func (q TrendQuery) params() map[string]string {
	p := map[string]string{"time_range": string(rangeOrDefault(q.TimeRange))}
	if q.Role != "" {
		p["role"] = string(q.Role)
	}
	if q.Grade != "" {
		p["grade"] = string(q.Grade)
	}
	if q.Part != "" {
		p["part"] = string(q.Part)
	}
	return p
}

// BraceletQuery selects bracelet trends or patterns. Zero values are not sent;
// TimeRange is ignored by GetBraceletPatterns.
type BraceletQuery struct {
	Grade     model.Grade
	TimeRange model.TimeRange
}

func rangeOrDefault(r model.TimeRange) model.TimeRange {
	if r == "" {
		return model.DefaultTimeRange
	}
	return r
}

// GetPriceTrends fetches accessory price series keyed by pattern key.
func (c *Client) GetPriceTrends(ctx context.Context, q TrendQuery) (model.SeriesSet, error) {
	var raw map[string][]model.AccessoryPoint
	if err := c.getJSON(ctx, pathPriceTrends, q.params(), nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch price trends: %w", err)
	}
	return accessorySeries(raw), nil
}

// GetAllPatterns fetches the accessory catalog partitioned by role.
func (c *Client) GetAllPatterns(ctx context.Context) (model.RoleCatalog, error) {
	var raw struct {
		Dealer  map[string]model.AccessoryPattern `json:"dealer"`
		Support map[string]model.AccessoryPattern `json:"support"`
	}
	if err := c.getJSON(ctx, pathAllPatterns, nil, nil, &raw); err != nil {
		return model.RoleCatalog{}, fmt.Errorf("failed to fetch all patterns: %w", err)
	}
	return model.RoleCatalog{
		Dealer:  accessoryCatalog(raw.Dealer),
		Support: accessoryCatalog(raw.Support),
	}, nil
}

// GetPatternDetails fetches the price series of a single accessory pattern.
func (c *Client) GetPatternDetails(ctx context.Context, key string, timeRange model.TimeRange) (model.PriceSeries, error) {
	var raw []model.AccessoryPoint
	params := map[string]string{"time_range": string(rangeOrDefault(timeRange))}
	if err := c.getJSON(ctx, pathPatternDetails, params, map[string]string{"key": key}, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch pattern details for %q: %w", key, err)
	}
	series := make(model.PriceSeries, 0, len(raw))
	for _, p := range raw {
		series = append(series, model.NewAccessoryPoint(p))
	}
	return series, nil
}

// GetBraceletTrends fetches bracelet price series keyed by pattern key.
func (c *Client) GetBraceletTrends(ctx context.Context, q BraceletQuery) (model.SeriesSet, error) {
	params := map[string]string{"time_range": string(rangeOrDefault(q.TimeRange))}
	if q.Grade != "" {
		params["grade"] = string(q.Grade)
	}

	var raw map[string][]model.BraceletPoint
	if err := c.getJSON(ctx, pathBraceletTrends, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch bracelet trends: %w", err)
	}

	set := make(model.SeriesSet, len(raw))
	for key, points := range raw {
		series := make(model.PriceSeries, 0, len(points))
		for _, p := range points {
			series = append(series, model.NewBraceletPoint(p))
		}
		set[key] = series
	}
	return set, nil
}

// GetBraceletPatterns fetches the flat bracelet catalog.
func (c *Client) GetBraceletPatterns(ctx context.Context, q BraceletQuery) (model.Catalog, error) {
	params := map[string]string{}
	if q.Grade != "" {
		params["grade"] = string(q.Grade)
	}

	var raw map[string]model.BraceletPattern
	if err := c.getJSON(ctx, pathBraceletPatterns, params, nil, &raw); err != nil {
		return nil, fmt.Errorf("failed to fetch bracelet patterns: %w", err)
	}

	catalog := make(model.Catalog, len(raw))
	for key, p := range raw {
		catalog[key] = model.NewBraceletRecord(p)
	}
	return catalog, nil
}

// ExportFileName returns the download name for an export taken at t.
func ExportFileName(t time.Time) string {
	return fmt.Sprintf("market-data-%s.csv", t.UTC().Format("20060102T150405.000Z"))
}

// ExportData streams the CSV export into a new file in dir and returns its path.
// When progress is non-nil it observes every byte written.
func (c *Client) ExportData(ctx context.Context, params map[string]string, dir string, progress io.Writer) (string, error) {
	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetDoNotParseResponse(true).
		Get(pathExport)
	if err != nil {
		return "", fmt.Errorf("failed to export data: %w", common.NewRequestFailure(0, "", err))
	}
	body := resp.RawBody()
	defer func() { _ = body.Close() }()

	slog.Debug("API request", "endpoint", pathExport, "status", resp.StatusCode(), "duration", time.Since(start))

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		data, _ := io.ReadAll(io.LimitReader(body, 64<<10))
		return "", fmt.Errorf("failed to export data: %w", failureFromBody(resp.StatusCode(), data))
	}

	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, ExportFileName(c.now()))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}

	var w io.Writer = f
	if progress != nil {
		w = io.MultiWriter(f, progress)
	}
	if _, err := io.Copy(w, body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write export file: %w", common.NewRequestFailure(0, "", err))
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to close export file: %w", err)
	}

	return path, nil
}

// getJSON issues a GET and decodes a 2xx body into dst. Identical requests in
// flight at the same time share one round trip, run under the first caller's ctx.
func (c *Client) getJSON(ctx context.Context, path string, query, pathParams map[string]string, dst any) error {
	v, err, shared := c.inflight.Do(requestKey(path, query, pathParams), func() (any, error) {
		return c.get(ctx, path, query, pathParams)
	})
	if err != nil {
		return err
	}
	if shared {
		slog.Debug("API request shared", "endpoint", path)
	}

	resp := v.(response)
	if err := json.Unmarshal(resp.body, dst); err != nil {
		return common.NewRequestFailure(resp.status, "malformed response body", err)
	}
	return nil
}

// response is a successful GET body, shared between deduplicated callers.
type response struct {
	body   []byte
	status int
}

func (c *Client) get(ctx context.Context, path string, query, pathParams map[string]string) (response, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}

	resp, err := req.Get(path)
	if err != nil {
		slog.Debug("API request failed", "endpoint", path, "error", err)
		return response{}, common.NewRequestFailure(0, "", err)
	}

	slog.Debug("API request",
		"endpoint", path,
		"status", resp.StatusCode(),
		"duration", resp.Time())

	if resp.StatusCode() < 200 || resp.StatusCode() > 299 {
		return response{}, failureFromBody(resp.StatusCode(), resp.Body())
	}
	return response{body: resp.Body(), status: resp.StatusCode()}, nil
}

// requestKey identifies a GET by path and sorted parameters.
func requestKey(path string, query, pathParams map[string]string) string {
	var b strings.Builder
	b.WriteString(path)
	for _, params := range []map[string]string{pathParams, query} {
		b.WriteByte('?')
		for _, k := range slices.Sorted(maps.Keys(params)) {
			b.WriteString(url.QueryEscape(k) + "=" + url.QueryEscape(params[k]) + "&")
		}
	}
	return b.String()
}

// failureFromBody extracts a FastAPI-style {"detail": "..."} message when present.
func failureFromBody(status int, body []byte) error {
	var payload struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &payload)
	return common.NewRequestFailure(status, payload.Detail, nil)
}

func accessorySeries(raw map[string][]model.AccessoryPoint) model.SeriesSet {
	set := make(model.SeriesSet, len(raw))
	for key, points := range raw {
		series := make(model.PriceSeries, 0, len(points))
		for _, p := range points {
			series = append(series, model.NewAccessoryPoint(p))
		}
		set[key] = series
	}
	return set
}

func accessoryCatalog(raw map[string]model.AccessoryPattern) model.Catalog {
	catalog := make(model.Catalog, len(raw))
	for key, p := range raw {
		catalog[key] = model.NewAccessoryRecord(p)
	}
	return catalog
}
