package chart

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/model"
	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// PNG dimensions used when RenderOptions leaves them zero.
const (
	DefaultWidth  = 1200
	DefaultHeight = 600
)

// RenderOptions control PNG rendering.
type RenderOptions struct {
	Title  string
	Width  int
	Height int
	// Selection assigns line colours by position, matching the dashboard palette.
	// When empty the table's own key order is used.
	Selection []string
}

// Label returns the legend label of key, falling back to the key itself.
func Label(catalog model.Catalog, key string) string {
	if rec, ok := catalog[key]; ok {
		return rec.Label()
	}
	return key
}

// RenderPNG draws one line per table column. Gaps are bridged by connecting the
// neighbouring points of the same key.
func RenderPNG(w io.Writer, table *AlignedTable, catalog model.Catalog, opts RenderOptions) error {
	if table.Empty() {
		return common.ErrEmptySelection
	}
	if opts.Width == 0 {
		opts.Width = DefaultWidth
	}
	if opts.Height == 0 {
		opts.Height = DefaultHeight
	}

	ch := gochart.Chart{
		Title:      opts.Title,
		Width:      opts.Width,
		Height:     opts.Height,
		Background: gochart.Style{Padding: gochart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: gochart.XAxis{
			ValueFormatter: gochart.TimeValueFormatterWithFormat("01-02 15:04"),
		},
		YAxis: gochart.YAxis{
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return printer.Sprintf("%d", int64(f))
				}
				return ""
			},
		},
		Series: lineSeries(table, catalog, opts.Selection),
	}
	ch.Elements = []gochart.Renderable{gochart.Legend(&ch)}

	if err := ch.Render(gochart.PNG, w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// lineSeries builds one time series per table column, coloured by the key's
// position in selection.
func lineSeries(table *AlignedTable, catalog model.Catalog, selection []string) []gochart.Series {
	if len(selection) == 0 {
		selection = table.Keys
	}
	palette := NewPalette(selection)

	series := make([]gochart.Series, 0, len(table.Keys))
	for _, key := range table.Keys {
		timestamps, values := table.Column(key)
		xs := make([]time.Time, 0, len(timestamps)+1)
		for _, ts := range timestamps {
			xs = append(xs, time.UnixMilli(ts))
		}
		// go-chart needs at least two points to draw a range
		if len(xs) == 1 {
			xs = append(xs, xs[0].Add(time.Minute))
			values = append(values, values[0])
		}

		series = append(series, gochart.TimeSeries{
			Name:    Label(catalog, key),
			XValues: xs,
			YValues: values,
			Style: gochart.Style{
				StrokeColor: drawing.ColorFromHex(strings.TrimPrefix(palette.Color(key), "#")),
				StrokeWidth: 2,
			},
		})
	}
	return series
}
