// Package chart pivots price series into a timestamp-aligned table and renders it
// as tooltips, sparklines, PNG charts and spreadsheets.
package chart

import (
	"sort"

	"github.com/Veraticus/tradepost/internal/model"
)

// Cell is one key's value at one timestamp, with the metadata tooltips need.
type Cell struct {
	QualityPrices model.QualityPrices
	OptionValues  model.OptionValues
	Value         float64
	SampleCount   float64
	Kind          model.Kind
}

// Row holds the cells sharing one exact timestamp. Keys lists the keys present in
// the row in column order.
type Row struct {
	Cells     map[string]Cell
	Keys      []string
	Timestamp int64
}

// Cell returns the cell for key and whether the row has a value for it.
func (r Row) Cell(key string) (Cell, bool) {
	c, ok := r.Cells[key]
	return c, ok
}

// AlignedTable is the pivot of several series onto shared timestamps.
type AlignedTable struct {
	// Keys are the selected keys that produced at least one value, in selection order.
	Keys []string
	// Rows are sorted strictly ascending by timestamp.
	Rows []Row
}

// Empty reports whether the table has no rows.
func (t *AlignedTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Column returns the timestamps and values of one key, skipping rows where it has a gap.
func (t *AlignedTable) Column(key string) (timestamps []int64, values []float64) {
	for _, row := range t.Rows {
		if c, ok := row.Cells[key]; ok {
			timestamps = append(timestamps, row.Timestamp)
			values = append(values, c.Value)
		}
	}
	return timestamps, values
}

// Align pivots the selected series onto shared timestamps. Keys missing from series
// are skipped. Accessory points are read at tier and a zero or missing tier price
// is a gap; bracelet points use their single price.
func Align(series model.SeriesSet, selected []string, tier model.QualityTier) *AlignedTable {
	rows := make(map[int64]*Row)
	table := &AlignedTable{Keys: []string{}, Rows: []Row{}}
	seen := make(map[string]bool, len(selected))

	for _, key := range selected {
		if seen[key] {
			continue
		}
		seen[key] = true

		points, ok := series[key]
		if !ok {
			continue
		}

		produced := false
		for _, p := range points {
			cell, ok := resolve(p, tier)
			if !ok {
				continue
			}
			ts := p.Timestamp()
			row, exists := rows[ts]
			if !exists {
				row = &Row{Timestamp: ts, Cells: make(map[string]Cell)}
				rows[ts] = row
			}
			if _, dup := row.Cells[key]; !dup {
				row.Keys = append(row.Keys, key)
			}
			row.Cells[key] = cell
			produced = true
		}
		if produced {
			table.Keys = append(table.Keys, key)
		}
	}

	for _, row := range rows {
		table.Rows = append(table.Rows, *row)
	}
	sort.Slice(table.Rows, func(i, j int) bool {
		return table.Rows[i].Timestamp < table.Rows[j].Timestamp
	})

	return table
}

func resolve(p model.PricePoint, tier model.QualityTier) (Cell, bool) {
	switch {
	case p.Bracelet != nil:
		return Cell{
			Kind:        model.KindBracelet,
			Value:       p.Bracelet.Price,
			SampleCount: p.Bracelet.SampleCount,
		}, true
	case p.Accessory != nil:
		price := p.Accessory.QualityPrices.Price(tier)
		if price == 0 {
			return Cell{}, false
		}
		return Cell{
			Kind:          model.KindAccessory,
			Value:         price,
			QualityPrices: p.Accessory.QualityPrices,
			OptionValues:  p.Accessory.CommonOptionValues,
			SampleCount:   p.Accessory.SampleCount,
		}, true
	}
	return Cell{}, false
}
