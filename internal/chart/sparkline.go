package chart

import "strings"

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline renders one key's column across every table row. Rows where the key
// has a gap render as a space.
func Sparkline(table *AlignedTable, key string) string {
	if table.Empty() {
		return ""
	}

	lo, hi := 0.0, 0.0
	first := true
	for _, row := range table.Rows {
		c, ok := row.Cells[key]
		if !ok {
			continue
		}
		if first || c.Value < lo {
			lo = c.Value
		}
		if first || c.Value > hi {
			hi = c.Value
		}
		first = false
	}

	var b strings.Builder
	for _, row := range table.Rows {
		c, ok := row.Cells[key]
		if !ok {
			b.WriteRune(' ')
			continue
		}
		idx := 0
		if hi > lo {
			idx = int((c.Value - lo) / (hi - lo) * float64(len(sparkLevels)-1))
		}
		b.WriteRune(sparkLevels[idx])
	}
	return b.String()
}
