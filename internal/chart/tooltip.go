package chart

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Veraticus/tradepost/internal/model"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Korean)

// FormatGold renders a price as "1,234골드".
func FormatGold(v float64) string {
	return printer.Sprintf("%d골드", int64(math.Round(v)))
}

// FormatCount renders a sample count without trailing zeros.
func FormatCount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// OptionDelta is the price delta of one supplemental option value.
type OptionDelta struct {
	Value string
	Delta float64
}

// OptionGroup lists the deltas of one supplemental option.
type OptionGroup struct {
	Name   string
	Deltas []OptionDelta
}

// TooltipBlock is the display data of one key at one timestamp.
type TooltipBlock struct {
	Options     []OptionGroup
	Key         string
	Label       string
	Price       string
	Detail      string
	Value       float64
	SampleCount float64
}

// FormatTooltip builds one block per key in row, ordered by descending value. Keys
// absent from catalog are skipped.
func FormatTooltip(row Row, catalog model.Catalog) []TooltipBlock {
	blocks := make([]TooltipBlock, 0, len(row.Keys))
	for _, key := range row.Keys {
		cell, ok := row.Cells[key]
		if !ok {
			continue
		}
		rec, ok := catalog[key]
		if !ok {
			continue
		}

		block := TooltipBlock{
			Key:         key,
			Label:       rec.Label(),
			Value:       cell.Value,
			Price:       FormatGold(cell.Value),
			SampleCount: cell.SampleCount,
			Options:     optionGroups(cell.OptionValues),
		}
		if fixed, ok := rec.FixedOptionCount(); ok {
			extra, _ := rec.ExtraOptionCount()
			block.Detail = fmt.Sprintf("고정 %d개, 부여 %d개", fixed, extra)
		}
		blocks = append(blocks, block)
	}

	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Value > blocks[j].Value
	})
	return blocks
}

func optionGroups(values model.OptionValues) []OptionGroup {
	if len(values) == 0 {
		return nil
	}

	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	groups := make([]OptionGroup, 0, len(names))
	for _, name := range names {
		byValue := values[name]
		vals := make([]string, 0, len(byValue))
		for v := range byValue {
			vals = append(vals, v)
		}
		sort.Strings(vals)

		group := OptionGroup{Name: name, Deltas: make([]OptionDelta, 0, len(vals))}
		for _, v := range vals {
			group.Deltas = append(group.Deltas, OptionDelta{Value: v, Delta: byValue[v]})
		}
		groups = append(groups, group)
	}
	return groups
}

var (
	tooltipTime   = lipgloss.NewStyle().Bold(true)
	tooltipDetail = lipgloss.NewStyle().Faint(true)
)

// RenderTooltip renders blocks as terminal text. Labels take their key's palette colour.
func RenderTooltip(timestamp int64, blocks []TooltipBlock, palette Palette) string {
	var b strings.Builder
	b.WriteString(tooltipTime.Render(time.UnixMilli(timestamp).Format("2006-01-02 15:04:05")))

	for _, block := range blocks {
		label := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(palette.Color(block.Key)))
		b.WriteString("\n\n")
		b.WriteString(label.Render(block.Label))
		b.WriteString("\n  가격: " + block.Price)
		b.WriteString("\n  " + tooltipDetail.Render("샘플 수: "+FormatCount(block.SampleCount)+"개"))
		if block.Detail != "" {
			b.WriteString("\n  " + tooltipDetail.Render(block.Detail))
		}
		if len(block.Options) > 0 {
			b.WriteString("\n  부가 옵션 가치:")
			for _, group := range block.Options {
				b.WriteString("\n    " + group.Name + ":")
				for _, d := range group.Deltas {
					b.WriteString("\n      " + d.Value + ": +" + FormatGold(d.Delta))
				}
			}
		}
	}
	return b.String()
}
