package components

import (
	"strings"

	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/Veraticus/tradepost/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	cursorLeft  = key.NewBinding(key.WithKeys("left", "h"))
	cursorRight = key.NewBinding(key.WithKeys("right", "l"))
	cursorStart = key.NewBinding(key.WithKeys("home"))
	cursorEnd   = key.NewBinding(key.WithKeys("end"))
)

// ChartPanelModel shows one sparkline per selected series and the tooltip of the
// timestamp under the cursor.
type ChartPanelModel struct {
	theme   themes.Theme
	table   *chart.AlignedTable
	catalog model.Catalog
	palette chart.Palette
	cursor  int
	width   int
	height  int
}

// NewChartPanel creates an empty chart panel.
func NewChartPanel(theme themes.Theme) ChartPanelModel {
	return ChartPanelModel{theme: theme, width: 60}
}

// SetData replaces the table. The cursor moves to the newest row when the table
// changes shape.
func (m *ChartPanelModel) SetData(table *chart.AlignedTable, catalog model.Catalog, selection []string) {
	resetCursor := m.table == nil || table == nil || len(m.table.Rows) != len(table.Rows)
	m.table = table
	m.catalog = catalog
	m.palette = chart.NewPalette(selection)
	if table == nil || len(table.Rows) == 0 {
		m.cursor = 0
		return
	}
	if resetCursor || m.cursor >= len(table.Rows) {
		m.cursor = len(table.Rows) - 1
	}
}

// Cursor returns the row index under the cursor.
func (m ChartPanelModel) Cursor() int {
	return m.cursor
}

// Resize sets the panel dimensions.
func (m *ChartPanelModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Update moves the cursor across timestamps.
func (m ChartPanelModel) Update(msg tea.Msg) (ChartPanelModel, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || m.table.Empty() {
		return m, nil
	}

	last := len(m.table.Rows) - 1
	switch {
	case key.Matches(kmsg, cursorLeft):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(kmsg, cursorRight):
		if m.cursor < last {
			m.cursor++
		}
	case key.Matches(kmsg, cursorStart):
		m.cursor = 0
	case key.Matches(kmsg, cursorEnd):
		m.cursor = last
	}
	return m, nil
}

// View renders the sparklines and tooltip.
func (m ChartPanelModel) View() string {
	if m.table.Empty() {
		return m.theme.StatusPending.Render("패턴을 선택하면 가격 추이가 표시됩니다")
	}

	sparkWidth := m.width - 4
	if sparkWidth < 10 {
		sparkWidth = 10
	}
	start := 0
	if n := len(m.table.Rows); n > sparkWidth {
		start = m.cursor - sparkWidth + 1
		if start < 0 {
			start = 0
		}
		if start > n-sparkWidth {
			start = n - sparkWidth
		}
	}

	var b strings.Builder
	b.WriteString(m.theme.Title.Render("가격 추이"))
	for _, k := range m.table.Keys {
		color := lipgloss.Color(m.palette.Color(k))
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render("■ " + chart.Label(m.catalog, k)))
		b.WriteString("\n")
		line := []rune(chart.Sparkline(m.table, k))
		end := min(start+sparkWidth, len(line))
		b.WriteString(lipgloss.NewStyle().Foreground(color).Render(string(line[start:end])))
	}
	b.WriteString("\n")
	b.WriteString(strings.Repeat(" ", m.cursor-start) + "▲")
	b.WriteString("\n\n")

	row := m.table.Rows[m.cursor]
	b.WriteString(chart.RenderTooltip(row.Timestamp, chart.FormatTooltip(row, m.catalog), m.palette))
	return b.String()
}
