// Package components contains the dashboard panels.
package components

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/chart"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/Veraticus/tradepost/internal/tui/themes"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// PatternToggledMsg is sent when the user toggles the pattern under the cursor.
type PatternToggledMsg struct {
	Key string
}

var toggleKey = key.NewBinding(key.WithKeys("enter", " "))

// PatternListModel shows the filtered catalog with selection marks.
type PatternListModel struct {
	theme     themes.Theme
	entries   []catalog.Entry
	selection []string
	table     table.Model
	kind      model.Kind
	width     int
	height    int
}

// NewPatternList creates a list for one dashboard kind.
func NewPatternList(kind model.Kind, theme themes.Theme) PatternListModel {
	t := table.New(
		table.WithColumns(columnsFor(kind)),
		table.WithFocused(true),
		table.WithHeight(20),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Bold(false)
	s.Selected = theme.Selected
	t.SetStyles(s)

	return PatternListModel{
		theme: theme,
		table: t,
		kind:  kind,
	}
}

func columnsFor(kind model.Kind) []table.Column {
	if kind == model.KindBracelet {
		return []table.Column{
			{Title: " ", Width: 2},
			{Title: "종류", Width: 8},
			{Title: "옵션", Width: 28},
			{Title: "고정/부여", Width: 9},
			{Title: "가격", Width: 12},
			{Title: "샘플", Width: 6},
		}
	}
	return []table.Column{
		{Title: " ", Width: 2},
		{Title: "부위", Width: 6},
		{Title: "연마", Width: 4},
		{Title: "패턴", Width: 28},
		{Title: "가격", Width: 12},
		{Title: "샘플", Width: 6},
	}
}

// SetEntries replaces the rows, keeping the cursor in range.
func (m *PatternListModel) SetEntries(entries []catalog.Entry, selection []string) {
	m.entries = entries
	m.selection = selection

	rows := make([]table.Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, m.row(e))
	}
	m.table.SetRows(rows)

	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}
}

func (m PatternListModel) row(e catalog.Entry) table.Row {
	mark := " "
	if slices.Contains(m.selection, e.Key) {
		mark = "●"
	}
	price := chart.FormatGold(e.Record.Price())
	samples := chart.FormatCount(e.Record.SampleCount())

	if m.kind == model.KindBracelet {
		counts := ""
		if fixed, ok := e.Record.FixedOptionCount(); ok {
			extra, _ := e.Record.ExtraOptionCount()
			counts = fmt.Sprintf("%d/%d", fixed, extra)
		}
		return table.Row{mark, e.Record.PartOrType(), e.Record.Description(), counts, price, samples}
	}
	return table.Row{mark, e.Record.PartOrType(), strconv.Itoa(e.Record.Level()), e.Record.Description(), price, samples}
}

// Entries returns the rows currently shown.
func (m PatternListModel) Entries() []catalog.Entry {
	return m.entries
}

// Current returns the entry under the cursor.
func (m PatternListModel) Current() (catalog.Entry, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.entries) {
		return catalog.Entry{}, false
	}
	return m.entries[c], true
}

// Focus gives the list keyboard focus.
func (m *PatternListModel) Focus() { m.table.Focus() }

// Blur removes keyboard focus.
func (m *PatternListModel) Blur() { m.table.Blur() }

// Resize sets the list dimensions.
func (m *PatternListModel) Resize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetWidth(width)
	if height > 4 {
		m.table.SetHeight(height - 2)
	}
}

// Update handles navigation and toggling.
func (m PatternListModel) Update(msg tea.Msg) (PatternListModel, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && m.table.Focused() && key.Matches(kmsg, toggleKey) {
		if e, ok := m.Current(); ok {
			return m, func() tea.Msg { return PatternToggledMsg{Key: e.Key} }
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the list.
func (m PatternListModel) View() string {
	if len(m.entries) == 0 {
		return m.theme.StatusPending.Render("표시할 패턴이 없습니다")
	}
	footer := m.theme.Subtitle.Render(fmt.Sprintf("%d개 패턴 · %d개 선택", len(m.entries), len(m.selection)))
	return lipgloss.JoinVertical(lipgloss.Left, m.table.View(), footer)
}
