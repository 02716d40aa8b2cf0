package tui

import (
	"fmt"
	"strings"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/dashboard"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader(), m.renderFilters()}
	if banner := m.renderStatus(); banner != "" {
		sections = append(sections, banner)
	}

	if m.state == StateLoading {
		sections = append(sections, m.spinner.View()+" "+m.theme.StatusPending.Render("데이터를 불러오는 중..."))
	} else {
		sections = append(sections, m.renderBody())
	}

	sections = append(sections, m.help.View(m.keymap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.theme.Title.Render("로스트아크 시장 분석")

	tabs := make([]string, 0, 2)
	for _, t := range []struct {
		label string
		kind  model.Kind
	}{{"액세서리", model.KindAccessory}, {"팔찌", model.KindBracelet}} {
		if t.kind == m.tab {
			tabs = append(tabs, m.theme.TabActive.Render(t.label))
		} else {
			tabs = append(tabs, m.theme.TabInactive.Render(t.label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) renderFilters() string {
	st := m.active().State()

	field := func(label, value string) string {
		return m.theme.FilterLabel.Render(label+": ") + m.theme.FilterValue.Render(value)
	}
	sortLabel := "가격"
	if st.Sort == catalog.SortSamples {
		sortLabel = "샘플 수"
	}

	var fields []string
	if m.tab == model.KindBracelet {
		stat := st.Filter.CombatStat
		if stat == "" {
			stat = "전체"
		}
		fields = []string{
			field("등급", string(st.Grade)),
			field("기간", st.TimeRange.Label()),
			m.theme.FilterValue.Render(filterLabel("고정", st.Filter.FixedCount)),
			m.theme.FilterValue.Render(filterLabel("부여", st.Filter.ExtraCount)),
			field("특성", stat),
			field("정렬", sortLabel),
		}
	} else {
		part := string(st.Filter.Part)
		if part == "" {
			part = "전체"
		}
		level := "전체"
		if st.Filter.Level != nil {
			level = fmt.Sprintf("%d연마", *st.Filter.Level)
		}
		fields = []string{
			field("역할", st.Role.Label()),
			field("기간", st.TimeRange.Label()),
			m.theme.FilterValue.Render(st.Quality.Label()),
			field("부위", part),
			field("연마", level),
			field("정렬", sortLabel),
		}
	}
	if st.Loading() {
		fields = append(fields, m.spinner.View()+m.theme.StatusPending.Render("갱신 중"))
	}
	return strings.Join(fields, m.theme.FilterLabel.Render(" │ "))
}

func (m Model) renderStatus() string {
	var lines []string
	if err := m.active().State().Err(); err != nil {
		lines = append(lines, m.theme.StatusError.Render("⚠ "+errorText(m.active().State())))
	}
	if m.status != "" {
		lines = append(lines, m.theme.StatusInfo.Render(m.status))
	}
	return strings.Join(lines, "\n")
}

// errorText lists the user-facing message of each failed slot.
func errorText(st dashboard.State) string {
	var parts []string
	if st.CatalogErr != nil {
		parts = append(parts, "패턴: "+common.UserMessage(st.CatalogErr))
	}
	if st.SeriesErr != nil {
		parts = append(parts, "시세: "+common.UserMessage(st.SeriesErr))
	}
	return strings.Join(parts, ", ")
}

func (m Model) renderBody() string {
	listStyle, chartStyle := m.theme.PanelFocused, m.theme.Panel
	if m.focus == FocusChart {
		listStyle, chartStyle = m.theme.Panel, m.theme.PanelFocused
	}

	list := listStyle.Render(m.list.View())
	if !m.active().ChartVisible() {
		return list
	}

	chartView := chartStyle.Render(m.chartPanel.View())
	if m.width >= 120 {
		return lipgloss.JoinHorizontal(lipgloss.Top, chartView, list)
	}
	return lipgloss.JoinVertical(lipgloss.Left, chartView, list)
}
