package tui

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/Veraticus/tradepost/internal/catalog"
	"github.com/Veraticus/tradepost/internal/common"
	"github.com/Veraticus/tradepost/internal/dashboard"
	"github.com/Veraticus/tradepost/internal/model"
	"github.com/Veraticus/tradepost/internal/tui/components"
	"github.com/Veraticus/tradepost/internal/tui/themes"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// State represents the current state of the TUI.
type State int

const (
	StateLoading State = iota
	StateReady
	StateHelp
)

// Focus is the panel receiving navigation keys.
type Focus int

const (
	FocusList Focus = iota
	FocusChart
)

// Model holds the main TUI state.
type Model struct {
	theme      themes.Theme
	accessory  *dashboard.Controller
	bracelet   *dashboard.Controller
	status     string
	help       help.Model
	spinner    spinner.Model
	config     Config
	keymap     KeyMap
	list       components.PatternListModel
	chartPanel components.ChartPanelModel
	width      int
	height     int
	tab        model.Kind
	state      State
	focus      Focus
	quitting   bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	acc := dashboard.NewAccessory(cfg.Fetcher,
		dashboard.WithRole(cfg.Role),
		dashboard.WithTimeRange(cfg.Range),
		dashboard.WithQualityTier(cfg.Quality),
	)
	br := dashboard.NewBracelet(cfg.Fetcher,
		dashboard.WithGrade(cfg.Grade),
		dashboard.WithTimeRange(cfg.Range),
	)

	m := Model{
		state:      StateLoading,
		config:     cfg,
		keymap:     DefaultKeyMap(),
		theme:      cfg.Theme,
		help:       help.New(),
		spinner:    spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(cfg.Theme.StatusPending)),
		accessory:  acc,
		bracelet:   br,
		tab:        cfg.Tab,
		width:      cfg.Width,
		height:     cfg.Height,
		chartPanel: components.NewChartPanel(cfg.Theme),
	}
	m.help.ShowAll = cfg.ShowHelp
	m.list = components.NewPatternList(cfg.Tab, cfg.Theme)
	m.handleResize()
	m.sync()
	return m
}

// Init loads both dashboards.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		fetch(m.accessory, m.accessory.Reload()),
		fetch(m.bracelet, m.bracelet.Reload()),
	)
}

// active returns the controller of the visible tab.
func (m Model) active() *dashboard.Controller {
	if m.tab == model.KindBracelet {
		return m.bracelet
	}
	return m.accessory
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.handleResize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case loadedMsg:
		if msg.err != nil {
			common.LogError(msg.err, "Dashboard fetch failed", common.Fields{"kind": msg.kind.String()})
		}
		if m.state == StateLoading {
			m.state = StateReady
		}
		if msg.kind == m.tab {
			m.sync()
		}
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.status = "내보내기 실패: " + common.UserMessage(msg.err)
		} else {
			m.status = "내보내기 완료: " + msg.path
			slog.Info("Exported market data", "path", msg.path)
		}
		return m, nil

	case components.PatternToggledMsg:
		m.active().Toggle(msg.Key)
		m.sync()
		return m, nil

	case tea.KeyMsg:
		if cmd, handled := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	var cmd tea.Cmd
	if m.focus == FocusChart {
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	} else {
		m.list, cmd = m.list.Update(msg)
	}
	return m, cmd
}

// handleKey handles dashboard-level keys. It reports false for keys the focused
// panel should receive.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	ctrl := m.active()
	st := ctrl.State()

	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return tea.Quit, true

	case key.Matches(msg, m.keymap.Help):
		if m.state == StateHelp {
			m.state = StateReady
		} else {
			m.state = StateHelp
		}
		m.help.ShowAll = m.state == StateHelp
		return nil, true

	case key.Matches(msg, m.keymap.SwitchTab):
		if m.tab == model.KindAccessory {
			m.tab = model.KindBracelet
		} else {
			m.tab = model.KindAccessory
		}
		m.list = components.NewPatternList(m.tab, m.theme)
		m.focus = FocusList
		m.handleResize()
		m.sync()
		return nil, true

	case key.Matches(msg, m.keymap.Focus):
		if m.focus == FocusList {
			m.focus = FocusChart
			m.list.Blur()
		} else {
			m.focus = FocusList
			m.list.Focus()
		}
		return nil, true

	case key.Matches(msg, m.keymap.Clear):
		ctrl.ClearSelection()
		m.sync()
		return nil, true

	case key.Matches(msg, m.keymap.Group):
		var req dashboard.Request
		if m.tab == model.KindBracelet {
			req = ctrl.SetGrade(next(model.Grades, st.Grade))
		} else {
			req = ctrl.SetRole(next([]model.Role{model.RoleDealer, model.RoleSupport}, st.Role))
		}
		m.sync()
		return fetch(ctrl, req), true

	case key.Matches(msg, m.keymap.Range):
		req := ctrl.SetTimeRange(next(model.TimeRanges, st.TimeRange))
		m.sync()
		return fetch(ctrl, req), true

	case key.Matches(msg, m.keymap.Refresh):
		req := ctrl.Reload()
		m.sync()
		return fetch(ctrl, req), true

	case key.Matches(msg, m.keymap.Quality):
		if m.tab == model.KindAccessory {
			ctrl.SetQualityTier(next(model.QualityTiers, st.Quality))
			m.sync()
		}
		return nil, true

	case key.Matches(msg, m.keymap.Sort):
		if st.Sort == catalog.SortPrice {
			ctrl.SetSort(catalog.SortSamples)
		} else {
			ctrl.SetSort(catalog.SortPrice)
		}
		m.sync()
		return nil, true

	case key.Matches(msg, m.keymap.Filter1, m.keymap.Filter2, m.keymap.Filter3):
		ctrl.SetFilter(m.cycleFilter(msg, st))
		m.sync()
		return nil, true

	case key.Matches(msg, m.keymap.Export):
		if m.config.Exporter == nil {
			m.status = "내보내기가 설정되지 않았습니다"
			return nil, true
		}
		m.status = "내보내는 중..."
		return m.export(), true
	}

	return nil, false
}

// cycleFilter advances the filter field bound to the pressed key.
func (m Model) cycleFilter(msg tea.KeyMsg, st dashboard.State) catalog.Filter {
	f := st.Filter
	bracelet := m.tab == model.KindBracelet

	switch {
	case key.Matches(msg, m.keymap.Filter1) && bracelet:
		f.FixedCount = nextCount(catalog.FixedCountOptions, f.FixedCount)
	case key.Matches(msg, m.keymap.Filter1):
		f.Part = nextOrAll(model.Parts, f.Part)
	case key.Matches(msg, m.keymap.Filter2) && bracelet:
		f.ExtraCount = nextCount(catalog.ExtraCountOptions(st.Grade), f.ExtraCount)
	case key.Matches(msg, m.keymap.Filter2):
		f.Level = nextCount([]int{0, 1, 2, 3}, f.Level)
	case key.Matches(msg, m.keymap.Filter3) && bracelet:
		f.CombatStat = nextOrAll(catalog.CombatStats, f.CombatStat)
	}
	return f
}

// sync pulls derived data of the active controller into the panels.
func (m *Model) sync() {
	ctrl := m.active()
	st := ctrl.State()
	m.list.SetEntries(ctrl.Patterns(), st.Selection)
	m.chartPanel.SetData(ctrl.Table(), ctrl.Catalog(), st.Selection)
}

// handleResize adjusts component sizes when terminal resizes.
func (m *Model) handleResize() {
	bodyHeight := m.height - 8
	if bodyHeight < 5 {
		bodyHeight = 5
	}
	if m.width >= 120 {
		m.list.Resize(m.width/2-2, bodyHeight)
		m.chartPanel.Resize(m.width/2-4, bodyHeight)
	} else {
		m.list.Resize(m.width-2, bodyHeight/2)
		m.chartPanel.Resize(m.width-4, bodyHeight/2)
	}
}

// next returns the element after cur, wrapping around.
func next[T comparable](options []T, cur T) T {
	i := slices.Index(options, cur)
	return options[(i+1)%len(options)]
}

// nextOrAll cycles "" (any) through options and back to "".
func nextOrAll[T ~string](options []T, cur T) T {
	i := slices.Index(options, cur)
	if i == len(options)-1 {
		var all T
		return all
	}
	return options[i+1]
}

// nextCount cycles nil (any) through options and back to nil.
func nextCount(options []int, cur *int) *int {
	i := -1
	if cur != nil {
		i = slices.Index(options, *cur)
	}
	if i == len(options)-1 {
		return nil
	}
	n := options[i+1]
	return &n
}

func filterLabel(prefix string, v *int) string {
	if v == nil {
		return prefix + " 전체"
	}
	return fmt.Sprintf("%s %d개", prefix, *v)
}
