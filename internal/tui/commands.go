package tui

import (
	"context"
	"time"

	"github.com/Veraticus/tradepost/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

// fetchTimeout bounds one transition's fetch pair.
const fetchTimeout = 30 * time.Second

// fetch runs a controller request off the event loop.
func fetch(ctrl *dashboard.Controller, req dashboard.Request) tea.Cmd {
	if req.Empty() {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		err := ctrl.Fetch(ctx, req)
		return loadedMsg{kind: ctrl.Kind(), err: err}
	}
}

// export runs the configured exporter.
func (m Model) export() tea.Cmd {
	exporter := m.config.Exporter
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		path, err := exporter(ctx)
		return exportedMsg{path: path, err: err}
	}
}
