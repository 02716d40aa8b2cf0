package tui

import "github.com/Veraticus/tradepost/internal/model"

// Data loading messages.
type loadedMsg struct {
	err  error
	kind model.Kind
}

type exportedMsg struct {
	err  error
	path string
}
