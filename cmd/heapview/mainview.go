package main

import tea "github.com/charmbracelet/bubbletea"

// MainViewModel wraps the root Model's non-overlay rendering for use as
// the overlay package's background: it is rebuilt on every View call since
// bubbletea's Update returns new models and a stored pointer would go
// stale.
type MainViewModel struct {
	m *Model
}

func NewMainViewModel(m *Model) MainViewModel {
	return MainViewModel{m: m}
}

func (v MainViewModel) Init() tea.Cmd { return nil }

func (v MainViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return v, nil }

func (v MainViewModel) View() string { return v.m.renderMain() }
