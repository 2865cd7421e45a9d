// Package main implements heapview, a Bubble Tea TUI that visualizes a
// replayed heap: the block list in physical order, a floating detail panel
// for the selected block, and a clipboard shortcut for its hex dump.
package main

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/gomalloc/alloc"
	"github.com/joshuapare/gomalloc/cmd/heapview/logger"
)

// Model is the root Bubble Tea model for heapview.
type Model struct {
	heap   *alloc.Heap
	blocks []alloc.BlockInfo
	keys   KeyMap

	list    viewport.Model
	cursor  int
	width   int
	height  int
	showDet bool

	statusMessage string
	err           error
}

// NewModel builds a Model over a heap that has already been populated (by
// replaying a trace before the program starts).
func NewModel(h *alloc.Heap) Model {
	m := Model{
		heap:   h,
		blocks: h.Blocks(),
		keys:   DefaultKeyMap(),
		list:   viewport.New(0, 0),
	}
	m.syncList()
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

// syncList rebuilds the viewport's content from m.blocks and keeps the
// cursor's row scrolled into view.
func (m *Model) syncList() {
	m.list.SetContent(renderBlockLines(m))
	if m.cursor < m.list.YOffset {
		m.list.YOffset = m.cursor
	} else if m.cursor >= m.list.YOffset+m.list.Height {
		m.list.YOffset = m.cursor - m.list.Height + 1
	}
	if m.list.YOffset < 0 {
		m.list.YOffset = 0
	}
}

type clearStatusMsg struct{}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.Width = msg.Width
		m.list.Height = max(0, msg.Height-4)
		m.syncList()
		return m, nil

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
				m.syncList()
			}
			return m, nil

		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.blocks)-1 {
				m.cursor++
				m.syncList()
			}
			return m, nil

		case key.Matches(msg, m.keys.Enter):
			if len(m.blocks) > 0 {
				m.showDet = !m.showDet
			}
			return m, nil

		case key.Matches(msg, m.keys.Esc):
			m.showDet = false
			return m, nil

		case key.Matches(msg, m.keys.Refresh):
			m.blocks = m.heap.Blocks()
			if m.cursor >= len(m.blocks) {
				m.cursor = max(0, len(m.blocks)-1)
			}
			m.syncList()
			m.statusMessage = "Refreshed"
			return m, clearStatusAfter(2 * time.Second)

		case key.Matches(msg, m.keys.Copy):
			if err := m.copySelectedHex(); err != nil {
				logger.Warn("clipboard copy failed", "error", err)
				m.statusMessage = "Failed to copy"
			} else {
				m.statusMessage = "Copied hex dump to clipboard"
			}
			return m, clearStatusAfter(2 * time.Second)
		}
	}
	return m, nil
}

func (m Model) selected() (alloc.BlockInfo, bool) {
	if m.cursor < 0 || m.cursor >= len(m.blocks) {
		return alloc.BlockInfo{}, false
	}
	return m.blocks[m.cursor], true
}
