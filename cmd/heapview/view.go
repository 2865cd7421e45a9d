package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"

	"github.com/joshuapare/gomalloc/alloc"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	freeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	allocStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
)

// View renders the entire UI. When a block's detail panel is visible, it is
// drawn as a floating overlay centered over the block list.
func (m Model) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if m.showDet {
		if b, ok := m.selected(); ok {
			background := NewMainViewModel(&m)
			foreground := NewDetailModel(b, m.heap)
			detailOverlay := overlay.New(
				foreground,
				background,
				overlay.Center,
				overlay.Center,
				0,
				0,
			)
			return detailOverlay.View()
		}
	}

	return m.renderMain()
}

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderHeader(),
		m.list.View(),
		m.renderStatus(),
	)
}

func (m Model) renderHeader() string {
	return headerStyle.Render(fmt.Sprintf("heapview — %d blocks", len(m.blocks)))
}

// renderBlockLines builds the viewport content for m's block list. It takes
// a pointer purely to avoid copying Model's viewport.Model field for a
// read-only render.
func renderBlockLines(m *Model) string {
	var b strings.Builder
	for i, blk := range m.blocks {
		line := fmt.Sprintf("%6d  size=%-6d  %s", blk.Ref, blk.Size, tagFor(blk))
		if i == m.cursor {
			line = cursorStyle.Render(line)
		} else if blk.Allocated {
			line = allocStyle.Render(line)
		} else {
			line = freeStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func tagFor(b alloc.BlockInfo) string {
	if b.Allocated {
		return "alloc"
	}
	return fmt.Sprintf("free  prev=%d next=%d", b.PrevLink, b.NextLink)
}

func (m Model) renderStatus() string {
	help := "↑/↓ move · enter detail · c copy · r refresh · q quit"
	if m.statusMessage != "" {
		return statusStyle.Render(m.statusMessage)
	}
	return statusStyle.Render(help)
}
