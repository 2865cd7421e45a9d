package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/joshuapare/gomalloc/alloc"
)

var detailBoxStyle = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	Padding(1, 2)

// DetailModel is the floating panel shown over the block list for the
// currently selected block: its boundary tags and, for free blocks, its
// free-list links.
type DetailModel struct {
	block alloc.BlockInfo
	hex   string
}

func NewDetailModel(b alloc.BlockInfo, h *alloc.Heap) DetailModel {
	return DetailModel{block: b, hex: hexDump(h.HeapBytes(b.Ref, int(b.Size)))}
}

func (d DetailModel) Init() tea.Cmd { return nil }

func (d DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return d, nil }

func (d DetailModel) View() string {
	status := "allocated"
	links := ""
	if !d.block.Allocated {
		status = "free"
		links = fmt.Sprintf("\nprev_link: %d\nnext_link: %d", d.block.PrevLink, d.block.NextLink)
	}

	body := fmt.Sprintf(
		"block at %d\nsize:      %d bytes\nstate:     %s%s\n\n%s",
		d.block.Ref, d.block.Size, status, links, d.hex,
	)
	return detailBoxStyle.Render(body)
}

func hexDump(b []byte) string {
	out := make([]byte, 0, len(b)*3)
	for i, c := range b {
		if i > 0 {
			out = append(out, ' ')
		}
		out = append(out, fmt.Sprintf("%02x", c)...)
	}
	return string(out)
}
