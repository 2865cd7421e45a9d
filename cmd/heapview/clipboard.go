package main

import (
	"fmt"

	"github.com/atotto/clipboard"
)

// copySelectedHex copies the currently selected block's hex dump to the
// system clipboard.
func (m Model) copySelectedHex() error {
	b, ok := m.selected()
	if !ok {
		return fmt.Errorf("no block selected")
	}
	return clipboard.WriteAll(hexDump(m.heap.HeapBytes(b.Ref, int(b.Size))))
}
