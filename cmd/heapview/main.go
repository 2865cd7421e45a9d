package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/gomalloc/alloc"
	"github.com/joshuapare/gomalloc/arena"
	"github.com/joshuapare/gomalloc/cmd/heapview/logger"
	"github.com/joshuapare/gomalloc/internal/trace"
)

func main() {
	debug := flag.Bool("debug", false, "write a dated log file to ./logs")
	flag.BoolVar(debug, "d", false, "shorthand for --debug")
	arenaKind := flag.String("arena", "slice", `heap backend: "slice" (plain Go slice) or "mmap" (reserved virtual memory grown via mprotect)`)
	arenaCapacity := flag.Int64("arena-capacity", 64<<20, "virtual address space to reserve up front for --arena=mmap, in bytes")
	flag.Parse()

	if err := logger.Init(logger.Options{Enabled: *debug, LogDir: "logs", Level: slog.LevelDebug}); err != nil {
		fmt.Fprintf(os.Stderr, "heapview: %v\n", err)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) != 1 {
		printUsage()
		os.Exit(2)
	}

	a, err := newArena(*arenaKind, *arenaCapacity)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heapview: %v\n", err)
		os.Exit(1)
	}
	if c, ok := a.(io.Closer); ok {
		defer c.Close()
	}

	h, err := loadHeap(args[0], a)
	if err != nil {
		fmt.Fprintf(os.Stderr, "heapview: %v\n", err)
		os.Exit(1)
	}

	m := NewModel(h)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		logger.Error("program exited with error", "error", err)
		fmt.Fprintf(os.Stderr, "heapview: %v\n", err)
		os.Exit(1)
	}
}

// newArena builds the Arena backend named by kind. The mmap backend reserves
// capacity bytes of address space up front and is only ever actually mmap'd
// on unix build targets; arena_other.go falls back to a SliceArena-equivalent
// there.
func newArena(kind string, capacity int64) (arena.Arena, error) {
	switch kind {
	case "slice":
		return arena.NewSlice(), nil
	case "mmap":
		a, err := arena.NewMmap(int(capacity))
		if err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown --arena %q (want \"slice\" or \"mmap\")", kind)
	}
}

func loadHeap(path string, a arena.Arena) (*alloc.Heap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}

	h, err := alloc.New(a)
	if err != nil {
		return nil, fmt.Errorf("init heap: %w", err)
	}

	live := make(map[int]alloc.Ref)
	for _, o := range ops {
		switch o.Kind {
		case 'a':
			ref, _, err := h.Alloc(o.Size)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", o.Line, err)
			}
			live[o.ID] = ref
		case 'f':
			h.Free(live[o.ID])
			delete(live, o.ID)
		case 'r':
			newRef, _, err := h.Realloc(live[o.ID], o.Size)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", o.Line, err)
			}
			if o.Size == 0 {
				delete(live, o.ID)
			} else {
				live[o.ID] = newRef
			}
		}
	}

	return h, nil
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: heapview [--debug] [--arena slice|mmap] [--arena-capacity bytes] <trace-file>")
}
