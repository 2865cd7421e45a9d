package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gomalloc/alloc"
	"github.com/joshuapare/gomalloc/internal/trace"
)

var checkEvery bool

func init() {
	cmd := newRunCmd()
	rootCmd.AddCommand(cmd)
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <trace-file>",
		Short: "Replay a trace file against a fresh heap",
		Args:  cobra.ExactArgs(1),
		RunE:  runRun,
	}
	cmd.Flags().BoolVar(&checkEvery, "check", true, "run the consistency checker after every operation")
	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	if err := checkArgs(cmd, args, 1); err != nil {
		return err
	}

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()

	ops, err := trace.Parse(f)
	if err != nil {
		return fmt.Errorf("parse trace: %w", err)
	}

	a, err := newArena()
	if err != nil {
		return fmt.Errorf("arena: %w", err)
	}
	if c, ok := a.(io.Closer); ok {
		defer c.Close()
	}

	h, err := alloc.New(a)
	if err != nil {
		return fmt.Errorf("init heap: %w", err)
	}

	stats := newStats()
	live := make(map[int]alloc.Ref)

	for _, o := range ops {
		switch o.Kind {
		case 'a':
			ref, _, err := h.Alloc(o.Size)
			if err != nil {
				return fmt.Errorf("line %d: alloc(%d): %w", o.Line, o.Size, err)
			}
			live[o.ID] = ref
			stats.recordAlloc(o.Size)
			printVerbose("line %d: alloc(%d) -> id %d (ref %d)", o.Line, o.Size, o.ID, ref)

		case 'f':
			ref, ok := live[o.ID]
			if !ok {
				return fmt.Errorf("line %d: free: unknown id %d", o.Line, o.ID)
			}
			h.Free(ref)
			delete(live, o.ID)
			stats.recordFree()
			printVerbose("line %d: free(id %d, ref %d)", o.Line, o.ID, ref)

		case 'r':
			ref := live[o.ID]
			newRef, _, err := h.Realloc(ref, o.Size)
			if err != nil {
				return fmt.Errorf("line %d: realloc(id %d, %d): %w", o.Line, o.ID, o.Size, err)
			}
			if o.Size == 0 {
				delete(live, o.ID)
			} else {
				live[o.ID] = newRef
			}
			stats.recordRealloc(o.Size)
			printVerbose("line %d: realloc(id %d, %d) -> ref %d", o.Line, o.ID, o.Size, newRef)
		}

		if checkEvery {
			var sb strings.Builder
			if !h.Check(&sb, false) {
				return fmt.Errorf("line %d: consistency check failed:\n%s", o.Line, sb.String())
			}
		}
	}

	stats.liveBlocks = len(live)
	return reportStats(stats)
}
