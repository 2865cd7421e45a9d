package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gomalloc/alloc"
	"github.com/joshuapare/gomalloc/internal/trace"
)

func init() {
	rootCmd.AddCommand(newCheckCmd())
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <trace-file>",
		Short: "Replay a trace and print a verbose consistency report at the end",
		Args:  cobra.ExactArgs(1),
		RunE:  runCheck,
	}
}

func runCheck(cmd *cobra.Command, args []string) error {
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

	live := make(map[int]alloc.Ref)
	for _, o := range ops {
		switch o.Kind {
		case 'a':
			ref, _, err := h.Alloc(o.Size)
			if err != nil {
				return fmt.Errorf("line %d: %w", o.Line, err)
			}
			live[o.ID] = ref
		case 'f':
			h.Free(live[o.ID])
			delete(live, o.ID)
		case 'r':
			newRef, _, err := h.Realloc(live[o.ID], o.Size)
			if err != nil {
				return fmt.Errorf("line %d: %w", o.Line, err)
			}
			if o.Size == 0 {
				delete(live, o.ID)
			} else {
				live[o.ID] = newRef
			}
		}
	}

	ok := h.Check(os.Stdout, true)
	if !ok {
		return fmt.Errorf("heap failed consistency check")
	}
	printInfo("heap consistent after %d operations", len(ops))
	return nil
}
