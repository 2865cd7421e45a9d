package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/gomalloc/arena"
)

var (
	verbose       bool
	quiet         bool
	jsonOut       bool
	arenaKind     string
	arenaCapacity int64
)

var rootCmd = &cobra.Command{
	Use:   "mallocsh",
	Short: "Replay allocator traces and report statistics",
	Long: "mallocsh drives package alloc's Heap through recorded " +
		"allocate/free/reallocate traces, running the consistency " +
		"checker after every operation and reporting a statistics " +
		"summary at the end.",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print per-operation detail")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "emit machine-readable JSON output")
	rootCmd.PersistentFlags().StringVar(&arenaKind, "arena", "slice", `heap backend: "slice" (plain Go slice) or "mmap" (reserved virtual memory grown via mprotect)`)
	rootCmd.PersistentFlags().Int64Var(&arenaCapacity, "arena-capacity", 64<<20, "virtual address space to reserve up front for --arena=mmap, in bytes")
}

func execute() error {
	return rootCmd.Execute()
}

// newArena builds the Arena backend named by --arena. The mmap backend
// reserves --arena-capacity bytes of address space up front and is only
// ever actually mmap'd on unix build targets; arena_other.go falls back to
// a SliceArena-equivalent there.
func newArena() (arena.Arena, error) {
	switch arenaKind {
	case "slice":
		return arena.NewSlice(), nil
	case "mmap":
		a, err := arena.NewMmap(int(arenaCapacity))
		if err != nil {
			return nil, fmt.Errorf("arena: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown --arena %q (want \"slice\" or \"mmap\")", arenaKind)
	}
}

func printInfo(format string, args ...any) {
	if quiet {
		return
	}
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

func printVerbose(format string, args ...any) {
	if !verbose || quiet {
		return
	}
	fmt.Fprintf(os.Stdout, format+"\n", args...)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "mallocsh: %v\n", err)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func checkArgs(cmd *cobra.Command, args []string, n int) error {
	if len(args) != n {
		return fmt.Errorf("%s expects exactly %d argument(s)", cmd.Name(), n)
	}
	return nil
}
