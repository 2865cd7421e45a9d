package main

import (
	"os"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// traceStats accumulates counters across a trace replay for the closing
// report, mirroring the shape of a HiveStats-style summary struct.
type traceStats struct {
	Allocs       int   `json:"allocs"`
	Frees        int   `json:"frees"`
	Reallocs     int   `json:"reallocs"`
	BytesAlloc   int64 `json:"bytes_allocated"`
	BytesRealloc int64 `json:"bytes_reallocated"`
	liveBlocks   int
}

func newStats() *traceStats {
	return &traceStats{}
}

func (s *traceStats) recordAlloc(size int) {
	s.Allocs++
	s.BytesAlloc += int64(size)
}

func (s *traceStats) recordFree() {
	s.Frees++
}

func (s *traceStats) recordRealloc(size int) {
	s.Reallocs++
	s.BytesRealloc += int64(size)
}

// reportStats prints a human-readable summary (thousands-separated via
// golang.org/x/text/message) or, with --json, the raw struct.
func reportStats(s *traceStats) error {
	if jsonOut {
		return printJSON(s)
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(os.Stdout, "allocations:       %d\n", s.Allocs)
	p.Fprintf(os.Stdout, "frees:             %d\n", s.Frees)
	p.Fprintf(os.Stdout, "reallocations:     %d\n", s.Reallocs)
	p.Fprintf(os.Stdout, "bytes allocated:   %d\n", s.BytesAlloc)
	p.Fprintf(os.Stdout, "bytes reallocated: %d\n", s.BytesRealloc)
	p.Fprintf(os.Stdout, "blocks still live: %d\n", s.liveBlocks)
	return nil
}
