package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/oxygen/api-performance-counters-ui/src/counters"
	"github.com/oxygen/api-performance-counters-ui/src/types"
)

func main() {
	var file string
	var max int
	var top int
	flag.StringVar(&file, "file", "performance_counters.jsonl", "Path to a performance counters history (.jsonl)")
	flag.IntVar(&max, "n", 50, "Max snapshots to load (0 = all)")
	flag.IntVar(&top, "top", 5, "Functions of the latest snapshot to list by call count")
	flag.Parse()

	f, err := os.Open(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()
	snaps, skipped, err := counters.ReadHistory(f, max)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	report(os.Stdout, snaps, skipped, top)
}

// report prints one line per snapshot and the busiest functions of the latest one.
func report(w io.Writer, snaps []*types.PerformanceCounters, skipped, top int) {
	fmt.Fprintf(w, "Total snapshots: %d (skipped %d)\n", len(snaps), skipped)
	for i, pc := range snaps {
		calls, errs := totals(pc)
		fmt.Fprintf(w, "#%d functions=%d calls=%.0f errors=%.0f\n", i+1, pc.Len(), calls, errs)
	}
	if len(snaps) == 0 || top <= 0 {
		return
	}
	latest := snaps[len(snaps)-1]
	names := make([]string, 0, latest.Len())
	for name := range latest.Metrics {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := latest.Metrics[names[i]].SuccessCount, latest.Metrics[names[j]].SuccessCount
		if a != b {
			return a > b
		}
		return names[i] < names[j]
	})
	if len(names) > top {
		names = names[:top]
	}
	for _, name := range names {
		m := latest.Metrics[name]
		fmt.Fprintf(w, "  %s: %.0f calls, %.0f errors, avg %.1f ms\n", name, m.SuccessCount, m.ErrorCount, m.SuccessMillisecondsAverage)
	}
}

func totals(pc *types.PerformanceCounters) (calls, errs float64) {
	for _, m := range pc.Metrics {
		calls += m.SuccessCount
		errs += m.ErrorCount
	}
	return calls, errs
}
