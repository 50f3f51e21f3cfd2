package main

import (
	"fmt"
	"io"

	"cascade/internal/driver"
	"cascade/internal/observ"
)

// printTimings writes the phase table of a run. Per-file phases are summed
// over workers, so with several jobs they can exceed the "analyze" wall time.
func printTimings(out io.Writer, timer *observ.Timer, summary driver.Summary) {
	if out == nil || timer == nil {
		return
	}
	fmt.Fprint(out, timer.Summary())
	fmt.Fprintf(out, "  %d files, %d cached, %d unreadable\n", summary.Files, summary.Cached, summary.Failed)
}
