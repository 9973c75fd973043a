package main

import (
	"fmt"
	"io"

	"knitchart/internal/observ"
)

func printTimings(out io.Writer, timer *observ.Timer, cached bool) {
	if out == nil || timer == nil {
		return
	}
	summary := timer.Summary()
	if cached {
		summary += "  (served from disk cache)\n"
	}
	fmt.Fprint(out, summary)
}
