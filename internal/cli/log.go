// Package cli implements the qsnap command-line interface.
//
// The commands load a metric table (dataset JSON or an Excel workbook with a
// TOML metadata file), run it through the pipeline and write the rendered
// charts next to each other, named after the chart title.
//
// # Commands
//
//   - bar, radar, flow: draw one chart kind from an input file
//   - render: re-render a saved JSON layout in other formats or sizes
//   - inspect: print the reconciled percentage labels as a table
//   - convert: write a workbook and its metadata as one dataset JSON file
//   - cache: clear the artifact cache or print its location
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// traces every pipeline stage and cache lookup. Results go to stdout and
// logs to stderr, so piping the output of "cache path" stays clean.
package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with
// elapsed duration. It is not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded 5 categories (12ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}
