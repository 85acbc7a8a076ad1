// Package reporter renders invocation outcomes for humans: a plain text
// writer for one-shot runs and scripted use, and a live terminal display
// for watch mode.
package reporter

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ppiankov/funcbridge/internal/history"
)

const (
	colorReset = "\033[0m"
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorDim   = "\033[2m"
)

// TextReporter writes human-readable output to a writer.
type TextReporter struct {
	w     io.Writer
	color bool
}

// NewTextReporter creates a text reporter.
// If w is nil, defaults to os.Stdout. color enables ANSI codes.
func NewTextReporter(w io.Writer, color bool) *TextReporter {
	if w == nil {
		w = os.Stdout
	}
	return &TextReporter{w: w, color: color}
}

// PrintInvocation writes a one-line summary of a finished invocation.
func (r *TextReporter) PrintInvocation(rec *history.Record) {
	mark, col := "✓", colorGreen
	if rec.State != history.StateCompleted {
		mark, col = "✗", colorRed
	}
	line := fmt.Sprintf("%s %s (%s)", mark, rec.Component, rec.Duration.Truncate(time.Millisecond))
	if rec.Error != "" {
		line += ": " + rec.Error
	}
	fmt.Fprintln(r.w, r.paint(col, line))
}

// PrintHistory writes a table of past invocations, newest first.
func (r *TextReporter) PrintHistory(records []*history.Record) {
	if len(records) == 0 {
		fmt.Fprintln(r.w, "no invocations recorded")
		return
	}

	fmt.Fprintf(r.w, "%-20s  %-16s  %-10s  %-10s  %s\n", "STARTED", "COMPONENT", "STATE", "DURATION", "ERROR")
	for _, rec := range records {
		col := colorGreen
		if rec.State != history.StateCompleted {
			col = colorRed
		}
		fmt.Fprintf(r.w, "%-20s  %-16s  %-10s  %-10s  %s\n",
			r.paint(colorDim, rec.StartedAt.Format("2006-01-02 15:04:05")),
			rec.Component,
			r.paint(col, rec.State),
			rec.Duration.Truncate(time.Millisecond),
			rec.Error,
		)
	}
}

func (r *TextReporter) paint(color, s string) string {
	if !r.color {
		return s
	}
	return color + s + colorReset
}
