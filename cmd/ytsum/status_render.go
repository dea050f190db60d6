package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"

	"ytsum/internal/pipeline"
	"ytsum/internal/records"
	"ytsum/internal/summary"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

// shouldColorize reports whether w is an interactive terminal and NO_COLOR is unset.
func shouldColorize(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// consoleReporter prints per-video progress lines, optionally colored.
type consoleReporter struct {
	w        io.Writer
	colorize bool
}

var _ pipeline.Reporter = (*consoleReporter)(nil)

func newConsoleReporter(w io.Writer, colorize bool) *consoleReporter {
	return &consoleReporter{w: w, colorize: colorize}
}

func (r *consoleReporter) paint(kind statusKind, line string) string {
	if !r.colorize {
		return line
	}
	if color := statusKindColor(kind); color != "" {
		return color + line + ansiReset
	}
	return line
}

func (r *consoleReporter) VideoStarted(url string) {
	fmt.Fprintln(r.w, r.paint(statusInfo, "Zpracovávám video: "+url))
}

func (r *consoleReporter) VideoSummarized(_ string, outcome summary.Outcome) {
	fmt.Fprintln(r.w, "Shrnutí:")
	if outcome.OK() {
		fmt.Fprintln(r.w, outcome.Text)
		return
	}
	fmt.Fprintln(r.w, r.paint(statusWarn, outcome.Text))
}

func (r *consoleReporter) VideoSaved(_ string, outputPath string) {
	fmt.Fprintln(r.w, r.paint(statusOK, "Shrnutí bylo uloženo do souboru: "+outputPath))
	fmt.Fprintf(r.w, "\n%s\n\n", records.Rule)
}

func (r *consoleReporter) VideoFailed(url string, err error) {
	fmt.Fprintln(r.w, r.paint(statusError, fmt.Sprintf("Zpracování videa %s selhalo: %v", url, err)))
	fmt.Fprintf(r.w, "\n%s\n\n", records.Rule)
}

// Finish prints a one-line run summary with the output file size.
func (r *consoleReporter) Finish(report pipeline.Report, outputPath string, elapsed time.Duration) {
	if len(report.Results) == 0 {
		return
	}
	kind := statusOK
	if report.Failures() > 0 {
		kind = statusWarn
	}
	size := "n/a"
	if info, err := os.Stat(outputPath); err == nil {
		size = humanize.Bytes(uint64(info.Size()))
	}
	line := fmt.Sprintf("Hotovo: %d uloženo, %d selhalo za %s (%s, %s)",
		report.Saved(),
		report.Failures(),
		elapsed.Round(100*time.Millisecond),
		outputPath,
		size,
	)
	fmt.Fprintln(r.w, r.paint(kind, line))
}
