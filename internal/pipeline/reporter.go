package pipeline

import (
	"fmt"
	"io"

	"ytsum/internal/records"
	"ytsum/internal/summary"
)

// Reporter receives user-facing progress for each video.
type Reporter interface {
	VideoStarted(url string)
	VideoSummarized(url string, outcome summary.Outcome)
	VideoSaved(url, outputPath string)
	VideoFailed(url string, err error)
}

// PlainReporter prints progress as plain text lines.
type PlainReporter struct {
	w io.Writer
}

// NewPlainReporter constructs a reporter writing to w.
func NewPlainReporter(w io.Writer) *PlainReporter {
	return &PlainReporter{w: w}
}

func (r *PlainReporter) VideoStarted(url string) {
	fmt.Fprintf(r.w, "Zpracovávám video: %s\n", url)
}

func (r *PlainReporter) VideoSummarized(_ string, outcome summary.Outcome) {
	fmt.Fprintln(r.w, "Shrnutí:")
	fmt.Fprintln(r.w, outcome.Text)
}

func (r *PlainReporter) VideoSaved(_ string, outputPath string) {
	fmt.Fprintf(r.w, "Shrnutí bylo uloženo do souboru: %s\n", outputPath)
	fmt.Fprintf(r.w, "\n%s\n\n", records.Rule)
}

func (r *PlainReporter) VideoFailed(url string, err error) {
	fmt.Fprintf(r.w, "Zpracování videa %s selhalo: %v\n", url, err)
	fmt.Fprintf(r.w, "\n%s\n\n", records.Rule)
}

type nopReporter struct{}

func (nopReporter) VideoStarted(string) {}
func (nopReporter) VideoSummarized(string, summary.Outcome) {}
func (nopReporter) VideoSaved(string, string) {}
func (nopReporter) VideoFailed(string, error) {}
