package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"ytsum/internal/logging"
	"ytsum/internal/records"
	"ytsum/internal/services"
	"ytsum/internal/subtitles"
	"ytsum/internal/summary"
)

// Resolver maps a URL to a video identifier.
type Resolver interface {
	ResolveID(ctx context.Context, url string) (string, error)
}

// SubtitleSource returns the caption file for a video.
type SubtitleSource interface {
	Fetch(ctx context.Context, id, url string) (string, error)
}

// Summarizer produces a summary outcome for transcript text.
type Summarizer interface {
	Summarize(ctx context.Context, text, apiKey string) summary.Outcome
}

// RecordWriter persists summary records.
type RecordWriter interface {
	Append(ctx context.Context, r records.Record) error
	Path() string
}

// Dependencies groups the stage implementations.
type Dependencies struct {
	Resolver   Resolver
	Subtitles  SubtitleSource
	Summarizer Summarizer
	Records    RecordWriter
	Reporter   Reporter
	Logger     *slog.Logger
}

// Options configures a run.
type Options struct {
	APIKey          string
	ContinueOnError bool
}

// Result captures the outcome for one URL.
type Result struct {
	URL          string
	VideoID      string
	SubtitlePath string
	Outcome      summary.Outcome
	Saved        bool
	Err          error
	Elapsed      time.Duration
}

// Failed reports whether the URL was skipped because of an error.
func (r Result) Failed() bool {
	return r.Err != nil
}

// Report summarizes a whole run.
type Report struct {
	RunID   string
	Results []Result
}

// Saved counts records written during the run.
func (r Report) Saved() int {
	n := 0
	for _, res := range r.Results {
		if res.Saved {
			n++
		}
	}
	return n
}

// Failures counts URLs that were skipped.
func (r Report) Failures() int {
	n := 0
	for _, res := range r.Results {
		if res.Failed() {
			n++
		}
	}
	return n
}

// Pipeline runs the per-video stages sequentially.
type Pipeline struct {
	deps     Dependencies
	opts     Options
	logger   *slog.Logger
	newRunID func() string
}

// New constructs a pipeline. Resolver, Subtitles, Summarizer, and Records are required.
func New(deps Dependencies, opts Options) (*Pipeline, error) {
	switch {
	case deps.Resolver == nil:
		return nil, errors.New("pipeline: resolver required")
	case deps.Subtitles == nil:
		return nil, errors.New("pipeline: subtitle source required")
	case deps.Summarizer == nil:
		return nil, errors.New("pipeline: summarizer required")
	case deps.Records == nil:
		return nil, errors.New("pipeline: record writer required")
	}
	if deps.Reporter == nil {
		deps.Reporter = nopReporter{}
	}
	return &Pipeline{
		deps:     deps,
		opts:     opts,
		logger:   logging.NewComponentLogger(deps.Logger, "pipeline"),
		newRunID: uuid.NewString,
	}, nil
}

// Run processes urls in order. Blank entries are ignored. The returned report
// lists every URL attempted, including the one that aborted the run.
func (p *Pipeline) Run(ctx context.Context, urls []string) (Report, error) {
	report := Report{RunID: p.newRunID()}
	ctx = services.WithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)

	cleaned := CleanURLs(urls)
	logger.Info("run started", logging.Int("video_count", len(cleaned)), logging.Bool("continue_on_error", p.opts.ContinueOnError))
	start := time.Now()

	for idx, url := range cleaned {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		res, err := p.processVideo(ctx, url)
		report.Results = append(report.Results, res)
		if err == nil {
			continue
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return report, err
		}
		p.deps.Reporter.VideoFailed(url, err)
		if !p.opts.ContinueOnError || isFatal(err) {
			logging.ErrorWithContext(logger, "run aborted", "run_aborted",
				logging.String("url", url),
				logging.Int("video_index", idx+1),
				logging.Error(err),
			)
			return report, fmt.Errorf("process %s: %w", url, err)
		}
		logging.WarnWithContext(logger, "video skipped", "video_skipped",
			logging.String("url", url),
			logging.String("failure_kind", services.FailureKind(err)),
			logging.Error(err),
			logging.String(logging.FieldImpact, "no record written for this video"),
		)
	}

	logger.Info("run finished",
		logging.Int("saved", report.Saved()),
		logging.Int("failed", report.Failures()),
		logging.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
	)
	return report, nil
}

func (p *Pipeline) processVideo(ctx context.Context, url string) (res Result, err error) {
	res.URL = url
	start := time.Now()
	defer func() { res.Elapsed = time.Since(start) }()

	p.deps.Reporter.VideoStarted(url)

	id, err := p.deps.Resolver.ResolveID(services.WithStage(ctx, "resolve"), url)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.VideoID = id
	ctx = services.WithVideoID(ctx, id)

	path, err := p.deps.Subtitles.Fetch(services.WithStage(ctx, "fetch"), id, url)
	if err != nil {
		res.Err = err
		return res, err
	}
	res.SubtitlePath = path

	extractCtx := services.WithStage(ctx, "extract")
	transcript, err := subtitles.ReadTranscript(extractCtx, path, p.deps.Logger)
	if err != nil {
		logging.WarnWithContext(logging.WithContext(extractCtx, p.logger), "subtitle file unreadable", "subtitle_unreadable",
			logging.String("subtitle_path", path),
			logging.Error(err),
		)
		transcript = subtitles.Transcript{}
	}

	res.Outcome = p.deps.Summarizer.Summarize(services.WithStage(ctx, "summarize"), transcript.Text, p.opts.APIKey)
	p.deps.Reporter.VideoSummarized(url, res.Outcome)

	saveCtx := services.WithStage(ctx, "save")
	if err := p.deps.Records.Append(saveCtx, records.Record{URL: url, Summary: res.Outcome.Text}); err != nil {
		res.Err = fmt.Errorf("%w: %w", errRecordWrite, err)
		return res, res.Err
	}
	res.Saved = true
	p.deps.Reporter.VideoSaved(url, p.deps.Records.Path())
	logging.WithContext(saveCtx, p.logger).Info("video processed",
		logging.String("summary_kind", string(res.Outcome.Kind)),
		logging.String("output_file", p.deps.Records.Path()),
	)
	return res, nil
}

var errRecordWrite = errors.New("write record")

// isFatal reports errors that stop the run even with ContinueOnError.
func isFatal(err error) bool {
	return errors.Is(err, errRecordWrite) || errors.Is(err, services.ErrConfiguration)
}

// CleanURLs trims whitespace and drops empty entries, preserving order.
func CleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, url := range urls {
		if trimmed := strings.TrimSpace(url); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// SplitURLs splits a comma-separated URL list.
func SplitURLs(value string) []string {
	return CleanURLs(strings.Split(value, ","))
}
