package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"ytsum/internal/config"
	"ytsum/internal/feeds"
	"ytsum/internal/logging"
	"ytsum/internal/pipeline"
	"ytsum/internal/records"
	"ytsum/internal/services/ytdlp"
	"ytsum/internal/subtitles"
	"ytsum/internal/summary"
)

var errMissingURL = errors.New(`required flag(s) "URL" not set`)

type runOptions struct {
	urls            string
	apiKey          string
	feeds           []string
	feedLimit       int
	output          string
	continueOnError bool
}

func (o *runOptions) hasInput() bool {
	return strings.TrimSpace(o.urls) != "" || len(o.feeds) > 0
}

// bindRunFlags registers the run flags on cmd. --urls and --api-key are
// aliases for --URL and --APIKEY.
func bindRunFlags(cmd *cobra.Command, opts *runOptions) {
	flags := cmd.Flags()
	flags.StringVar(&opts.urls, "URL", "", "Comma-separated video URLs")
	flags.StringVar(&opts.urls, "urls", "", "Alias for --URL")
	flags.StringVar(&opts.apiKey, "APIKEY", "", "Completion API key (overrides config and environment)")
	flags.StringVar(&opts.apiKey, "api-key", "", "Alias for --APIKEY")
	flags.StringArrayVar(&opts.feeds, "feed", nil, "Channel or playlist feed to expand (URL, channel:<id>, playlist:<id>); repeatable")
	flags.IntVar(&opts.feedLimit, "feed-limit", 0, "Maximum videos taken from each feed (0 = all)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (overrides paths.output_file)")
	flags.BoolVar(&opts.continueOnError, "continue-on-error", false, "Skip videos whose id or subtitles cannot be obtained")
}

func newRunCommand(ctx *commandContext) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Summarize the given videos and append the results to the output file",
		Example: `  ytsum run --URL "https://www.youtube.com/watch?v=abc,https://youtu.be/def" --APIKEY sk-...
  ytsum run --feed channel:UC_x5XG1OV2P6uZZ5FSM9Ttw --feed-limit 3`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !opts.hasInput() {
				return errMissingURL
			}
			return executeRun(cmd, ctx, opts)
		},
	}
	bindRunFlags(cmd, opts)
	return cmd
}

func executeRun(cmd *cobra.Command, ctx *commandContext, opts *runOptions) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	if err := applyRunOverrides(cmd, cfg, opts); err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	logger, err := ctx.logger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	runCtx := cmd.Context()

	urls := pipeline.SplitURLs(opts.urls)
	if len(opts.feeds) > 0 {
		expander := feeds.NewExpander(feeds.WithLimit(opts.feedLimit))
		for _, ref := range opts.feeds {
			entries, err := expander.Expand(runCtx, ref)
			if err != nil {
				return fmt.Errorf("expand feed %s: %w", ref, err)
			}
			logger.Info("feed expanded", logging.String("feed", ref), logging.Int("video_count", len(entries)))
			urls = append(urls, feeds.URLs(entries)...)
		}
	}
	if len(urls) == 0 {
		return errors.New("no video URLs to process")
	}

	resolver, err := ytdlp.New(cfg.YTDLP.Binary,
		ytdlp.WithSubLangs(cfg.YTDLP.SubLangs),
		ytdlp.WithExtraArgs(cfg.YTDLP.ExtraArgs),
	)
	if err != nil {
		return err
	}
	logger.Debug("credential resolved", logging.String("api_key_source", apiKeySource(cfg)))

	out := cmd.OutOrStdout()
	reporter := newConsoleReporter(out, shouldColorize(out))
	p, err := pipeline.New(pipeline.Dependencies{
		Resolver:   resolver,
		Subtitles:  subtitles.NewFetcher(cfg.Paths.SubtitleDir, resolver, logger),
		Summarizer: summary.NewFromConfig(cfg, logger),
		Records:    records.NewStore(cfg.Paths.OutputFile, logger),
		Reporter:   reporter,
		Logger:     logger,
	}, pipeline.Options{
		APIKey:          cfg.LLM.APIKey,
		ContinueOnError: cfg.Pipeline.ContinueOnError,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	report, runErr := p.Run(runCtx, urls)
	reporter.Finish(report, cfg.Paths.OutputFile, time.Since(start))
	return runErr
}

func applyRunOverrides(cmd *cobra.Command, cfg *config.Config, opts *runOptions) error {
	cfg.OverrideAPIKey(opts.apiKey)
	if output := strings.TrimSpace(opts.output); output != "" {
		expanded, err := config.ExpandPath(output)
		if err != nil {
			return fmt.Errorf("resolve output path: %w", err)
		}
		cfg.Paths.OutputFile = expanded
	}
	if cmd.Flags().Changed("continue-on-error") {
		cfg.Pipeline.ContinueOnError = opts.continueOnError
	}
	return nil
}

func apiKeySource(cfg *config.Config) string {
	if cfg.APIKeySource == "" {
		return "none"
	}
	return cfg.APIKeySource
}
