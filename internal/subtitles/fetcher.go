package subtitles

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"ytsum/internal/logging"
	"ytsum/internal/services"
)

// ErrSubtitlesNotFound reports that no caption file exists after a download attempt.
var ErrSubtitlesNotFound = fmt.Errorf("subtitles unavailable: %w", services.ErrNotFound)

// Downloader fetches automatic captions for url into dir.
type Downloader interface {
	DownloadAutoSubtitles(ctx context.Context, url, dir string) error
}

// Fetcher resolves the caption file for a video, downloading it when absent.
type Fetcher struct {
	dir        string
	downloader Downloader
	logger     *slog.Logger
}

// NewFetcher constructs a fetcher rooted at dir.
func NewFetcher(dir string, downloader Downloader, logger *slog.Logger) *Fetcher {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	return &Fetcher{
		dir:        dir,
		downloader: downloader,
		logger:     logging.NewComponentLogger(logger, "subtitles"),
	}
}

// Dir reports the directory searched for caption files.
func (f *Fetcher) Dir() string {
	return f.dir
}

// Fetch returns the path of the caption file for id. An existing file wins
// without contacting the downloader.
func (f *Fetcher) Fetch(ctx context.Context, id, url string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", services.Wrap(services.ErrValidation, "fetch", "subtitles", "video id required", nil)
	}
	logger := logging.WithContext(ctx, f.logger)

	path, err := f.Find(id)
	if err != nil {
		return "", err
	}
	if path != "" {
		logger.Info("subtitle file reused",
			logging.Args(append(logging.DecisionAttrs("subtitle_cache", "hit", "existing file found"),
				logging.String("subtitle_path", path),
				logging.String("subtitle_size", fileSize(path)),
			)...)...)
		return path, nil
	}

	logger.Info("downloading automatic subtitles",
		logging.Args(append(logging.DecisionAttrs("subtitle_cache", "miss", "no file for video"),
			logging.String("url", url),
			logging.String("subtitle_dir", f.dir),
		)...)...)
	if f.downloader == nil {
		return "", services.Wrap(services.ErrConfiguration, "fetch", "subtitles", "no downloader configured", nil)
	}
	if err := f.downloader.DownloadAutoSubtitles(ctx, url, f.dir); err != nil {
		return "", err
	}

	path, err = f.Find(id)
	if err != nil {
		return "", err
	}
	if path == "" {
		return "", fmt.Errorf("video %s: %w", id, ErrSubtitlesNotFound)
	}
	logger.Info("subtitle file downloaded",
		logging.String("subtitle_path", path),
		logging.String("subtitle_size", fileSize(path)),
	)
	return path, nil
}

// Find returns the lexically first "{id}.*.vtt" file in the directory, or ""
// when none exists.
func (f *Fetcher) Find(id string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(f.dir, globEscape(id)+".*.vtt"))
	if err != nil {
		return "", services.Wrap(services.ErrValidation, "fetch", "subtitles", "glob pattern", err)
	}
	if len(matches) == 0 {
		return "", nil
	}
	sort.Strings(matches)
	return matches[0], nil
}

// globEscape neutralizes glob metacharacters that may appear in identifiers.
func globEscape(value string) string {
	var b strings.Builder
	for _, r := range value {
		switch r {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

func fileSize(path string) string {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "missing"
		}
		return "unknown"
	}
	return humanize.Bytes(uint64(info.Size()))
}
