package records

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"ytsum/internal/logging"
)

const (
	urlPrefix     = "URL: "
	summaryHeader = "Shrnutí:"
	lockRetry     = 50 * time.Millisecond
)

// Rule is the separator line written after every record.
var Rule = strings.Repeat("=", 50)

// recordSeparator follows each summary body.
var recordSeparator = "\n\n" + Rule + "\n\n"

// Record is one stored summary.
type Record struct {
	URL     string `json:"url"`
	Summary string `json:"summary"`
}

// Format renders r exactly as it is appended to the output file.
func Format(r Record) string {
	var b strings.Builder
	b.WriteString(urlPrefix)
	b.WriteString(r.URL)
	b.WriteByte('\n')
	b.WriteString(summaryHeader)
	b.WriteByte('\n')
	b.WriteString(r.Summary)
	b.WriteString(recordSeparator)
	return b.String()
}

// Store appends records to a single output file.
type Store struct {
	path   string
	logger *slog.Logger
}

// NewStore constructs a store for path.
func NewStore(path string, logger *slog.Logger) *Store {
	return &Store{path: path, logger: logging.NewComponentLogger(logger, "records")}
}

// Path reports the output file location.
func (s *Store) Path() string {
	return s.path
}

// Append writes r to the end of the output file, creating it when absent.
func (s *Store) Append(ctx context.Context, r Record) error {
	if strings.TrimSpace(s.path) == "" {
		return errors.New("records: output path required")
	}
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("records: ensure directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("records: open output: %w", err)
	}

	lock := flock.New(s.path)
	ok, err := lock.TryLockContext(ctx, lockRetry)
	if err != nil {
		_ = file.Close()
		return fmt.Errorf("records: acquire lock: %w", err)
	}
	if !ok {
		_ = file.Close()
		return errors.New("records: output file is locked by another process")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn("failed to release output lock", logging.Error(err))
		}
	}()

	if _, err := file.WriteString(Format(r)); err != nil {
		_ = file.Close()
		return fmt.Errorf("records: write: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("records: close output: %w", err)
	}
	logging.WithContext(ctx, s.logger).Debug("record appended",
		logging.String("output_file", s.path),
		logging.String("url", r.URL),
	)
	return nil
}

// Read parses every record in the output file. A missing file yields no records.
func (s *Store) Read() ([]Record, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("records: read: %w", err)
	}
	return Parse(string(data)), nil
}

// Parse splits content written by Format back into records. Text preceding a
// URL line within a block is ignored, as are blocks without one.
func Parse(content string) []Record {
	var out []Record
	for _, block := range strings.Split(content, recordSeparator) {
		if !strings.HasPrefix(block, urlPrefix) {
			idx := strings.Index(block, "\n"+urlPrefix)
			if idx < 0 {
				continue
			}
			block = block[idx+1:]
		}
		head, body, found := strings.Cut(block, "\n")
		if !found {
			continue
		}
		r := Record{URL: strings.TrimPrefix(head, urlPrefix)}
		if rest, ok := strings.CutPrefix(body, summaryHeader+"\n"); ok {
			r.Summary = rest
		} else {
			r.Summary = body
		}
		out = append(out, r)
	}
	return out
}
