package subtitles

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"strings"

	"ytsum/internal/logging"
)

// timingLine matches lines that begin with an HH:MM:SS timestamp.
var timingLine = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}`)

// Transcript is the cleaned text of a caption file.
type Transcript struct {
	Text string
	// Missing is set when the caption file did not exist.
	Missing bool
}

// ReadTranscript loads path and returns its cleaned text. A missing file is
// logged and reported through Transcript.Missing rather than as an error.
func ReadTranscript(ctx context.Context, path string, logger *slog.Logger) (Transcript, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.WarnWithContext(logging.WithContext(ctx, logging.NewComponentLogger(logger, "subtitles")),
				"subtitle file not found", "subtitle_missing",
				logging.String("subtitle_path", path),
			)
			return Transcript{Missing: true}, nil
		}
		return Transcript{}, fmt.Errorf("read subtitles: %w", err)
	}
	return Transcript{Text: ExtractText(string(data))}, nil
}

// ExtractText drops timing lines and blank lines from content and joins the
// remaining lines with single spaces.
func ExtractText(content string) string {
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if timingLine.MatchString(line) || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, " ")
}
