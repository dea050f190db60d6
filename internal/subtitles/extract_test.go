package subtitles_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"ytsum/internal/logging"
	"ytsum/internal/subtitles"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "drops timing and blank lines",
			content: "00:00:01.000 --> 00:00:02.000\nHello world\n\nfoo",
			want:    "Hello world foo",
		},
		{
			name:    "timing and blank only",
			content: "00:00:01.000 --> 00:00:02.000\n\n   \n00:00:03.000 --> 00:00:04.000\n",
			want:    "",
		},
		{
			name:    "empty input",
			content: "",
			want:    "",
		},
		{
			name:    "header and markup pass through",
			content: "WEBVTT\nKind: captions\n\n00:00:00.000 --> 00:00:01.000 align:start\nhi <c>there</c>",
			want:    "WEBVTT Kind: captions hi <c>there</c>",
		},
		{
			name:    "crlf line endings",
			content: "00:00:01.000 --> 00:00:02.000\r\nline one\r\n\r\nline two\r\n",
			want:    "line one line two",
		},
		{
			name:    "lines keep inner whitespace",
			content: "  padded  \nnext",
			want:    "  padded   next",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := subtitles.ExtractText(tt.content); got != tt.want {
				t.Fatalf("ExtractText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadTranscriptMissingFile(t *testing.T) {
	transcript, err := subtitles.ReadTranscript(context.Background(), filepath.Join(t.TempDir(), "nope.en.vtt"), logging.NewNop())
	if err != nil {
		t.Fatalf("ReadTranscript returned error: %v", err)
	}
	if !transcript.Missing || transcript.Text != "" {
		t.Fatalf("expected missing transcript, got %+v", transcript)
	}
}

func TestReadTranscriptReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "abc.en.vtt")
	if err := os.WriteFile(path, []byte("WEBVTT\n\n00:00:01.000 --> 00:00:02.000\nAhoj světe\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	transcript, err := subtitles.ReadTranscript(context.Background(), path, nil)
	if err != nil {
		t.Fatalf("ReadTranscript returned error: %v", err)
	}
	if transcript.Missing || transcript.Text != "WEBVTT Ahoj světe" {
		t.Fatalf("unexpected transcript %+v", transcript)
	}
}
