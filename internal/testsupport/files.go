package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteVTT writes a caption file named "<id>.<lang>.vtt" in dir with one cue
// per text line and returns its path.
func WriteVTT(t testing.TB, dir, id, lang string, lines ...string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", dir, err)
	}
	var b strings.Builder
	b.WriteString("WEBVTT\n\n")
	for i, line := range lines {
		b.WriteString("00:00:")
		b.WriteString(twoDigits(i))
		b.WriteString(".000 --> 00:00:")
		b.WriteString(twoDigits(i + 1))
		b.WriteString(".000\n")
		b.WriteString(line)
		b.WriteString("\n\n")
	}
	path := filepath.Join(dir, id+"."+lang+".vtt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func twoDigits(n int) string {
	n %= 60
	return string([]byte{byte('0' + n/10), byte('0' + n%10)})
}
