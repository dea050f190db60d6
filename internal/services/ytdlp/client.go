package ytdlp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"ytsum/internal/services"
)

// Executor abstracts command execution for testability. Run executes binary
// with args inside dir (empty means the current directory) and returns stdout.
type Executor interface {
	Run(ctx context.Context, dir, binary string, args []string) ([]byte, error)
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithSubLangs restricts subtitle downloads to the given language selectors.
func WithSubLangs(langs []string) Option {
	return func(c *Client) {
		c.subLangs = append([]string(nil), langs...)
	}
}

// WithExtraArgs appends arguments to every yt-dlp invocation.
func WithExtraArgs(args []string) Option {
	return func(c *Client) {
		c.extraArgs = append([]string(nil), args...)
	}
}

// Client wraps yt-dlp CLI interactions.
type Client struct {
	binary    string
	subLangs  []string
	extraArgs []string
	exec      Executor
}

// New constructs a yt-dlp client.
func New(binary string, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, errors.New("yt-dlp binary required")
	}
	client := &Client{binary: binary, exec: commandExecutor{}}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

type videoInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ResolveID returns the platform identifier for url without downloading media.
func (c *Client) ResolveID(ctx context.Context, url string) (string, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", services.Wrap(services.ErrValidation, "resolve", "yt-dlp", "url required", nil)
	}
	args := []string{"--skip-download", "--no-playlist", "--no-warnings", "--dump-single-json"}
	args = append(args, c.extraArgs...)
	args = append(args, url)

	out, err := c.exec.Run(ctx, "", c.binary, args)
	if err != nil {
		return "", services.Wrap(services.ErrExternalTool, "resolve", "yt-dlp", "metadata probe failed for "+url, err)
	}
	var info videoInfo
	if err := json.Unmarshal(bytes.TrimSpace(out), &info); err != nil {
		return "", services.Wrap(services.ErrValidation, "resolve", "yt-dlp", "decode metadata", err)
	}
	id := strings.TrimSpace(info.ID)
	if id == "" {
		return "", services.Wrap(services.ErrValidation, "resolve", "yt-dlp", "metadata missing id for "+url, nil)
	}
	return id, nil
}

// DownloadAutoSubtitles asks yt-dlp to write automatic WebVTT captions for url
// into dir. A video without captions is not an error here; callers check the
// directory afterwards.
func (c *Client) DownloadAutoSubtitles(ctx context.Context, url, dir string) error {
	args := []string{"--write-auto-subs", "--sub-format", "vtt", "--skip-download", "--no-playlist"}
	if len(c.subLangs) > 0 {
		args = append(args, "--sub-langs", strings.Join(c.subLangs, ","))
	}
	args = append(args, "-o", "%(id)s.%(ext)s")
	args = append(args, c.extraArgs...)
	args = append(args, url)

	if _, err := c.exec.Run(ctx, dir, c.binary, args); err != nil {
		return services.Wrap(services.ErrExternalTool, "fetch", "yt-dlp", "subtitle download failed for "+url, err)
	}
	return nil
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, dir, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	cmd.Dir = dir
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return stdout.Bytes(), fmt.Errorf("%w: %s", err, msg)
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}
