package preflight

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"

	"ytsum/internal/config"
	"ytsum/internal/deps"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes all preflight checks for the given config.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result
	results = append(results, CheckBinaries(ctx, cfg)...)
	results = append(results, CheckDirectoryAccess("Subtitle directory", cfg.Paths.SubtitleDir))
	results = append(results, CheckDirectoryAccess("Output directory", filepath.Dir(cfg.Paths.OutputFile)))
	results = append(results, CheckAPIKey(cfg))
	return results
}

// CheckBinaries reports whether the configured yt-dlp binary can be found.
func CheckBinaries(_ context.Context, cfg *config.Config) []Result {
	statuses := deps.CheckBinaries([]deps.Requirement{
		{
			Name:        "yt-dlp",
			Command:     cfg.YTDLP.Binary,
			Description: "Required for video lookup and subtitle download",
		},
	})
	results := make([]Result, 0, len(statuses))
	for _, status := range statuses {
		if status.Available {
			results = append(results, Result{Name: status.Name, Passed: true, Detail: status.Path})
			continue
		}
		detail := status.Detail
		if status.Description != "" {
			detail = fmt.Sprintf("%s (%s)", detail, status.Description)
		}
		results = append(results, Result{Name: status.Name, Passed: status.Optional, Detail: detail})
	}
	return results
}

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	if strings.TrimSpace(path) == "" {
		return Result{Name: name, Detail: "path not configured"}
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckAPIKey reports whether the selected provider has a credential.
// Runs without a key still complete and record placeholder summaries.
func CheckAPIKey(cfg *config.Config) Result {
	name := fmt.Sprintf("API key (%s)", cfg.LLM.Provider)
	if strings.TrimSpace(cfg.LLM.APIKey) == "" {
		return Result{Name: name, Detail: "not set; summaries will be placeholders"}
	}
	source := cfg.APIKeySource
	if source == "" {
		source = "config"
	}
	return Result{Name: name, Passed: true, Detail: "set via " + source}
}
