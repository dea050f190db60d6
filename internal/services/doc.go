// Package services defines shared utilities consumed by the pipeline stages
// and the external integrations under this directory.
//
// It provides context helpers that stamp run, video, and stage identifiers for
// logging, plus sentinel error markers and the Wrap helper so callers can tell
// a missing caption track from a failing yt-dlp binary with errors.Is.
package services
