// Package subtitles locates automatic caption files for a video and reduces
// them to plain transcript text.
//
// Fetcher reuses an existing "{id}.*.vtt" file from the subtitle directory and
// only asks its Downloader for new captions when none is present. Files are
// never overwritten or removed. ReadTranscript and ExtractText drop timing
// lines and blank lines and join what remains with single spaces; cue markup,
// cue identifiers, and the WEBVTT header are passed through unchanged.
package subtitles
