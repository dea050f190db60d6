// Package ytdlp wraps the yt-dlp command-line tool.
//
// Client.ResolveID reads video metadata without downloading media and returns
// the platform identifier. Client.DownloadAutoSubtitles writes automatically
// generated WebVTT captions into a directory using the "{id}.{lang}.vtt"
// naming scheme that the subtitles package globs for.
//
// Prefer this package over ad-hoc exec.Command usage so the argument lists and
// error classification stay in one place. Tests inject an Executor stub.
package ytdlp
