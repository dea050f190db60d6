// Package pipeline drives the per-video stages over a list of URLs.
//
// For every URL in order the pipeline resolves the video identifier, locates
// or downloads caption files, extracts transcript text, requests a summary,
// prints progress, and appends a record. Resolution and subtitle failures stop
// the run unless ContinueOnError is set. Summary failures never stop it; the
// placeholder text is recorded instead. Processing is sequential.
package pipeline
