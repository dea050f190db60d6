// Package summary turns transcript text into a summary outcome.
//
// Summarize never returns an error. Every result is an Outcome whose Kind
// tells callers whether Text holds a real summary or one of the fixed
// placeholder messages. Empty text and a missing credential are rejected
// before any request leaves the process.
package summary
