// Package gemini adapts the Google Gen AI SDK to the same Complete contract the
// OpenAI-compatible llm client offers, so the summarizer can switch providers
// through configuration alone.
package gemini
