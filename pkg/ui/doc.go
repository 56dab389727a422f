// Package ui prints the human-facing console messages of the CLI: the
// banner, run and diff summaries, and colored status lines. Structured
// progress goes through the logger instead.
package ui
