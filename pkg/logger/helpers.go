package logger

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"
)

// sampleLimit bounds the username sample printed per page
const sampleLimit = 45

// Sample joins usernames for a progress line, truncated to a readable width
func Sample(usernames []string) string {
	out := ""
	for i, u := range usernames {
		if i > 0 {
			out += ", "
		}
		out += u
		if len(out) > sampleLimit {
			n := sampleLimit
			for n > 0 && !utf8.RuneStart(out[n]) {
				n--
			}
			return out[:n] + "..."
		}
	}
	return out
}

// LogPage logs one fetched page of a cycle
func LogPage(l Logger, cycle, page, unique int, usernames []string) {
	l.InfoWithFields("page fetched", map[string]interface{}{
		"cycle":        cycle,
		"page":         page,
		"page_users":   len(usernames),
		"cycle_unique": unique,
		"sample":       Sample(usernames),
	})
}

// LogCycleStatus logs the outcome of a merge into the master set
func LogCycleStatus(l Logger, cycle, cycleUnique, added, total, target int) {
	l.InfoWithFields("cycle status", map[string]interface{}{
		"cycle":        cycle,
		"cycle_unique": cycleUnique,
		"new_added":    added,
		"total":        total,
		"target":       target,
	})
}

// NewNopLogger creates a no-operation logger for testing
func NewNopLogger() Logger {
	return &nopLogger{}
}

// nopLogger is a logger that does nothing
type nopLogger struct{}

func (n *nopLogger) Debug(msg string)                                          {}
func (n *nopLogger) Info(msg string)                                           {}
func (n *nopLogger) Warn(msg string)                                           {}
func (n *nopLogger) Error(msg string)                                          {}
func (n *nopLogger) WithField(key string, value interface{}) Logger            { return n }
func (n *nopLogger) WithFields(fields map[string]interface{}) Logger           { return n }
func (n *nopLogger) WithError(err error) Logger                                { return n }
func (n *nopLogger) WithContext(ctx context.Context) Logger                    { return n }
func (n *nopLogger) DebugWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) InfoWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) WarnWithFields(msg string, fields map[string]interface{})  {}
func (n *nopLogger) ErrorWithFields(msg string, fields map[string]interface{}) {}
func (n *nopLogger) GetZerolog() *zerolog.Logger                               { return nil }
