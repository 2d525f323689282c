// Package cli implements the nomis command-line interface.
//
// The commands discover datasets, describe their dimensions, resolve
// geographies and build or run data queries against the Nomis API. The
// CLI is built using cobra and logs via charmbracelet/log.
//
// # Commands
//
//   - datasets: List datasets, optionally through an interactive picker
//   - dimensions: Describe a dataset's dimensions and codes
//   - codes: List the codes of one dimension
//   - geo: Browse geographies and build postcode tokens
//   - url, data: Build a query URL or fetch the observations
//   - convert: Re-export a saved table in another format
//   - serve: Expose the client over a JSON API
//   - cache: Manage the HTTP response cache
//
// # Logging
//
// --verbose (-v) turns on debug output, including each upstream request
// and cache hit. The logger travels in the command's context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger writes to w with short wall-clock timestamps ("14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times one step of a command, such as a catalogue fetch.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg at info level with the elapsed time as the "took" field.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "took", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext falls back to log.Default when ctx carries no logger.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
