package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "fetch at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("fetched data", "dataset", "NM_1_1") },
			wantLog: true,
		},
		{
			name:    "cache hit hidden at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("cache hit", "type", "meta") },
			wantLog: false,
		},
		{
			name:    "cache hit shown with --verbose",
			level:   LogDebug,
			logFunc: func(l *log.Logger) { l.Debug("cache hit", "type", "meta") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v: %q", gotLog, tt.wantLog, buf.String())
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))

	prog.done("found datasets", "count", 3, "search", "claimant")

	out := buf.String()
	for _, want := range []string{"found datasets", "count=3", "search=claimant", "took="} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestLoggerFromContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext should return the attached logger")
	}

	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext should fall back to log.Default")
	}
}

func TestDatasetsCommandLogsProgress(t *testing.T) {
	setup(t)

	var logs bytes.Buffer
	c := New(&logs, LogInfo)
	var out bytes.Buffer
	c.Out = &out
	root := c.RootCommand()
	root.SetArgs([]string{"datasets"})
	root.SetOut(&out)
	root.SetErr(&logs)
	if err := root.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("datasets: %v", err)
	}

	if !strings.Contains(logs.String(), "found datasets") || !strings.Contains(logs.String(), "count=1") {
		t.Errorf("logs = %q", logs.String())
	}
}
