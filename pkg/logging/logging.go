// Package logging builds the logrus loggers used by the CLI and the run log.
package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// ConsoleLogger writes text logs to stderr.
func ConsoleLogger(level logrus.Level) *logrus.Logger {
	return newLogger(os.Stderr, level, &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.TimeOnly,
	})
}

// FileLogger opens path for appending, creating parent directories, and
// returns a logger writing LineFormatter lines to it. The caller closes the
// file.
func FileLogger(level logrus.Level, path string) (*os.File, *logrus.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return f, newLogger(f, level, &LineFormatter{}), nil
}

// Nop discards everything.
func Nop() *logrus.Logger {
	return newLogger(io.Discard, logrus.PanicLevel, &logrus.TextFormatter{})
}

func newLogger(w io.Writer, level logrus.Level, f logrus.Formatter) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetLevel(level)
	l.SetFormatter(f)
	return l
}

// LineFormatter renders `[RFC3339] LEVEL message k=v ...` with fields in
// key order.
type LineFormatter struct {
	// Now overrides the entry time, for tests.
	Now func() time.Time
}

func (f *LineFormatter) Format(e *logrus.Entry) ([]byte, error) {
	ts := e.Time
	if f.Now != nil {
		ts = f.Now()
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "[%s] %-5s %s", ts.Format(time.RFC3339), strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := fmt.Sprint(e.Data[k])
		if strings.ContainsAny(v, " \t\"=") {
			v = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(&b, " %s=%s", k, v)
	}
	b.WriteByte('\n')
	return b.Bytes(), nil
}

// ParseLevel maps LOG_LEVEL values, including "silent", to logrus levels.
// Unknown values fall back to info.
func ParseLevel(s string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return logrus.PanicLevel
	case "error":
		return logrus.ErrorLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "debug":
		return logrus.DebugLevel
	case "trace":
		return logrus.TraceLevel
	default:
		return logrus.InfoLevel
	}
}
