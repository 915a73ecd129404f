// Package logger provides the analyzer's console logging: timestamped,
// leveled progress output with color on TTYs.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

const (
	levelTrace = iota
	levelDebug
	levelInfo
	levelWarn
	levelError
)

// ConsoleLogger writes timestamped progress lines to a writer with
// level filtering. Color output is enabled automatically when the
// writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    int
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger writing to w. If w is nil,
// messages are silently discarded. Valid levels: trace, debug, info,
// warn, error (case-insensitive); empty or invalid defaults to info.
func NewConsoleLogger(w io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      w,
		logLevel:    parseLevel(logLevel),
		colorOutput: isTerminal(w),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if f != os.Stdout && f != os.Stderr {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

func parseLevel(level string) int {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return levelTrace
	case "debug":
		return levelDebug
	case "warn":
		return levelWarn
	case "error":
		return levelError
	default:
		return levelInfo
	}
}

// Debugf logs a debug-level line.
func (cl *ConsoleLogger) Debugf(format string, args ...interface{}) {
	cl.logf(levelDebug, nil, format, args...)
}

// Infof logs an info-level line.
func (cl *ConsoleLogger) Infof(format string, args ...interface{}) {
	cl.logf(levelInfo, nil, format, args...)
}

// Warnf logs a warning line, colored yellow on TTYs.
func (cl *ConsoleLogger) Warnf(format string, args ...interface{}) {
	cl.logf(levelWarn, color.New(color.FgYellow), format, args...)
}

// Errorf logs an error line, colored red on TTYs.
func (cl *ConsoleLogger) Errorf(format string, args ...interface{}) {
	cl.logf(levelError, color.New(color.FgRed), format, args...)
}

// Successf logs an info-level line, colored green on TTYs. Used for
// completion messages.
func (cl *ConsoleLogger) Successf(format string, args ...interface{}) {
	cl.logf(levelInfo, color.New(color.FgGreen), format, args...)
}

func (cl *ConsoleLogger) logf(level int, c *color.Color, format string, args ...interface{}) {
	if cl.writer == nil || level < cl.logLevel {
		return
	}

	message := fmt.Sprintf(format, args...)
	if cl.colorOutput && c != nil {
		message = c.Sprint(message)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] %s\n", time.Now().Format("15:04:05"), message)
}
