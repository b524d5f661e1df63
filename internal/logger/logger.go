// Package logger provides a simple leveled logging utility for the CLI and
// server. Output goes to stderr so generated documentation on stdout stays
// clean.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// Level represents the logging level.
type Level int

const (
	// LevelOff disables info and debug logging; errors still print.
	LevelOff Level = iota
	// LevelInfo shows basic progress information.
	LevelInfo
	// LevelDebug shows detailed debugging information.
	LevelDebug
)

var (
	mu           sync.Mutex
	currentLevel = LevelOff
	out          io.Writer = os.Stderr
	startTime              = time.Now()
)

// SetLevel sets the global logging level and resets the elapsed clock.
func SetLevel(level Level) {
	mu.Lock()
	defer mu.Unlock()
	currentLevel = level
	startTime = time.Now()
}

// SetOutput redirects log output, primarily for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// IsVerbose returns true if info logging is enabled.
func IsVerbose() bool {
	mu.Lock()
	defer mu.Unlock()
	return currentLevel >= LevelInfo
}

// Info logs an informational message (shown with --verbose).
func Info(format string, args ...interface{}) {
	logAt(LevelInfo, "", format, args...)
}

// Debug logs a debug message (shown with --debug).
func Debug(format string, args ...interface{}) {
	logAt(LevelDebug, "[DEBUG] ", format, args...)
}

// Warn logs a recoverable problem, such as a file that failed to parse.
func Warn(format string, args ...interface{}) {
	logAt(LevelOff, "[WARN] ", format, args...)
}

// Error logs an error message. Errors are always shown.
func Error(format string, args ...interface{}) {
	logAt(LevelOff, "[ERROR] ", format, args...)
}

func logAt(min Level, tag, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	if currentLevel < min {
		return
	}
	elapsed := time.Since(startTime).Round(time.Millisecond)
	prefix := fmt.Sprintf("[%s] %s", elapsed, tag)
	fmt.Fprintf(out, prefix+format+"\n", args...)
}
