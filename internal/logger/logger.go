package logger

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

// Level is the verbosity selected with -v flags.
type Level int

const (
	// LevelQuiet hides everything but errors and warnings.
	LevelQuiet Level = -1
	// LevelNormal shows info, warnings and errors.
	LevelNormal Level = 0
	// LevelVerbose adds -v output.
	LevelVerbose Level = 1
	// LevelDebug adds -vv output.
	LevelDebug Level = 2
)

var (
	infoColor  = color.New(color.FgGreen)
	verbColor  = color.New(color.FgCyan)
	debugColor = color.New(color.FgHiBlack)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
)

// Logger writes prefixed lines to stderr. It is safe for concurrent use.
type Logger struct {
	level Level
	out   io.Writer
	mu    sync.Mutex
}

// New returns a Logger writing to stderr.
func New(level Level) *Logger {
	return &Logger{level: level, out: os.Stderr}
}

// NewWithWriter returns a Logger writing to w.
func NewWithWriter(level Level, w io.Writer) *Logger {
	return &Logger{level: level, out: w}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return &Logger{level: LevelQuiet, out: io.Discard}
}

// Level returns the configured verbosity.
func (l *Logger) Level() Level { return l.level }

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	if l.level >= LevelNormal {
		l.write(infoColor, "[+]", format, args...)
	}
}

// V logs at -v.
func (l *Logger) V(format string, args ...any) {
	if l.level >= LevelVerbose {
		l.write(verbColor, "[*]", format, args...)
	}
}

// VV logs at -vv.
func (l *Logger) VV(format string, args ...any) {
	if l.level >= LevelDebug {
		l.write(debugColor, "[VV]", format, args...)
	}
}

// Warn logs a warning. Always shown.
func (l *Logger) Warn(format string, args ...any) {
	l.write(warnColor, "[-]", format, args...)
}

// Error logs an error. Always shown.
func (l *Logger) Error(format string, args ...any) {
	l.write(errColor, "[!]", format, args...)
}

func (l *Logger) write(c *color.Color, tag, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s\n", c.Sprint(tag), fmt.Sprintf(format, args...))
}
