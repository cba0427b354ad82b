// Package logging is the leveled logger shared by the chart packages, the CLI and the viewer.
//
// Package-level helpers log without a component; For returns a Logger that
// tags every line with its component:
//
//	[ERROR] [widget] destroy callsCount chart: canvas gone
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
	"time"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var levelTags = [...]string{LevelDebug: "DEBUG", LevelInfo: "INFO", LevelWarn: "WARN", LevelError: "ERROR"}

func (l Level) String() string {
	if l < LevelDebug || l > LevelError {
		return levelTags[LevelInfo]
	}
	return levelTags[l]
}

// ParseLevel maps a level name (debug, info, warn or warning, error) to a Level.
func ParseLevel(s string) (Level, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "warning") {
		return LevelWarn, true
	}
	for l, tag := range levelTags {
		if strings.EqualFold(s, tag) {
			return Level(l), true
		}
	}
	return LevelInfo, false
}

var (
	level      atomic.Int32
	baseLogger = log.New(os.Stderr, "", log.Ldate|log.Ltime|log.Lmicroseconds)
)

func init() { level.Store(int32(LevelInfo)) }

// SetLogLevel parses and sets the global log level. Unknown names leave the
// level unchanged and report false.
func SetLogLevel(s string) bool {
	l, ok := ParseLevel(s)
	if ok {
		level.Store(int32(l))
	}
	return ok
}

// GetLogLevel returns the current global log level.
func GetLogLevel() Level { return Level(level.Load()) }

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool { return GetLogLevel() <= l }

// SetOutput redirects log output (tests capture it this way).
func SetOutput(w io.Writer) { baseLogger.SetOutput(w) }

// Logger writes lines tagged with a component name.
type Logger struct {
	component string
}

// For returns the logger of component.
func For(component string) Logger { return Logger{component: component} }

func (lg Logger) logf(l Level, format string, args ...interface{}) {
	if !Enabled(l) {
		return
	}
	// A message without args is printed as is so that a literal % in an
	// already formatted string does not turn into %!x(MISSING).
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	if lg.component != "" {
		baseLogger.Printf("[%s] [%s] %s", l, lg.component, msg)
		return
	}
	baseLogger.Printf("[%s] %s", l, msg)
}

func (lg Logger) Debugf(format string, a ...interface{}) { lg.logf(LevelDebug, format, a...) }
func (lg Logger) Infof(format string, a ...interface{})  { lg.logf(LevelInfo, format, a...) }
func (lg Logger) Warnf(format string, a ...interface{})  { lg.logf(LevelWarn, format, a...) }
func (lg Logger) Errorf(format string, a ...interface{}) { lg.logf(LevelError, format, a...) }

// TimeTrack logs the duration of a phase at debug level.
//
//	defer log.TimeTrack(time.Now(), "render charts")
func (lg Logger) TimeTrack(start time.Time, phase string) {
	if Enabled(LevelDebug) {
		lg.Debugf("%s took %s", phase, time.Since(start).Round(time.Microsecond))
	}
}

var std Logger

func Debugf(format string, a ...interface{}) { std.logf(LevelDebug, format, a...) }
func Infof(format string, a ...interface{})  { std.logf(LevelInfo, format, a...) }
func Warnf(format string, a ...interface{})  { std.logf(LevelWarn, format, a...) }
func Errorf(format string, a ...interface{}) { std.logf(LevelError, format, a...) }

// TimeTrack is Logger.TimeTrack without a component.
func TimeTrack(start time.Time, phase string) { std.TimeTrack(start, phase) }
