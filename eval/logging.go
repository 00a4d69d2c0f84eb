package eval

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/lyraproj/issue/issue"
)

type (
	LogLevel string

	Logger interface {
		Log(level LogLevel, args ...Value)

		Logf(level LogLevel, format string, args ...interface{})

		LogIssue(issue issue.Reported)
	}

	stdlog struct {
		lock sync.Mutex
		out  io.Writer
		err  io.Writer
	}

	LogEntry struct {
		level   LogLevel
		message string
	}

	ArrayLogger struct {
		lock    sync.Mutex
		entries []*LogEntry
	}
)

const (
	ALERT   = LogLevel(`alert`)
	CRIT    = LogLevel(`crit`)
	DEBUG   = LogLevel(`debug`)
	EMERG   = LogLevel(`emerg`)
	ERR     = LogLevel(`err`)
	INFO    = LogLevel(`info`)
	NOTICE  = LogLevel(`notice`)
	WARNING = LogLevel(`warning`)
)

var LOG_LEVELS = []LogLevel{ALERT, CRIT, DEBUG, EMERG, ERR, INFO, NOTICE, WARNING}

// IsLogLevel returns true if the given string is the name of a log level.
func IsLogLevel(s string) bool {
	for _, l := range LOG_LEVELS {
		if string(l) == s {
			return true
		}
	}
	return false
}

func NewStdLogger() Logger {
	return NewWriterLogger(os.Stdout, os.Stderr)
}

// NewWriterLogger returns a logger that writes debug, info and notice
// messages to out and all other messages to err.
func NewWriterLogger(out, err io.Writer) Logger {
	return &stdlog{out: out, err: err}
}

func (l *stdlog) Log(level LogLevel, args ...Value) {
	l.lock.Lock()
	defer l.lock.Unlock()
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	for _, arg := range args {
		ToString3(arg, w)
	}
	fmt.Fprintln(w)
}

func (l *stdlog) Logf(level LogLevel, format string, args ...interface{}) {
	l.lock.Lock()
	defer l.lock.Unlock()
	w := l.writerFor(level)
	fmt.Fprintf(w, `%s: `, level)
	fmt.Fprintf(w, format, args...)
	fmt.Fprintln(w)
}

func (l *stdlog) writerFor(level LogLevel) io.Writer {
	switch level {
	case DEBUG, INFO, NOTICE:
		return l.out
	default:
		return l.err
	}
}

func (l *stdlog) LogIssue(issue issue.Reported) {
	l.lock.Lock()
	defer l.lock.Unlock()
	fmt.Fprintln(l.err, issue.String())
}

func NewArrayLogger() *ArrayLogger {
	return &ArrayLogger{entries: make([]*LogEntry, 0, 16)}
}

func (l *ArrayLogger) Entries(level LogLevel) (result []string) {
	l.lock.Lock()
	defer l.lock.Unlock()
	result = make([]string, 0, 8)
	for _, entry := range l.entries {
		if entry.level == level {
			result = append(result, entry.message)
		}
	}
	return
}

func (l *ArrayLogger) Log(level LogLevel, args ...Value) {
	w := bytes.NewBufferString(``)
	for _, arg := range args {
		ToString3(arg, w)
	}
	l.add(level, w.String())
}

func (l *ArrayLogger) Logf(level LogLevel, format string, args ...interface{}) {
	l.add(level, fmt.Sprintf(format, args...))
}

func (l *ArrayLogger) LogIssue(i issue.Reported) {
	var level LogLevel
	switch i.Severity() {
	case issue.SEVERITY_ERROR:
		level = ERR
	case issue.SEVERITY_WARNING, issue.SEVERITY_DEPRECATION:
		level = WARNING
	default:
		return
	}
	l.add(level, i.String())
}

func (l *ArrayLogger) add(level LogLevel, message string) {
	l.lock.Lock()
	l.entries = append(l.entries, &LogEntry{level, message})
	l.lock.Unlock()
}

var severities = map[LogLevel]int{DEBUG: 0, INFO: 1, NOTICE: 2, WARNING: 3, ERR: 4, CRIT: 5, ALERT: 6, EMERG: 7}

type levelLogger struct {
	Logger
	min int
}

// NewLevelLogger returns a logger that discards messages with a severity
// lower than the given level.
func NewLevelLogger(logger Logger, level LogLevel) Logger {
	return &levelLogger{logger, severities[level]}
}

func (l *levelLogger) Log(level LogLevel, args ...Value) {
	if severities[level] >= l.min {
		l.Logger.Log(level, args...)
	}
}

func (l *levelLogger) Logf(level LogLevel, format string, args ...interface{}) {
	if severities[level] >= l.min {
		l.Logger.Logf(level, format, args...)
	}
}
