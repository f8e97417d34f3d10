package library

import (
	"github.com/mborders/logmatic"
)

// Logger is the leveled logging capability handed to the engine.
// *logmatic.Logger satisfies it.
type Logger interface {
	Debug(format string, a ...interface{})
	Info(format string, a ...interface{})
	Warn(format string, a ...interface{})
	Error(format string, a ...interface{})
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}

// OrNop returns l, or a NopLogger if l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// NewCLILogger returns a terminal logger. Debug output is only shown in debug mode.
func NewCLILogger(debugMode bool) *logmatic.Logger {
	l := logmatic.NewLogger()
	l.SetLevel(logmatic.INFO)
	if debugMode {
		l.SetLevel(logmatic.TRACE)
	}
	l.ExitOnFatal = true
	return l
}

// FatalLogger is a Logger that can also end the process.
type FatalLogger interface {
	Logger
	Fatal(format string, a ...interface{})
}

// Severity of a failure reported by the command line tools.
type Severity int

const (
	// Fatal ends the run.
	Fatal Severity = iota
	// Serious is logged as an error and the run goes on.
	Serious
	// Notice is logged as a warning.
	Notice
)

// LogCLI reports err on l. With ExitOnFatal set, as NewCLILogger does, Fatal exits.
func LogCLI(l FatalLogger, err error, s Severity) {
	switch s {
	case Fatal:
		l.Fatal("%s", err.Error())
	case Serious:
		l.Error("%s", err.Error())
	default:
		l.Warn("%s", err.Error())
	}
}
