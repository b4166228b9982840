// Package log adds a thin wrapper around logrus to keep debug logging
// cheap when it is disabled.
package log

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

var (
	l     = logrus.New()
	debug = false
)

// SetDebug controls debug logging.
func SetDebug(to bool) {
	debug = to
	if to {
		l.Level = logrus.DebugLevel
	} else {
		l.Level = logrus.InfoLevel
	}
}

// SetFormatter sets the formatter.
func SetFormatter(to logrus.Formatter) {
	l.Formatter = to
}

// SetOutput sets the output.
func SetOutput(to io.Writer) {
	l.Out = to
}

// Fields is a map of logging fields.
type Fields map[string]interface{}

// LogFields implements Fielder for Fields.
func (f Fields) LogFields() Fields {
	return f
}

// A Fielder provides Fields via the LogFields method.
type Fielder interface {
	LogFields() Fields
}

// Err wraps an error so it can be passed as a Fielder.
func Err(e error) Fielder {
	return Fields{
		"error": e.Error(),
		"type":  fmt.Sprintf("%T", e),
	}
}

// collect merges the Fields of all non-nil fielders into one logrus field
// set. Colliding keys from later fielders are prefixed with their index.
func collect(fielders []Fielder) logrus.Fields {
	fields := logrus.Fields{}
	for i, f := range fielders {
		if f == nil {
			continue
		}
		for k, v := range f.LogFields() {
			if _, dup := fields[k]; dup {
				k = fmt.Sprint(i, ".", k)
			}
			fields[k] = v
		}
	}
	return fields
}

// Debug logs at the debug level if debug logging is enabled.
func Debug(v interface{}, fielders ...Fielder) {
	if debug {
		l.WithFields(collect(fielders)).Debug(v)
	}
}

// Info logs at the info level.
func Info(v interface{}, fielders ...Fielder) {
	if len(fielders) != 0 {
		l.WithFields(collect(fielders)).Info(v)
	} else {
		l.Info(v)
	}
}

// Warn logs at the warning level.
func Warn(v interface{}, fielders ...Fielder) {
	if len(fielders) != 0 {
		l.WithFields(collect(fielders)).Warn(v)
	} else {
		l.Warn(v)
	}
}

// Error logs at the error level.
func Error(v interface{}, fielders ...Fielder) {
	if len(fielders) != 0 {
		l.WithFields(collect(fielders)).Error(v)
	} else {
		l.Error(v)
	}
}

// Fatal logs at the fatal level and exits with a status code != 0.
func Fatal(v interface{}, fielders ...Fielder) {
	if len(fielders) != 0 {
		l.WithFields(collect(fielders)).Fatal(v)
	} else {
		l.Fatal(v)
	}
}
