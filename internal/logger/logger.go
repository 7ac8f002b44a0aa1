// Package logger configures the global logging handler and creates named loggers.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cenkalti/log"
)

var handler = log.NewFileHandler(os.Stderr)

func init() {
	handler.SetFormatter(formatter{})
	handler.SetLevel(log.INFO)
}

// SetLevel sets the logging level on the global handler.
// Messages below this level are discarded.
func SetLevel(l log.Level) {
	handler.SetLevel(l)
}

// Logger logs messages prefixed with a name describing their origin.
type Logger log.Logger

// New returns a Logger with the given name.
func New(name string) Logger {
	l := log.NewLogger(name)
	l.SetLevel(log.DEBUG) // let the handler decide what to drop
	l.SetHandler(handler)
	return l
}

type formatter struct{}

// Format outputs a message like "2014-02-28 18:15:57 INFO     [download file.zip] main.go:42 something happened"
func (formatter) Format(rec *log.Record) string {
	return fmt.Sprintf("%s %-8s [%s] %s:%s %s",
		fmt.Sprint(rec.Time)[:19],
		rec.Level,
		rec.LoggerName,
		filepath.Base(rec.Filename),
		strconv.Itoa(rec.Line),
		rec.Message)
}
