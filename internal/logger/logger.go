// Package logger provides a small, centralized logging facility with
// configurable verbosity levels.
//
// Verbosity levels (in increasing order):
//
//	Error < Info < Debug < Trace
//
// Example usage:
//
//	logger.SetVerbosity(2) // Debug
//	logger.Infof("starting calculator")
//	logger.Debugf("spot=%f iv=%f dte=%d", spot, iv, dte)
package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	// Logs go to stderr so CLI output stays pipeable.
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
}

// SetVerbosity sets the global logging verbosity. Typically called once
// during application startup, after parsing CLI flags.
//
//	0  → errors only
//	1  → info
//	2  → debug
//	3+ → trace
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		log.SetLevel(logrus.ErrorLevel)
	case v == 1:
		log.SetLevel(logrus.InfoLevel)
	case v == 2:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.TraceLevel)
	}
}

// Errorf logs an error-level message.
func Errorf(format string, args ...any) { log.Errorf(format, args...) }

// Infof logs an informational message.
func Infof(format string, args ...any) { log.Infof(format, args...) }

// Debugf logs debugging information.
func Debugf(format string, args ...any) { log.Debugf(format, args...) }

// Tracef logs very detailed execution traces. Use sparingly.
func Tracef(format string, args ...any) { log.Tracef(format, args...) }
