// Package ramlog holds the module-wide logger. The default is a nop logger;
// callers that want diagnostics (e.g. the CLI with --verbose) install a real
// one via SetLogger.
package ramlog

import "go.uber.org/zap"

var logger = zap.NewNop()

// SetLogger replaces the module logger. A nil argument is ignored.
func SetLogger(l *zap.Logger) {
	if l != nil {
		logger = l
	}
}

// L returns the current module logger.
func L() *zap.Logger {
	return logger
}
