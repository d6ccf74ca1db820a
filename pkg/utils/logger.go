package utils

import (
	"log"
)

// Logger provides logging functionality
type Logger struct {
	verbose bool
	prefix  string
}

// NewLogger creates a new logger instance
func NewLogger(verbose bool) *Logger {
	return &Logger{
		verbose: verbose,
	}
}

// WithPrefix returns a copy of the logger that prepends the given
// prefix to every message
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{
		verbose: l.verbose,
		prefix:  prefix + ": ",
	}
}

// Info logs an informational message
func (l *Logger) Info(format string, args ...interface{}) {
	if l.verbose {
		log.Printf("[INFO] "+l.prefix+format, args...)
	}
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	log.Printf("[ERROR] "+l.prefix+format, args...)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	if l.verbose {
		log.Printf("[DEBUG] "+l.prefix+format, args...)
	}
}

// Warning logs a warning message
func (l *Logger) Warning(format string, args ...interface{}) {
	log.Printf("[WARNING] "+l.prefix+format, args...)
}
