package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

var (
	// InfoLogger logs informational messages
	InfoLogger *zerolog.Logger
	// ErrorLogger logs error messages
	ErrorLogger *zerolog.Logger
	// DebugLogger logs debug messages
	DebugLogger *zerolog.Logger
)

// InitLogger opens the daily log files under dir and wires one logger per level.
// Every line is also echoed to stderr through a console writer.
func InitLogger(dir string) error {
	if dir == "" {
		dir = "logs"
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create logs directory: %v", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}

	open := func(level string) (*zerolog.Logger, error) {
		f, err := os.OpenFile(
			filepath.Join(dir, fmt.Sprintf("%s-%s.log", level, timestamp)),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY,
			0644,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s log file: %v", level, err)
		}
		l := newLogger(zerolog.MultiLevelWriter(f, console))
		return &l, nil
	}

	info, err := open("info")
	if err != nil {
		return err
	}
	errLog, err := open("error")
	if err != nil {
		return err
	}
	debug, err := open("debug")
	if err != nil {
		return err
	}

	InfoLogger, ErrorLogger, DebugLogger = info, errLog, debug
	return nil
}

// InitWriterLogger routes every level to w. Used by tests and one-off tools.
func InitWriterLogger(w io.Writer) {
	l := newLogger(w)
	InfoLogger, ErrorLogger, DebugLogger = &l, &l, &l
}

func newLogger(w io.Writer) zerolog.Logger {
	// one extra frame for the LogX wrappers
	return zerolog.New(w).With().Timestamp().CallerWithSkipFrameCount(zerolog.CallerSkipFrameCount + 1).Logger()
}

// LogInfo logs an informational message
func LogInfo(format string, v ...interface{}) {
	if InfoLogger != nil {
		InfoLogger.Info().Msgf(format, v...)
	}
}

// LogError logs an error message
func LogError(format string, v ...interface{}) {
	if ErrorLogger != nil {
		ErrorLogger.Error().Msgf(format, v...)
	}
}

// LogDebug logs a debug message
func LogDebug(format string, v ...interface{}) {
	if DebugLogger != nil {
		DebugLogger.Debug().Msgf(format, v...)
	}
}

// LogRequest logs HTTP request details
func LogRequest(method, path, ip, requestID string, status int, duration time.Duration) {
	if InfoLogger != nil {
		InfoLogger.Info().
			Str("request_id", requestID).
			Str("method", method).
			Str("path", path).
			Str("ip", ip).
			Int("status", status).
			Dur("duration", duration).
			Msg("Request completed")
	}
}

// LogErrorWithStack logs an error with stack trace
func LogErrorWithStack(err error, stack []byte) {
	if ErrorLogger != nil {
		ErrorLogger.Error().Err(err).Bytes("stack", stack).Msg("Panic recovered")
	}
}
