package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/adrg/xdg"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// LogFileName is the name of the log file created inside the log directory
const LogFileName = "sdkswitcher.log"

type preLogEntry struct {
	level   zerolog.Level
	message string
}

var (
	mu sync.Mutex

	// logger is a no-op until InitLogger is called
	logger = zerolog.New(io.Discard)

	// output receives user-facing lines written by LogOutput
	output io.Writer = os.Stdout

	logFile     *os.File
	preLogLevel = zerolog.InfoLevel
	preLogs     []preLogEntry
)

// ParseLevel converts a configuration level name to a zerolog level.
// Unknown or empty names map to INFO.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// PreLog buffers a message emitted before the logger is initialized.
// Buffered messages are replayed by InitLogger.
func PreLog(level string, format string, args ...interface{}) {
	mu.Lock()
	defer mu.Unlock()
	preLogs = append(preLogs, preLogEntry{
		level:   ParseLevel(level),
		message: fmt.Sprintf(format, args...),
	})
}

// SetPreLogLevel sets the minimum level of buffered messages kept for replay
func SetPreLogLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	preLogLevel = ParseLevel(level)
}

// InitLogger configures the global logger.
// Console output goes to stderr (pretty unless jsonFormat is set). A log file is
// written to logPath, or to the XDG state directory when logPath is empty.
func InitLogger(logPath string, level string, jsonFormat bool) error {
	mu.Lock()
	defer mu.Unlock()

	lvl := ParseLevel(level)

	var console io.Writer
	if jsonFormat {
		console = os.Stderr
	} else {
		console = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.Kitchen,
			NoColor:    !isTerminal(os.Stderr),
		}
	}

	writers := []io.Writer{console}

	if logFile != nil {
		logFile.Close()
		logFile = nil
	}

	filePath := getLogFilePath(logPath)
	file, fileErr := setupLogFile(filePath)
	if fileErr == nil {
		logFile = file
		writers = append(writers, file)
	}

	logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()

	if fileErr != nil {
		logger.Warn().Err(fileErr).Str("path", filePath).Msg("Failed to create log file, logging to console only")
	}

	for _, entry := range preLogs {
		if entry.level >= preLogLevel {
			logger.WithLevel(entry.level).Msg(entry.message)
		}
	}
	preLogs = nil

	logger.Debug().Str("level", lvl.String()).Str("logFile", filePath).Msg("Logger initialized")
	return nil
}

// Close releases the log file, if any
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// SetOutput redirects user-facing output and returns the previous writer
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := output
	output = w
	return prev
}

// Output returns the writer used for user-facing output
func Output() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return output
}

// GetLogger returns a contextualized logger with the given component name
func GetLogger(component string) zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger.With().Str("component", component).Logger()
}

func LogDebug(format string, args ...interface{}) {
	current().Debug().Msgf(format, args...)
}

func LogInfo(format string, args ...interface{}) {
	current().Info().Msgf(format, args...)
}

func LogWarn(format string, args ...interface{}) {
	current().Warn().Msgf(format, args...)
}

func LogError(format string, args ...interface{}) {
	current().Error().Msgf(format, args...)
}

// LogOutput prints a user-facing line. It is never filtered by log level.
func LogOutput(format string, args ...interface{}) {
	fmt.Fprintf(Output(), format+"\n", args...)
}

func current() *zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	l := logger
	return &l
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsTerminal reports whether the given file is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isTerminal(f)
}

// getLogFilePath returns the log file inside logPath, falling back to
// $XDG_STATE_HOME/sdkswitcher/
func getLogFilePath(logPath string) string {
	if logPath != "" {
		return filepath.Join(logPath, LogFileName)
	}
	return filepath.Join(xdg.StateHome, "sdkswitcher", LogFileName)
}

func setupLogFile(logPath string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return file, nil
}
