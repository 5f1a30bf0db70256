package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

const flags = log.Ldate | log.Ltime | log.LUTC

var (
	InfoLogger    = log.New(os.Stdout, "INFO: ", flags)
	ErrorLogger   = log.New(os.Stderr, "ERROR: ", flags)
	WarningLogger = log.New(os.Stdout, "WARNING: ", flags)
	DebugLogger   = log.New(io.Discard, "DEBUG: ", flags)
)

type LogLevel int

const (
	DEBUG LogLevel = iota
	INFO
	WARNING
	ERROR
)

func (l LogLevel) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	}
	return fmt.Sprintf("LogLevel(%d)", int(l))
}

// ParseLevel maps a level name such as "info" or "WARNING" to a LogLevel
func ParseLevel(name string) (LogLevel, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "DEBUG":
		return DEBUG, nil
	case "INFO", "":
		return INFO, nil
	case "WARNING", "WARN":
		return WARNING, nil
	case "ERROR":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", name)
}

type LogConfig struct {
	LogDir     string // Empty keeps output on stdout/stderr
	MaxSize    int64  // Maximum size of log file in bytes
	MaxBackups int    // Maximum number of old log files to retain
	LogLevel   LogLevel
}

var (
	mu         sync.Mutex
	logFile    *os.File
	stopRotate chan struct{}
)

// InitLogging points the level loggers at their destination. Loggers below
// config.LogLevel are silenced.
func InitLogging(config *LogConfig) error {
	if config == nil {
		config = &LogConfig{
			MaxSize:    10 * 1024 * 1024, // 10MB
			MaxBackups: 5,
			LogLevel:   INFO,
		}
	}

	mu.Lock()
	defer mu.Unlock()

	closeLocked()

	out, errOut := io.Writer(os.Stdout), io.Writer(os.Stderr)
	if config.LogDir != "" {
		// Create logs directory if it doesn't exist
		if err := os.MkdirAll(config.LogDir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		path := filepath.Join(config.LogDir, fmt.Sprintf("app_%s.log", time.Now().Format("2006-01-02")))
		file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logFile = file
		out, errOut = file, file

		if config.MaxSize > 0 {
			stopRotate = make(chan struct{})
			go monitorLogSize(config, path, stopRotate)
		}
	}

	DebugLogger = log.New(levelWriter(config, DEBUG, out), "DEBUG: ", flags)
	InfoLogger = log.New(levelWriter(config, INFO, out), "INFO: ", flags)
	WarningLogger = log.New(levelWriter(config, WARNING, out), "WARNING: ", flags)
	ErrorLogger = log.New(levelWriter(config, ERROR, errOut), "ERROR: ", flags)

	return nil
}

// Close stops log rotation and releases the log file, if any
func Close() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()
}

func closeLocked() {
	if stopRotate != nil {
		close(stopRotate)
		stopRotate = nil
	}
	if logFile != nil {
		logFile.Close()
		logFile = nil
	}
}

func levelWriter(config *LogConfig, level LogLevel, w io.Writer) io.Writer {
	if level < config.LogLevel {
		return io.Discard
	}
	return w
}

func monitorLogSize(config *LogConfig, path string, stop <-chan struct{}) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if info, err := os.Stat(path); err == nil && info.Size() > config.MaxSize {
				rotateLog(config, path)
				return
			}
		}
	}
}

func rotateLog(config *LogConfig, path string) {
	for i := config.MaxBackups - 1; i > 0; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	os.Rename(path, path+".1")

	// Reopens a fresh file and starts a new monitor
	if err := InitLogging(config); err != nil {
		fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
	}
}

// Log formats and writes log messages with source file information
func Log(level LogLevel, format string, v ...interface{}) {
	_, file, line, _ := runtime.Caller(1)
	message := fmt.Sprintf("%s:%d: %s", filepath.Base(file), line, fmt.Sprintf(format, v...))

	switch level {
	case DEBUG:
		DebugLogger.Output(2, message)
	case INFO:
		InfoLogger.Output(2, message)
	case WARNING:
		WarningLogger.Output(2, message)
	case ERROR:
		ErrorLogger.Output(2, message)
	}
}

// Discard silences every logger. Tests call it to keep output clean.
func Discard() {
	mu.Lock()
	defer mu.Unlock()
	closeLocked()

	DebugLogger = log.New(io.Discard, "DEBUG: ", flags)
	InfoLogger = log.New(io.Discard, "INFO: ", flags)
	WarningLogger = log.New(io.Discard, "WARNING: ", flags)
	ErrorLogger = log.New(io.Discard, "ERROR: ", flags)
}
