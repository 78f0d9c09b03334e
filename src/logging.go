package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/apimgr/pokedex/src/paths"
)

var (
	logger    *slog.Logger
	logWriter io.WriteCloser

	// runID tags every record written by this process
	runID = uuid.NewString()
)

// LogConfig holds logging configuration
type LogConfig struct {
	Level    string // debug, info, warn, error (default: warn)
	File     string // Log file path (empty = {log_dir}/cli.log)
	MaxSize  int    // Max log file size in MB (default: 10)
	MaxFiles int    // Max log files to keep (default: 5)
}

// GetLogConfig returns logging configuration from viper
func GetLogConfig() LogConfig {
	return LogConfig{
		Level:    viper.GetString("logging.level"),
		File:     viper.GetString("logging.file"),
		MaxSize:  viper.GetInt("logging.max_size"),
		MaxFiles: viper.GetInt("logging.max_files"),
	}
}

// InitLogging installs a JSON logger writing to a rotating file as the
// default slog logger. On error the default logger writes text to stderr.
func InitLogging() error {
	cfg := GetLogConfig()
	CloseLogging()

	w, err := openLogFile(cfg)
	if err != nil {
		setLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(cfg.Level)}))
		return err
	}

	logWriter = w
	setLogger(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: parseLevel(cfg.Level)}))
	return nil
}

// CloseLogging flushes and closes the log file, if one is open
func CloseLogging() {
	if logWriter != nil {
		logWriter.Close()
		logWriter = nil
	}
}

func setLogger(h slog.Handler) {
	logger = slog.New(h).With("run_id", runID)
	slog.SetDefault(logger)
}

func openLogFile(cfg LogConfig) (*lumberjack.Logger, error) {
	logPath := cfg.File
	if logPath == "" {
		logPath = paths.LogFile()
	}
	logPath = paths.Expand(logPath)

	if err := paths.EnsureParent(logPath); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}

	maxSize := cfg.MaxSize
	if maxSize <= 0 {
		maxSize = 10
	}
	maxFiles := cfg.MaxFiles
	if maxFiles <= 0 {
		maxFiles = 5
	}

	return &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    maxSize, // MB
		MaxBackups: maxFiles,
		MaxAge:     30, // days
		Compress:   true,
	}, nil
}

// parseLevel maps a level name to slog; unknown names mean warn
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// Logger returns the CLI logger
func Logger() *slog.Logger {
	if logger == nil {
		// Fallback to stderr if not initialized
		return slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return logger
}
