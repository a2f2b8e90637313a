package logger

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/akonuma/competitor-monitor/internal/common"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a zerolog.Logger from the given configuration. Console and file
// outputs can be enabled independently; file output is rotated with
// lumberjack.
func New(cfg Config) (zerolog.Logger, error) {
	writers, err := createWriters(cfg)
	if err != nil {
		return zerolog.Nop(), err
	}
	if len(writers) == 0 {
		return zerolog.Nop(), common.NewError("no log output writers configured")
	}

	multiWriter := zerolog.MultiLevelWriter(writers...)
	instance := zerolog.New(multiWriter).
		Level(cfg.ParseLevel()).
		With().
		Timestamp().
		Logger()

	return instance, nil
}

// createWriters creates the appropriate writers based on configuration
func createWriters(cfg Config) ([]io.Writer, error) {
	var writers []io.Writer

	if cfg.EnableConsole {
		writers = append(writers, createConsoleWriter(cfg, os.Stderr))
	}

	if cfg.EnableFile {
		if cfg.LogFilePath == "" {
			return nil, common.NewValidationError("log_file_path", cfg.LogFilePath, "file path required when file logging enabled")
		}
		fileWriter, err := createFileWriter(cfg)
		if err != nil {
			return nil, err
		}
		writers = append(writers, fileWriter)
	}

	return writers, nil
}

// createConsoleWriter creates a writer for terminal output
func createConsoleWriter(cfg Config, out io.Writer) io.Writer {
	if LogFormat(cfg.LogFormat) == FormatJSON {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// createFileWriter creates a rotating file writer
func createFileWriter(cfg Config) (io.Writer, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFilePath), 0o755); err != nil {
		return nil, common.WrapErrorf(err, "creating log directory for '%s'", cfg.LogFilePath)
	}

	// File output stays JSON regardless of the console format so log files
	// remain machine-readable.
	return &lumberjack.Logger{
		Filename:   cfg.LogFilePath,
		MaxSize:    cfg.MaxLogSizeMB,
		MaxBackups: cfg.MaxLogBackups,
		LocalTime:  true,
	}, nil
}
