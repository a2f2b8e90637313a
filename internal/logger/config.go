package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// LogFormat defines the output encoding of log records.
type LogFormat string

const (
	FormatJSON    LogFormat = "json"
	FormatConsole LogFormat = "console"
)

// Config defines logger configuration.
type Config struct {
	LogLevel      string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error fatal"`
	LogFormat     string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json console"`
	EnableConsole bool   `json:"enable_console" yaml:"enable_console"`
	EnableFile    bool   `json:"enable_file" yaml:"enable_file"`
	LogFilePath   string `json:"log_file_path,omitempty" yaml:"log_file_path,omitempty"`
	MaxLogSizeMB  int    `json:"max_log_size_mb,omitempty" yaml:"max_log_size_mb,omitempty" validate:"omitempty,min=1"`
	MaxLogBackups int    `json:"max_log_backups,omitempty" yaml:"max_log_backups,omitempty" validate:"omitempty,min=0"`
}

// NewDefaultConfig creates default logger configuration
func NewDefaultConfig() Config {
	return Config{
		LogLevel:      "info",
		LogFormat:     string(FormatConsole),
		EnableConsole: true,
		EnableFile:    false,
		LogFilePath:   "logs/competitor-monitor.log",
		MaxLogSizeMB:  10,
		MaxLogBackups: 3,
	}
}

// ParseLevel converts the configured level string to a zerolog level.
// Unknown values fall back to info.
func (c Config) ParseLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(strings.ToLower(c.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
