package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Config is the subset of client configuration the logger needs.
type Config interface {
	GetEnv() string
	GetLogLevel() string
	GetLogFile() string
}

// New builds the process logger. DEV gets a human readable console writer, other
// environments get JSON lines. A configured log file is rotated by lumberjack.
func New(c Config) zerolog.Logger {
	return NewWithWriter(c, os.Stderr)
}

// NewWithWriter is New with an explicit console destination.
func NewWithWriter(c Config, console io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.GetLogLevel())
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	out := console
	if c.GetEnv() == "DEV" {
		out = zerolog.ConsoleWriter{Out: console, TimeFormat: time.Kitchen}
	}

	if path := c.GetLogFile(); path != "" {
		out = zerolog.MultiLevelWriter(out, rotatingFile(path))
	}

	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func rotatingFile(path string) io.Writer {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 7,
		MaxAge:     7, // days
		Compress:   true,
	}
}
