package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup configures the global zerolog logger. Output goes to the console
// and, when file is set, to a rotated JSON log file.
func Setup(level, file string) error {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("logger: parse level %q: %w", level, err)
	}
	if lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	log.Logger = New(lvl, os.Stderr, file)
	zerolog.DefaultContextLogger = &log.Logger
	return nil
}

// New builds a logger writing console output to w plus an optional
// rotated file.
func New(level zerolog.Level, w io.Writer, file string) zerolog.Logger {
	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if file != "" {
		out = zerolog.MultiLevelWriter(out, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}
