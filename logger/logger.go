// Package logger provides console and JSON structured logging using zerolog.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

var globalLogger zerolog.Logger

// Config controls the level and output format of the global logger.
type Config struct {
	Level  string
	Format string
	Output io.Writer
}

func init() {
	globalLogger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.DateTime}).
		With().
		Timestamp().
		Logger()
}

// Init replaces the global logger according to config.
func Init(config Config) error {
	output := config.Output
	if output == nil {
		output = os.Stdout
	}

	level := zerolog.InfoLevel
	if config.Level != "" {
		var err error
		level, err = zerolog.ParseLevel(strings.ToLower(config.Level))
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
	}

	switch config.Format {
	case "", FormatConsole:
		output = zerolog.ConsoleWriter{Out: output, TimeFormat: time.DateTime}
	case FormatJSON:
		zerolog.TimeFieldFormat = time.RFC3339
	default:
		return fmt.Errorf("invalid log format %q", config.Format)
	}

	globalLogger = zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()

	log.Logger = globalLogger

	return nil
}

func Debug() *zerolog.Event {
	return globalLogger.Debug()
}

func Info() *zerolog.Event {
	return globalLogger.Info()
}

func Warn() *zerolog.Event {
	return globalLogger.Warn()
}

func Error() *zerolog.Event {
	return globalLogger.Error()
}

func Fatal() *zerolog.Event {
	return globalLogger.Fatal()
}

// WithComponent returns a child logger tagged with the component name.
func WithComponent(component string) zerolog.Logger {
	return globalLogger.With().Str("component", component).Logger()
}
