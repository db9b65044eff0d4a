package logging

import (
	"errors"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrInvalidLogOutput = errors.New("logging: unknown output format")
	ErrInvalidLogLevel  = errors.New("logging: unknown level")
)

type Config struct {
	LogOutput string
	LogLevel  string
}

// Provide builds the application logger. Everything goes to stderr so that
// command output on stdout stays clean for piping.
func Provide(cfg Config) (*zerolog.Logger, error) {
	return provide(cfg, os.Stderr)
}

func provide(cfg Config, w io.Writer) (*zerolog.Logger, error) {
	zerolog.CallerMarshalFunc = ShortCallerFormatter

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, ErrInvalidLogLevel
	}

	var output io.Writer
	switch cfg.LogOutput {
	case "console", "":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}
	case "stderr":
		output = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	case "json":
		output = w
	default:
		return nil, ErrInvalidLogOutput
	}

	logger := zerolog.New(output).Level(lvl).With().Timestamp().Caller().Logger()
	return &logger, nil
}

func ShortCallerFormatter(_ uintptr, file string, line int) string {
	short := file
	for i := len(file) - 1; i > 0; i-- {
		if file[i] == '/' {
			short = file[i+1:]
			break
		}
	}
	return short + ":" + strconv.Itoa(line)
}
