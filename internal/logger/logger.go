package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-colorable"
	"github.com/rs/zerolog"
)

var colors = map[string]string{
	"text":  "\x1b[38;5;6m%s\x1b[0m",
	"debug": "\x1b[32mDEBUG\x1b[0m",
	"gray":  "\x1b[38;5;8m%s\x1b[0m",
	"info":  "\x1b[38;5;111mINFO\x1b[0m",
	"warn":  "\x1b[38;5;214mWARN\x1b[0m",
	"error": "\x1b[38;5;204mERROR\x1b[0m",
	"fatal": "\x1b[38;5;52mFATAL\x1b[0m",
}

func console(out io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.ANSIC,
		FormatLevel: func(i interface{}) string {
			name := fmt.Sprintf("%s", i)
			if colored, ok := colors[name]; ok {
				return colored
			}
			return name
		},
		FormatMessage: func(i interface{}) string {
			return fmt.Sprintf(colors["text"], i)
		},
		FormatFieldName: func(i interface{}) string {
			return fmt.Sprintf(colors["gray"], fmt.Sprintf("%s=", i))
		},
		FormatFieldValue: func(i interface{}) string {
			return fmt.Sprintf("%s", i)
		},
	}
}

// New returns a logger writing to stderr. Pretty output is colored for a
// terminal, otherwise one JSON object per line is written.
func New(level string, pretty bool) (zerolog.Logger, error) {
	if pretty {
		return newLogger(console(colorable.NewColorableStderr()), level)
	}
	return newLogger(os.Stderr, level)
}

func newLogger(out io.Writer, level string) (zerolog.Logger, error) {
	if level == "" {
		level = zerolog.LevelInfoValue
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
