package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var osOpenFile = os.OpenFile

// New creates a console logger writing to w at the given level.
func New(level string, w io.Writer) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

// NewWithFile is New with an extra JSON log file. The returned closer
// releases the file and is never nil.
func NewWithFile(level string, w io.Writer, logFile string) (zerolog.Logger, io.Closer, error) {
	if logFile == "" {
		logger, err := New(level, w)
		return logger, io.NopCloser(nil), err
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), err
	}
	f, err := osOpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), io.NopCloser(nil), fmt.Errorf("cannot open log file: %w", err)
	}
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	output := zerolog.MultiLevelWriter(
		zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339},
		f,
	)
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), f, nil
}

// ParseLevel accepts zerolog level names. An empty level means info.
func ParseLevel(level string) (zerolog.Level, error) {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		return zerolog.InfoLevel, nil
	}
	if level == "warning" {
		level = "warn"
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("invalid log level %q", level)
	}
	return lvl, nil
}
