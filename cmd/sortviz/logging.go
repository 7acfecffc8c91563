package main

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// newLogger writes human readable logs to w at the --log-level.
func newLogger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		return zerolog.Nop(), err
	}
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(level).With().Timestamp().Str("app", "sortviz").Logger(), nil
}

// newFileLogger logs to sortviz.log in the data directory, for when the
// full-screen UI owns the terminal.
func newFileLogger() (zerolog.Logger, func(), error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return zerolog.Nop(), func() {}, err
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "sortviz.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return zerolog.Nop(), func() {}, err
	}
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		f.Close()
		return zerolog.Nop(), func() {}, err
	}
	logger := zerolog.New(f).Level(level).With().Timestamp().Str("app", "sortviz").Logger()
	return logger, func() { f.Close() }, nil
}
