// Package logger builds the zerolog instance every component shares.
// Output goes to stderr by default, or to a log file, or to any writer
// handed in by tests.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

const permission = 0664

type Build struct {
	writer io.Writer
	path   string
	level  string
}

func New() *Build {
	return &Build{}
}

// ToPath appends JSON log lines to the file at path, creating it if needed.
func (b *Build) ToPath(path string) *Build {
	b.path = path
	return b
}

// ToWriter sends log output to w instead of stderr.
func (b *Build) ToWriter(w io.Writer) *Build {
	b.writer = w
	return b
}

// Level sets the minimum level by name; unknown names fall back to info.
func (b *Build) Level(level string) *Build {
	b.level = level
	return b
}

func (b *Build) Make() (zerolog.Logger, error) {
	writer := b.writer
	if b.path != "" {
		file, err := os.OpenFile(b.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, permission)
		if err != nil {
			return zerolog.Nop(), err
		}
		writer = zerolog.SyncWriter(file)
	}
	if writer == nil {
		writer = os.Stderr
	}

	lvl, err := zerolog.ParseLevel(b.level)
	if err != nil || b.level == "" {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger(), nil
}
