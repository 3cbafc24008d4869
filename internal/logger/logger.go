// Package logger provides the process-wide structured logger.
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log is the global logger for the whole application. It writes to stderr at
// info level until Init reconfigures it.
var Log = logrus.New()

// Options controls where and how log records are written.
type Options struct {
	Level      string // logrus level name; unknown values fall back to info
	Format     string // "json" or "text"
	File       string // rotating log file; empty means stderr
	MaxSizeMB  int
	MaxBackups int
}

// Init reconfigures the global logger. The terminal belongs to the renderer
// while the game runs, so interactive sessions should always set File.
// The returned closer flushes and closes the log file, if any.
func Init(opts Options) io.Closer {
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	Log.SetLevel(level)

	if strings.ToLower(opts.Format) == "json" {
		Log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:    true,
			DisableColors:    opts.File != "",
			QuoteEmptyFields: true,
		})
	}

	if opts.File == "" {
		Log.SetOutput(os.Stderr)
		return nopCloser{}
	}

	rotator := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
	}
	Log.SetOutput(rotator)
	return rotator
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Discard silences the global logger. Tests call it to keep output clean.
func Discard() {
	Log.SetOutput(io.Discard)
}
