package logger

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Loggers are usable before InitLoggers runs; they write to stderr until then.
var (
	InfoLogger  = logrus.New()
	WarnLogger  = logrus.New()
	ErrorLogger = logrus.New()
)

// Options controls where the application logs go.
type Options struct {
	Dir        string
	Level      string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
	Console    bool
}

// DefaultOptions reads LOG_DIR and LOG_LEVEL from the environment.
func DefaultOptions() Options {
	dir := os.Getenv("LOG_DIR")
	if dir == "" {
		dir = "logs"
	}
	level := os.Getenv("LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return Options{
		Dir:        dir,
		Level:      level,
		MaxSizeMB:  20,
		MaxBackups: 5,
		MaxAgeDays: 14,
		Compress:   true,
		Console:    true,
	}
}

// InitLoggers wires the three loggers to stdout and rotated files under LOG_DIR.
func InitLoggers() {
	InitLoggersWithOptions(DefaultOptions())
}

func InitLoggersWithOptions(opts Options) {
	level, err := logrus.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		level = logrus.InfoLevel
	}

	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			// Fall back to console only; a read-only filesystem must not stop the server.
			opts.Dir = ""
		}
	}

	InfoLogger = newLogger(opts, "app.log", level)
	WarnLogger = newLogger(opts, "app.log", level)
	ErrorLogger = newLogger(opts, "error.log", level)

	InfoLogger.Infof("Loggers initialized (level=%s, dir=%q)", level, opts.Dir)
}

func newLogger(opts Options, file string, level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetLevel(level)
	l.SetFormatter(&logrus.JSONFormatter{
		TimestampFormat: time.RFC3339,
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "level",
			logrus.FieldKeyMsg:   "message",
		},
	})

	var writers []io.Writer
	if opts.Console {
		writers = append(writers, os.Stdout)
	}
	if opts.Dir != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, file),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   opts.Compress,
		})
	}
	switch len(writers) {
	case 0:
		l.SetOutput(io.Discard)
	case 1:
		l.SetOutput(writers[0])
	default:
		l.SetOutput(io.MultiWriter(writers...))
	}
	return l
}
