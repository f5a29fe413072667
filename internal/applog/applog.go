// Package applog sets up the application's JSON logger with on-disk rotation.
package applog

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ausocean/utils/logging"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation settings
const (
	LogFileName  = "app.log"
	logMaxSize   = 10 // MB
	logMaxBackup = 5
	logMaxAge    = 28 // days
	logSuppress  = false
)

// Level names accepted by ParseLevel
const (
	LevelDebug   = "debug"
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

var levels = map[string]int8{
	LevelDebug:   logging.Debug,
	LevelInfo:    logging.Info,
	LevelWarning: logging.Warning,
	LevelError:   logging.Error,
}

// ParseLevel maps a level name to a logging level, defaulting to info
func ParseLevel(name string) int8 {
	if l, ok := levels[strings.ToLower(strings.TrimSpace(name))]; ok {
		return l
	}
	return logging.Info
}

// Levels returns the accepted level names, most verbose first
func Levels() []string {
	return []string{LevelDebug, LevelInfo, LevelWarning, LevelError}
}

// New creates a logger writing to a rotated file in dir and to mirror, if non-nil.
// The returned closer releases the log file.
func New(dir, level string, mirror io.Writer) (logging.Logger, io.Closer) {
	fileLog := &lumberjack.Logger{
		Filename:   filepath.Join(dir, LogFileName),
		MaxSize:    logMaxSize,
		MaxBackups: logMaxBackup,
		MaxAge:     logMaxAge,
	}

	var w io.Writer = fileLog
	if mirror != nil {
		w = io.MultiWriter(fileLog, mirror)
	}
	return logging.New(ParseLevel(level), w, logSuppress), fileLog
}

// NewStderr creates a logger that only writes to stderr, for when no log directory is available
func NewStderr(level string) logging.Logger {
	return logging.New(ParseLevel(level), os.Stderr, logSuppress)
}
