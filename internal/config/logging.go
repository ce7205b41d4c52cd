package config

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/lcaengine/internal/logging"
)

// fallbackLogFile is used when file logging is requested without a path.
const fallbackLogFile = "/tmp/lca.log"

// Logger is the application-wide logger used by the CLI.
//
//nolint:gochecknoglobals // one structured logger for the whole process
var Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	Level(zerolog.InfoLevel).
	With().
	Timestamp().
	Logger()

//nolint:gochecknoglobals // guards Logger and the open log file
var (
	logMu     sync.RWMutex
	logResult *logging.LogPathResult
)

// InitLogger rebuilds Logger from lc. A previously opened log file is
// closed first. When file output fails the logger falls back to stderr and
// the returned result carries the reason.
func InitLogger(lc LoggingConfig) logging.LogPathResult {
	logMu.Lock()
	defer logMu.Unlock()

	closeLogFileLocked()

	res := logging.NewLoggerWithPath(lc.ToLoggingConfig())
	logResult = &res
	Logger = res.Logger
	return res
}

// SetLogLevel changes the level of Logger. Unknown levels mean info.
func SetLogLevel(level string) {
	logMu.Lock()
	defer logMu.Unlock()

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	Logger = Logger.Level(lvl)
}

// GetLogger returns the current application logger.
func GetLogger() zerolog.Logger {
	logMu.RLock()
	defer logMu.RUnlock()
	return Logger
}

// CloseLogFile closes the log file opened by InitLogger, if any.
func CloseLogFile() {
	logMu.Lock()
	defer logMu.Unlock()
	closeLogFileLocked()
}

// closeLogFileLocked must be called with logMu held.
func closeLogFileLocked() {
	if logResult == nil || !logResult.UsingFile {
		return
	}
	_ = logResult.Close()
	logResult = nil
	Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(Logger.GetLevel()).
		With().
		Timestamp().
		Logger()
}

// ToLoggingConfig converts the YAML logging section into a logging.Config.
// A set File selects file output; "file" without a path uses /tmp/lca.log.
func (lc LoggingConfig) ToLoggingConfig() logging.Config {
	out := logging.Config{
		Level:  lc.Level,
		Format: lc.Format,
		Output: logging.OutputStderr,
	}
	switch lc.File {
	case "":
	case logging.OutputFile:
		out.Output = logging.OutputFile
		out.File = fallbackLogFile
	default:
		out.Output = logging.OutputFile
		out.File = lc.File
	}
	return out
}
