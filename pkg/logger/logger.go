/* pkg/logger/logger.go */

package logger

import (
	"os"
	"path/filepath"
	"runtime"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// PlatformLogPaths returns fallback log paths in order of priority for the platform.
func PlatformLogPaths() []string {
	switch runtime.GOOS {
	case "linux":
		return []string{
			"/var/log/janus/janus.log", // best if writable (via sudo)
			userStatePath("janus.log"), // user-local fallback (~/.local/state/janus/janus.log)
			"./janus.log",              // current working dir, ideal for devs
			"/tmp/janus/janus.log",     // ephemeral
		}
	case "darwin":
		return []string{
			userStatePath("janus.log"),
			"./janus.log",
			"/tmp/janus/janus.log",
		}
	default:
		return []string{"./janus.log"}
	}
}

func userStatePath(name string) string {
	if state := os.Getenv("XDG_STATE_HOME"); state != "" {
		return filepath.Join(state, "janus", name)
	}
	return filepath.Join(os.Getenv("HOME"), ".local", "state", "janus", name)
}

// L returns the global logger, or nil if logging is uninitialized.
func L() *zap.Logger {
	return log
}

// GetLogger returns the global logger, falling back to zap.L().
func GetLogger() *zap.Logger {
	if log != nil {
		return log
	}
	return zap.L()
}

// ParseLogLevel maps a LOG_LEVEL env value onto a zap level, defaulting to info.
func ParseLogLevel(s string) zapcore.Level {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

// SafeSync flushes the global logger, ignoring the usual stdout sync errors.
func SafeSync() {
	if log != nil {
		_ = log.Sync()
	}
}
