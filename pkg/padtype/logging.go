package padtype

import (
	"log/slog"

	"github.com/padtype/padtype/pkg/padtype/internal"
)

// Logger returns the shared package logger, creating it on first use.
func Logger() *slog.Logger {
	return internal.GetLogger()
}

// SetLogLevel adjusts the package logger's level from a plain string such as
// "debug" or "warn".
func SetLogLevel(level string) {
	internal.SetRawLogLevel(level)
}
