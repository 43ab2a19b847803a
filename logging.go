package town

import (
	"io"
	"log/slog"
	"os"
)

var logger = newLogger(os.Stderr, slog.LevelInfo)

func newLogger(w io.Writer, lvl slog.Leveler) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// Logger returns the logger used for warnings and debug output.
func Logger() *slog.Logger {
	return logger
}

// SetLogger replaces the package logger. A nil logger restores the default
// stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newLogger(os.Stderr, slog.LevelInfo)
	}
	logger = l
}

// RedirectLogs sends all log output, debug level included, to w. The returned
// function restores the previous logger.
func RedirectLogs(w io.Writer) func() {
	old := logger
	logger = newLogger(w, slog.LevelDebug)
	return func() {
		logger = old
	}
}
