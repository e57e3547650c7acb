package commands

import "log/slog"

var logger = slog.New(slog.DiscardHandler)

// SetLogger sets the logger used by all commands
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	logger = l
}

// Logger returns the logger shared by the commands
func Logger() *slog.Logger {
	return logger
}
