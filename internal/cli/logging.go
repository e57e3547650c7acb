package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/finalwork/recipe-terminal/pkg/files"
)

// LogToStderr is the --log-file value that sends logs to stderr
const LogToStderr = "stderr"

// NewLogger returns a text logger writing to w
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// OpenLogger opens the log destination. The returned writer is where other
// diagnostic output (telemetry) should go; close releases the log file.
func OpenLogger(path string, verbose bool) (*slog.Logger, io.Writer, func(), error) {
	if path == LogToStderr {
		return NewLogger(os.Stderr, verbose), os.Stderr, func() {}, nil
	}
	f, err := files.OpenLog(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return NewLogger(f, verbose), f, func() { f.Close() }, nil
}
