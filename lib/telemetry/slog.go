package telemetry

import (
	"io"
	"log/slog"
	"os"
)

type SlogOptions struct {
	Verbose bool
	// File is appended to when set, otherwise logs go to stderr.
	File string
}

// InitSlog replaces the default logger, the returned closer releases the
// log file if one was opened.
func InitSlog(opts SlogOptions) (io.Closer, error) {
	level := slog.LevelInfo
	if opts.Verbose {
		level = slog.LevelDebug
	}

	var out io.WriteCloser = nopCloser{os.Stderr}
	if opts.File != "" {
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, err
		}
		out = f
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return out, nil
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
