package logutils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// timeFormat is the timestamp layout used for both console and file output.
const timeFormat = "2006-01-02 15:04:05"

// New returns a logger that writes human-readable timestamped lines to
// stderr and, when file is non-empty, appends the same lines to the file.
// The returned closer must be called on every exit path to release the
// file handle.
//
// The level parameter can be one of: debug, info, warn, error, fatal.
func New(level string, file string) (zerolog.Logger, func(), error) {
	closer := func() {}

	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, closer, err
	}

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: timeFormat,
	}

	var writer io.Writer = console
	if file != "" {
		logsDir := filepath.Dir(file)
		if err := os.MkdirAll(logsDir, 0o755); err != nil {
			return zerolog.Logger{}, closer, fmt.Errorf("create logs dir: %w", err)
		}

		// Append-only so records from earlier runs survive.
		osFile, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, closer, err
		}
		closer = func() { _ = osFile.Close() }

		fileWriter := zerolog.ConsoleWriter{
			Out:        osFile,
			NoColor:    true,
			TimeFormat: timeFormat,
		}
		writer = zerolog.MultiLevelWriter(console, fileWriter)
	}

	l := zerolog.New(writer).
		With().
		Timestamp().
		Logger().
		Level(lvl)

	return l, closer, nil
}
