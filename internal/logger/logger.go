package logger

import (
	"io"
	"log/slog"
	"os"

	slogotel "github.com/remychantenay/slog-otel"
)

var LogLevel = new(slog.LevelVar)

var sloghandler = slogotel.NewOtelHandler(slogotel.WithNoTraceEvents(true))

var Logger = New(os.Stderr)

// New builds a JSON logger on w that shares LogLevel and tags records with
// the active trace and span ids.
func New(w io.Writer) *slog.Logger {
	jsonHandler := slog.NewJSONHandler(w, &slog.HandlerOptions{AddSource: true, Level: LogLevel})
	return slog.New(sloghandler(jsonHandler))
}

// Init installs Logger as the slog default at level.
func Init(level slog.Level) {
	LogLevel.Set(level)
	slog.SetDefault(Logger)
}
