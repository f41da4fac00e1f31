package logging

import (
	"log/slog"
	"os"
)

// Setup installs a JSON stdout logger as the process default. It runs before
// the database connects; main later swaps the default for a MultiHandler that
// also feeds ERROR records into system_logs via PGHandler.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
