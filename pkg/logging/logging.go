package logging

import (
	"log/slog"
	"os"
)

// SetupLogger configures the default slog logger. Logs go to stderr only;
// stdout carries the MCP stdio protocol and must stay clean.
func SetupLogger() error {
	logLevel := slog.LevelInfo
	if os.Getenv("LOG_LEVEL") != "" {
		err := logLevel.UnmarshalText([]byte(os.Getenv("LOG_LEVEL")))
		if err != nil {
			slog.Error("Error parsing log level", "error", err)
			return err
		}
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &logLevel}))
	slog.SetDefault(logger)
	return nil
}
