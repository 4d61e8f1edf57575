// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

// parseLevel maps a level name to a slog.Level; unknown values mean info.
func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// newLogger builds a text or JSON slog.Logger writing to w.
func newLogger(level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: parseLevel(level)}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// loggerFor resolves flags over config values; flags win when set.
func loggerFor(cmd *cobra.Command, cfgLevel, cfgFormat string) *slog.Logger {
	level, _ := cmd.Flags().GetString("log-level")
	format, _ := cmd.Flags().GetString("log-format")
	if level == "" {
		level = cfgLevel
	}
	if format == "" {
		format = cfgFormat
	}
	return newLogger(level, format, cmd.ErrOrStderr())
}
