// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package ggdraw

import (
	"log/slog"

	"github.com/gogpu/ggdraw/internal/logging"
)

// SetLogger configures the logger for ggdraw and all its sub-packages.
// By default, ggdraw produces no log output. Call SetLogger to enable logging.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by ggdraw:
//   - [slog.LevelDebug]: gesture and preview transitions
//   - [slog.LevelInfo]: key and page lifecycle
//   - [slog.LevelWarn]: allocation failures, failed pointer events
//
// Example:
//
//	ggdraw.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logging.Set(l)
}

// Logger returns the current logger used by ggdraw.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return logging.Logger()
}
