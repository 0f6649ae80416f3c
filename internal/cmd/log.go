// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"log/slog"
)

// setupLogging sets the default logger for a build. Warnings and errors are
// always shown, progress only with debug enabled. Lines carry no timestamp,
// so build logs of the same manifest compare equal. The given attributes,
// usually the manifest path, are added to every line.
func setupLogging(writer io.Writer, debug bool, attrs ...slog.Attr) {
	opts := &slog.HandlerOptions{
		Level:       slog.LevelWarn,
		ReplaceAttr: dropTime,
	}

	if debug {
		opts.Level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(writer, opts).WithAttrs(attrs)

	slog.SetDefault(slog.New(handler))
}

func dropTime(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == slog.TimeKey {
		return slog.Attr{}
	}

	return attr
}
