// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	"github.com/aibor/tinyinit/internal/initramfs"
	"github.com/aibor/tinyinit/internal/sys"
)

// IO provides input and output details for the command.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func run(ctx context.Context, flags *flags) error {
	manifest, err := initramfs.ReadManifest(flags.ManifestPath)
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}

	flags.apply(manifest)

	slog.Debug("Read manifest",
		slog.String("path", flags.ManifestPath),
		slog.Int("items", len(manifest.Items)),
		slog.String("compression", string(manifest.Compression)))

	if len(manifest.Items) == 0 {
		slog.Warn("Manifest has no startup items, init fails to boot "+
			"unless --startup-items points at files of the archive",
			slog.String("dir", initramfs.StartupItemsDir))
	}

	archive := initramfs.NewArchive(nil)

	err = manifest.AddTo(archive)
	if err != nil {
		return fmt.Errorf("build archive: %w", err)
	}

	if manifest.Libraries {
		libs, err := sys.CollectLibs(ctx, manifest.Sources()...)
		if err != nil {
			return fmt.Errorf("collect libraries: %w", err)
		}

		slog.Debug("Shared objects", slog.Any("paths", libs))

		err = initramfs.AddLibraries(archive, libs)
		if err != nil {
			return fmt.Errorf("build archive: %w", err)
		}
	}

	for idx, path := range manifest.ItemPaths() {
		slog.Debug("Startup item",
			slog.String("path", path),
			slog.Any("argv", manifest.Items[idx].Argv))
	}

	err = archive.WriteFile(flags.OutputPath, manifest.Compression)
	if err != nil {
		return fmt.Errorf("write archive: %w", err)
	}

	slog.Debug("Wrote archive", slog.String("path", flags.OutputPath))

	if !manifest.Hashes {
		return nil
	}

	hashes, err := archive.Hashes(ctx)
	if err != nil {
		return fmt.Errorf("hash archive files: %w", err)
	}

	err = initramfs.WriteHashFile(flags.HashesPath(), hashes)
	if err != nil {
		return err //nolint:wrapcheck
	}

	slog.Debug("Wrote hash list",
		slog.String("path", flags.HashesPath()),
		slog.Int("files", len(hashes)))

	return nil
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// ParseArgs already prints errors, so we just exit without an error.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	switch {
	case errors.Is(err, initramfs.ErrInvalidManifest):
		slog.Error("Invalid manifest", slog.Any("error", err))
	default:
		slog.Error(err.Error())
	}

	return 1
}

// Run is the main entry point for the CLI command.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.Debug,
		slog.String("manifest", flags.ManifestPath))

	if flags.Version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return -1
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return 0
	}

	err = run(ctx, flags)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
