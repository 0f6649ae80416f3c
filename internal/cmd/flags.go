// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/aibor/tinyinit/internal/initramfs"
	"github.com/spf13/pflag"
)

const (
	name = "mkinitrd"

	outputDefault = "initramfs.cpio"
	hashesSuffix  = ".hashes"

	usageMessage = `Usage of 'mkinitrd':
    mkinitrd [flags...] manifest

Builds an initramfs archive from the given YAML manifest. The archive boots
into the init with one startup item per manifest item.

Example:
	mkinitrd --output=initramfs.cpio.zst --compression=zstd manifest.yaml

Flags:
`
)

type flags struct {
	ManifestPath string
	OutputPath   string

	Compression initramfs.Compression
	Hashes      bool

	// CompressionSet and HashesSet are true if the respective flag was given.
	// They take precedence over the manifest then.
	CompressionSet bool
	HashesSet      bool

	Debug   bool
	Version bool
}

// HashesPath returns the path of the hash list file.
func (f *flags) HashesPath() string {
	return f.OutputPath + hashesSuffix
}

// apply overrides the manifest settings with the ones given by flag.
func (f *flags) apply(manifest *initramfs.Manifest) {
	if f.CompressionSet {
		manifest.Compression = f.Compression
	}

	if f.HashesSet {
		manifest.Hashes = f.Hashes
	}
}

func newFlagSet(cfg *flags, output io.Writer) *pflag.FlagSet {
	fsName := name + " [flags...] manifest"
	flagSet := pflag.NewFlagSet(fsName, pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.Usage = func() {
		fmt.Fprint(flagSet.Output(), usageMessage)
		flagSet.PrintDefaults()
	}

	flagSet.StringVarP(
		&cfg.OutputPath,
		"output",
		"o",
		outputDefault,
		"path of the archive file to write",
	)

	cfg.Compression = initramfs.CompressionNone

	flagSet.VarP(
		&cfg.Compression,
		"compression",
		"c",
		fmt.Sprintf("compression of the archive, one of: %s. Overrides the manifest",
			initramfs.Compressions()),
	)

	flagSet.BoolVar(
		&cfg.Hashes,
		"hashes",
		cfg.Hashes,
		"write SHA-256 list of all archived files to <output>"+hashesSuffix+
			". Overrides the manifest",
	)

	flagSet.BoolVar(
		&cfg.Debug,
		"debug",
		cfg.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&cfg.Version,
		"version",
		cfg.Version,
		"show version and exit",
	)

	return flagSet
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	cfg := &flags{}
	flagSet := newFlagSet(cfg, output)

	// Errors are printed by the flag set already.
	err := flagSet.Parse(args)
	if err != nil {
		if errors.Is(err, ErrHelp) {
			return nil, ErrHelp
		}

		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	cfg.CompressionSet = flagSet.Changed("compression")
	cfg.HashesSet = flagSet.Changed("hashes")

	if cfg.Version {
		return cfg, nil
	}

	positionalArgs := flagSet.Args()

	if len(positionalArgs) != 1 {
		return nil, fail(output, "exactly one manifest required")
	}

	cfg.ManifestPath = positionalArgs[0]

	if cfg.OutputPath == "" {
		return nil, fail(output, "output path must not be empty")
	}

	return cfg, nil
}

func fail(output io.Writer, msg string) error {
	err := &ParseArgsError{msg: msg}
	fmt.Fprintln(output, err.Error())

	return err
}
