// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"fmt"
	"io"

	"github.com/aibor/tinyinit/internal/supervisor"
	"github.com/aibor/tinyinit/sysinit"
	"github.com/spf13/pflag"
)

type config struct {
	Pattern    string
	Env        sysinit.Environment
	Policy     supervisor.Policy
	ExitAction sysinit.ExitAction
}

func defaultConfig() *config {
	return &config{
		Pattern:    supervisor.DefaultPattern,
		Env:        sysinit.DefaultEnvironment(),
		Policy:     supervisor.PolicyAbort,
		ExitAction: sysinit.ExitActionPoweroff,
	}
}

// parseArgs parses the arguments the kernel passes to the init. Those are
// the command line parameters after "--".
func parseArgs(args []string, output io.Writer) (*config, error) {
	cfg := defaultConfig()

	var (
		keepStdin   bool
		tmpfs       bool
		devSymlinks bool
	)

	flagSet := pflag.NewFlagSet(args[0], pflag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.SortFlags = false

	flagSet.StringVar(
		&cfg.Pattern,
		"startup-items",
		cfg.Pattern,
		"glob pattern of the startup item files",
	)

	flagSet.StringVar(
		&cfg.Env.Console,
		"console",
		cfg.Env.Console,
		"console device for the standard streams, empty to keep them",
	)

	flagSet.Var(
		&cfg.Policy,
		"on-load-error",
		fmt.Sprintf("what to do if a startup item fails to load or spawn: %s, %s",
			supervisor.PolicyAbort, supervisor.PolicySkip),
	)

	flagSet.Var(
		&cfg.ExitAction,
		"on-exit",
		fmt.Sprintf("what to do once no children are left: %s",
			sysinit.ExitActions()),
	)

	flagSet.BoolVar(
		&cfg.Env.ConfigureLoopback,
		"loopback",
		cfg.Env.ConfigureLoopback,
		"bring up the loopback network interface",
	)

	flagSet.BoolVar(
		&keepStdin,
		"keep-stdin",
		keepStdin,
		"keep the inherited stdin instead of attaching it to the console",
	)

	flagSet.BoolVar(
		&tmpfs,
		"tmpfs",
		tmpfs,
		"mount a tmpfs on /tmp",
	)

	flagSet.BoolVar(
		&devSymlinks,
		"dev-symlinks",
		devSymlinks,
		"create the well-known symbolic links in /dev",
	)

	err := flagSet.Parse(args[1:])
	if err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if flagSet.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %q", flagSet.Args())
	}

	cfg.Env.RedirectStdin = !keepStdin

	if tmpfs {
		cfg.Env.MountPoints["/tmp"] = sysinit.MountOptions{
			FSType: sysinit.FSTypeTmp,
		}
	}

	if devSymlinks {
		cfg.Env.Symlinks = sysinit.DevSymlinks()
	}

	return cfg, nil
}
