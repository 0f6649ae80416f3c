// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Init is a minimal init for Linux systems.
//
// It prepares the pseudo file systems and the console, launches all startup
// items found in /init.d and reaps processes until none are left. Then it
// powers off the system.
package main

import (
	"errors"
	"log"
	"os"

	"github.com/aibor/tinyinit/internal/exitcode"
	"github.com/aibor/tinyinit/internal/supervisor"
	"github.com/aibor/tinyinit/sysinit"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("init: ")

	cfg, err := parseArgs(os.Args, os.Stderr)
	if err != nil {
		log.Print("WARNING ", err.Error(), ", using defaults")

		cfg = defaultConfig()
	}

	sup := supervisor.New(&supervisor.ForkExec{}, supervisor.Wait4{}, log.Default())
	sup.Policy = cfg.Policy

	sysinit.Run(
		func(err error) {
			os.Exit(handleExit(err, cfg.ExitAction))
		},
		sysinit.WithEnvironment(cfg.Env),
		func() error {
			return sup.Run(cfg.Pattern)
		},
	)
}

// handleExit returns the exit code for the result of the init run. Once no
// children are left, the given [sysinit.ExitAction] is executed. Only if it
// fails or is [sysinit.ExitActionExit], the function returns in that case.
func handleExit(err error, action sysinit.ExitAction) int {
	if err != nil && !errors.Is(err, supervisor.ErrNoChildren) {
		log.Print("ERROR ", err.Error())

		exitCode, _ := exitcode.From(err)

		return exitCode
	}

	doErr := action.Do()
	if doErr != nil {
		log.Print("ERROR ", action.String(), ": ", doErr.Error())
	}

	return exitcode.NoChildren.Code()
}
