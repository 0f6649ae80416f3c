// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
)

// Environment defines the file system and device environment that is
// prepared on boot.
type Environment struct {
	// Root is the directory all paths are relative to. It is "/" for an
	// actual init.
	Root string

	// Directories are created in the given order with DirMode.
	Directories []string

	// DirMode is the permission mode for new Directories.
	DirMode fs.FileMode

	// MountPoints defines the pseudo file systems that are mounted after the
	// Directories have been created.
	MountPoints MountPoints

	// Symlinks is a set of symbolic links that are created after mounting.
	Symlinks Symlinks

	// ConfigureLoopback determines if the loopback interface is brought up.
	ConfigureLoopback bool

	// Console is the console device path. If empty, the standard streams are
	// not redirected.
	Console string

	// RedirectStdin determines if stdin is attached to the Console as well.
	// Stdout and stderr are always attached.
	RedirectStdin bool

	// Report, if set, is called with every failure of a setup step right
	// after the step, before the next one is run.
	Report func(err error)
}

// DefaultEnvironment returns the [Environment] a minimal init prepares.
func DefaultEnvironment() Environment {
	return Environment{
		Root:          "/",
		Directories:   StandardDirectories(),
		DirMode:       defaultDirMode,
		MountPoints:   SystemMountPoints(),
		Console:       DefaultConsole,
		RedirectStdin: true,
	}
}

// Prepare creates the directories, mounts the file systems, creates the
// symbolic links, brings up the loopback interface and attaches the standard
// streams to the console as defined by env.
//
// Every step is tried regardless of earlier failures. The failures are
// passed to env.Report as they occur and returned as [SetupError]. Running Prepare on an already prepared system
// returns no other error type, so it is safe to run repeatedly.
func Prepare(env Environment) error {
	var errs SetupError

	collect := func(err error) {
		if err == nil {
			return
		}

		stepErrs := []error{err}

		var setupErr SetupError
		if errors.As(err, &setupErr) {
			stepErrs = setupErr
		}

		errs = append(errs, stepErrs...)

		if env.Report != nil {
			for _, stepErr := range stepErrs {
				env.Report(stepErr)
			}
		}
	}

	root := env.Root
	if root == "" {
		root = "/"
	}

	collect(CreateDirectories(root, env.Directories, env.DirMode))
	collect(MountAll(root, env.MountPoints))
	collect(CreateSymlinks(root, env.Symlinks))

	if env.ConfigureLoopback {
		collect(ConfigureLoopbackInterface())
	}

	if env.Console != "" {
		fds := []int{Stdout, Stderr}
		if env.RedirectStdin {
			fds = append([]int{Stdin}, fds...)
		}

		err := RedirectToConsole(filepath.Join(root, env.Console), fds...)
		if err != nil {
			collect(fmt.Errorf("console: %w", err))
		}
	}

	return errs.errOrNil()
}

// WithEnvironment returns a setup [Func] that wraps [Prepare] and can be used
// with [Run].
//
// Failed setup steps are logged as warnings as they occur, unless env.Report
// is set already. They are never fatal.
func WithEnvironment(env Environment) Func {
	if env.Report == nil {
		env.Report = logWarning
	}

	return func() error {
		err := Prepare(env)
		if errors.Is(err, SetupError{}) {
			return nil
		}

		return err
	}
}
