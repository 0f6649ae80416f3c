// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"errors"
	"fmt"
	"log"

	"github.com/aibor/tinyinit/internal/argblob"
	"github.com/aibor/tinyinit/internal/exitcode"
	"golang.org/x/sys/unix"
)

// LoadFunc loads the [argblob.Invocation] of the startup item at the given
// path.
type LoadFunc func(path string) (*argblob.Invocation, error)

// Supervisor launches startup items and reaps children.
//
// Create with [New]. It is not safe for concurrent use.
type Supervisor struct {
	// Policy defines how load and spawn failures of single items are handled.
	Policy Policy

	spawner Spawner
	waiter  Waiter
	load    LoadFunc
	logger  *log.Logger

	// children maps the process IDs of launched children to the startup item
	// path. It is used for diagnostics only.
	children map[int]string
}

// New creates a new [Supervisor] that uses the given [Spawner] and [Waiter]
// and writes its diagnostics to the given logger. Startup items are loaded
// with [argblob.Load]. The [Policy] is [PolicyAbort].
func New(spawner Spawner, waiter Waiter, logger *log.Logger) *Supervisor {
	if logger == nil {
		logger = log.Default()
	}

	return &Supervisor{
		Policy:   PolicyAbort,
		spawner:  spawner,
		waiter:   waiter,
		load:     argblob.Load,
		logger:   logger,
		children: make(map[int]string),
	}
}

// Run discovers the startup items for the given pattern, launches them and
// reaps children until none are left.
//
// It only returns on fatal errors or once all children are gone. Returned
// errors carry an [exitcode.Error].
func (s *Supervisor) Run(pattern string) error {
	paths, err := Discover(pattern)
	if err != nil {
		return exitcode.NoStartupItems.Wrap(err)
	}

	s.logger.Printf("INFO %d startup items found", len(paths))

	err = s.Launch(paths)
	if err != nil {
		return err
	}

	return s.Reap()
}

// Launch loads and spawns the startup items at the given paths in order.
//
// Exec failures only affect the single child and are logged. Load and spawn
// failures are handled according to the [Policy]: with [PolicyAbort] the first
// one is returned and no further items are launched, with [PolicySkip] they
// are logged and the next item is launched.
func (s *Supervisor) Launch(paths []string) error {
	for _, path := range paths {
		err := s.launch(path)
		if err == nil {
			continue
		}

		if errors.Is(err, &ExecError{}) {
			s.logger.Print("ERROR ", err.Error())
			continue
		}

		if s.Policy == PolicySkip {
			s.logger.Print("ERROR ", err.Error(), ", skipping")
			continue
		}

		return err
	}

	return nil
}

func (s *Supervisor) launch(path string) error {
	inv, err := s.load(path)
	if err != nil {
		return exitcode.LoadFailed.Wrap(err)
	}

	s.logger.Print(inv.String())

	pid, err := s.spawner.Spawn(inv)
	if err != nil {
		if errors.Is(err, &ExecError{}) {
			return fmt.Errorf("%s: %w", path, err)
		}

		return exitcode.SpawnFailed.Wrap(fmt.Errorf("spawn %s: %w", path, err))
	}

	s.children[pid] = path

	s.logger.Printf("INFO %s started as pid %d", path, pid)

	return nil
}

// Reap waits for any child to terminate and logs its process ID and raw wait
// status. It loops until the [Waiter] reports that no children are left, in
// which case [ErrNoChildren] is returned.
//
// Children may terminate in any order. Processes that were not launched by
// the [Supervisor], like orphans re-parented to the init, are reaped and
// logged as well.
func (s *Supervisor) Reap() error {
	for {
		pid, status, err := s.waiter.Wait()
		if err != nil {
			if errors.Is(err, unix.ECHILD) {
				s.logger.Print("INFO ", ErrNoChildren.Error())
				return exitcode.NoChildren.Wrap(ErrNoChildren)
			}

			return fmt.Errorf("reap: %w", err)
		}

		s.logExit(pid, status)
	}
}

// Children returns the number of launched children that have not been reaped
// yet.
func (s *Supervisor) Children() int {
	return len(s.children)
}

func (s *Supervisor) logExit(pid int, status unix.WaitStatus) {
	name, known := s.children[pid]
	if !known {
		name = "orphan"
	}

	// Stopped and continued children are still alive.
	if status.Exited() || status.Signaled() {
		delete(s.children, pid)
	}

	s.logger.Printf("pid %d (%s) exited status %08x (%s)",
		pid, name, uint32(status), DescribeStatus(status))
}
