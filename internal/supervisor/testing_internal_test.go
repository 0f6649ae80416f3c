// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aibor/tinyinit/internal/argblob"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// recordingSpawner records the argument vectors it receives instead of
// executing anything.
type recordingSpawner struct {
	nextPID  int
	spawned  map[int][]string
	order    [][]string
	failures map[string]error
}

func newRecordingSpawner() *recordingSpawner {
	return &recordingSpawner{
		nextPID:  100,
		spawned:  make(map[int][]string),
		failures: make(map[string]error),
	}
}

func (r *recordingSpawner) Spawn(inv *argblob.Invocation) (int, error) {
	if err, exists := r.failures[inv.Path()]; exists {
		return 0, err
	}

	pid := r.nextPID
	r.nextPID++

	r.spawned[pid] = inv.Argv()
	r.order = append(r.order, inv.Argv())

	return pid, nil
}

type termination struct {
	pid    int
	status unix.WaitStatus
}

// replayWaiter returns the given terminations in order and then reports that
// no children are left.
type replayWaiter struct {
	terminations []termination
	err          error
	calls        int
}

func (r *replayWaiter) Wait() (int, unix.WaitStatus, error) {
	r.calls++

	if len(r.terminations) == 0 {
		if r.err != nil {
			return 0, 0, r.err
		}

		return 0, 0, unix.ECHILD
	}

	next := r.terminations[0]
	r.terminations = r.terminations[1:]

	return next.pid, next.status, nil
}

func exited(code int) unix.WaitStatus {
	return unix.WaitStatus(code << 8)
}

func signaled(sig unix.Signal, core bool) unix.WaitStatus {
	status := unix.WaitStatus(sig)
	if core {
		status |= 0x80
	}

	return status
}

// writeItems writes one blob file per argument vector into a new directory
// and returns the paths in order. The file names sort in the given order.
func writeItems(t *testing.T, argvs ...[]string) []string {
	t.Helper()

	dir := t.TempDir()
	paths := make([]string, 0, len(argvs))

	for idx, argv := range argvs {
		path := filepath.Join(dir, string(rune('a'+idx))+"-item")

		blob, err := argblob.Encode(argv)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, blob, 0o600))

		paths = append(paths, path)
	}

	return paths
}

func newTestSupervisor(
	spawner Spawner,
	waiter Waiter,
) (*Supervisor, *bytes.Buffer) {
	var output bytes.Buffer

	return New(spawner, waiter, log.New(&output, "", 0)), &output
}

func logLines(output *bytes.Buffer) []string {
	return strings.Split(strings.TrimSuffix(output.String(), "\n"), "\n")
}

func mkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o600)
}
