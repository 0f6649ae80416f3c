// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys_test

import (
	"os/exec"
	"testing"

	"github.com/aibor/tinyinit/internal/sys"
	"github.com/stretchr/testify/assert"
)

func TestLDDExecError(t *testing.T) {
	err := &sys.LDDExecError{
		Err:    exec.ErrNotFound,
		Stderr: "not a dynamic executable\n",
	}

	//nolint:testifylint
	assert.ErrorIs(t, error(err), &sys.LDDExecError{})
	assert.ErrorIs(t, err, exec.ErrNotFound)
	assert.NotErrorIs(t, assert.AnError, &sys.LDDExecError{})
	assert.Equal(t,
		"ldd: executable file not found in $PATH: not a dynamic executable",
		err.Error(),
	)
}
