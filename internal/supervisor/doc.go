// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package supervisor launches the startup items and reaps their processes for
// the lifetime of the system.
//
// Startup items are launched one after another in discovery order, each by a
// single spawn operation. After that, the [Supervisor] waits for any child to
// terminate and logs its raw wait status, in whatever order the kernel
// reports them. The only way out of the reap loop is the kernel reporting that
// no children are left.
//
// A child that fails to execute its program is the exception: the spawn
// primitive reaps it itself and returns the error of the exec call. Such
// failures are logged with the item path and error while launching and never
// appear in the reap loop.
package supervisor
