// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package sysinit provides the functions for building a minimal init binary:
// create the standard directories, mount the kernel's pseudo file systems,
// attach the standard streams to the console and run setup steps in order
// before handing over to the caller's main work.
//
// Failures of single setup steps are not fatal. They are collected in a
// [SetupError] and logged as warnings, so a partially prepared system still
// boots.
package sysinit
