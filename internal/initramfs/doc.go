// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package initramfs builds initramfs archives for the Linux kernel that boot
// into the init with its startup items.
//
// The file hierarchy is collected in a [Tree] and written as newc CPIO
// archive, optionally compressed. A [Manifest] describes the content of an
// archive in YAML.
package initramfs
