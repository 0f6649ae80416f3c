// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package argblob decodes and encodes startup item argument blobs.
//
// A blob is a flat byte file of at most [MaxSize] bytes containing
// consecutive NUL-terminated strings. The first string is the absolute path of
// the executable, all following strings are its positional arguments. The
// final string may run to the end of the file without a terminating NUL.
package argblob
