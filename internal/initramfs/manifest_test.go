// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs_test

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/aibor/tinyinit/internal/argblob"
	"github.com/aibor/tinyinit/internal/initramfs"
	"github.com/aibor/tinyinit/internal/supervisor"
	"github.com/cavaliergopher/cpio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testManifest = `
init: ./init
compression: zstd
hashes: true
directories:
  - /etc/init
files:
  - path: /bin/busybox
    source: /usr/bin/busybox
    mode: 0755
symlinks:
  - path: /bin/sh
    target: busybox
devices:
  - path: /dev/ttyS0
    type: c
    major: 4
    minor: 64
    mode: 0600
items:
  - name: mount
    argv: [/bin/busybox, mount, -a]
  - name: shell
    argv: [/bin/sh, -c, "echo hello"]
`

func TestDecodeManifest(t *testing.T) {
	manifest, err := initramfs.DecodeManifest(strings.NewReader(testManifest))
	require.NoError(t, err)

	expected := &initramfs.Manifest{
		Init:        "./init",
		Compression: initramfs.CompressionZstd,
		Hashes:      true,
		Directories: []string{"/etc/init"},
		Files: []initramfs.ManifestFile{
			{Path: "/bin/busybox", Source: "/usr/bin/busybox", Mode: 0o755},
		},
		Symlinks: []initramfs.ManifestSymlink{
			{Path: "/bin/sh", Target: "busybox"},
		},
		Devices: []initramfs.ManifestDevice{
			{Path: "/dev/ttyS0", Type: initramfs.DeviceTypeChar, Major: 4, Minor: 64, Mode: 0o600},
		},
		Items: []initramfs.ManifestItem{
			{Name: "mount", Argv: []string{"/bin/busybox", "mount", "-a"}},
			{Name: "shell", Argv: []string{"/bin/sh", "-c", "echo hello"}},
		},
	}

	assert.Equal(t, expected, manifest)
}

func TestDecodeManifest_Invalid(t *testing.T) {
	tests := []struct {
		name        string
		manifest    string
		expectedErr error
	}{
		{
			name:     "empty",
			manifest: "",
		},
		{
			name:     "missing init",
			manifest: "compression: gzip\n",
		},
		{
			name:        "unknown compression",
			manifest:    "init: /init\ncompression: lzma\n",
			expectedErr: initramfs.ErrUnknownCompression,
		},
		{
			name:     "unknown field",
			manifest: "init: /init\nkernel: /boot/vmlinuz\n",
		},
		{
			name:     "file without source",
			manifest: "init: /init\nfiles:\n  - path: /bin/sh\n",
		},
		{
			name:     "symlink without target",
			manifest: "init: /init\nsymlinks:\n  - path: /bin/sh\n",
		},
		{
			name:     "device without path",
			manifest: "init: /init\ndevices:\n  - type: c\n    major: 5\n    minor: 1\n",
		},
		{
			name:        "device with unknown type",
			manifest:    "init: /init\ndevices:\n  - path: /dev/fifo\n    type: p\n",
			expectedErr: initramfs.ErrUnknownDeviceType,
		},
		{
			name:     "item name with slash",
			manifest: "init: /init\nitems:\n  - name: a/b\n    argv: [/bin/true]\n",
		},
		{
			name:        "item without argv",
			manifest:    "init: /init\nitems:\n  - name: empty\n",
			expectedErr: argblob.ErrEmpty,
		},
		{
			name:        "item with nul",
			manifest:    "init: /init\nitems:\n  - name: nul\n    argv: [\"/bin/true\\0\"]\n",
			expectedErr: argblob.ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := initramfs.DecodeManifest(strings.NewReader(tt.manifest))
			require.Error(t, err)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
			} else {
				require.ErrorIs(t, err, initramfs.ErrInvalidManifest)
			}
		})
	}
}

func TestReadManifest(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yaml")

	require.NoError(t, os.WriteFile(path, []byte(testManifest), 0o600))

	manifest, err := initramfs.ReadManifest(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "init"), manifest.Init, "relative source resolved")
	assert.Equal(t, "/usr/bin/busybox", manifest.Files[0].Source, "absolute source kept")

	_, err = initramfs.ReadManifest(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestManifest_ItemPaths(t *testing.T) {
	tests := []struct {
		count    int
		expected []string
	}{
		{
			count:    0,
			expected: []string{},
		},
		{
			count:    2,
			expected: []string{"/init.d/00-item", "/init.d/01-item"},
		},
		{
			count:    101,
			expected: []string{"/init.d/000-item", "/init.d/001-item"},
		},
	}

	for _, tt := range tests {
		t.Run(strconv.Itoa(tt.count), func(t *testing.T) {
			manifest := initramfs.Manifest{
				Items: make([]initramfs.ManifestItem, tt.count),
			}
			for idx := range manifest.Items {
				manifest.Items[idx].Name = "item"
			}

			paths := manifest.ItemPaths()
			require.Len(t, paths, tt.count)
			assert.IsIncreasing(t, paths, "lexical order is launch order")

			if tt.count > 0 {
				assert.Equal(t, tt.expected, paths[:2])
			}
		})
	}
}

func TestManifest_AddTo(t *testing.T) {
	manifest, err := initramfs.DecodeManifest(strings.NewReader(testManifest))
	require.NoError(t, err)

	manifest.ResolveSources("/build")

	sourceFS := fstest.MapFS{
		"build/init":      &fstest.MapFile{Data: []byte("init binary")},
		"usr/bin/busybox": &fstest.MapFile{Data: []byte("busybox binary")},
	}

	archive := initramfs.NewArchive(sourceFS)
	require.NoError(t, manifest.AddTo(archive))

	var buf bytes.Buffer

	require.NoError(t, archive.WriteInto(&buf, initramfs.CompressionNone))

	names, entries := readArchive(t, buf.Bytes())

	for _, dir := range []string{
		"root", "proc", "sys", "tmp", "dev", "run", "var", "init.d", "etc", "etc/init",
	} {
		assert.Contains(t, names, dir)
		assert.Equal(t, cpio.FileMode(cpio.TypeDir), entries[dir].Mode&^cpio.ModePerm, dir)
	}

	assert.Equal(t, "init binary", entries["init"].Body)
	assert.Equal(t, cpio.FileMode(cpio.TypeReg|0o755), entries["init"].Mode)
	assert.Equal(t, "busybox", entries["bin/sh"].Linkname)

	devices := []struct {
		name  string
		mode  cpio.FileMode
		major string
		minor string
	}{
		{name: "dev/console", mode: cpio.TypeChar | 0o666, major: "00000005", minor: "00000001"},
		{name: "dev/ttyS0", mode: cpio.TypeChar | 0o600, major: "00000004", minor: "00000040"},
	}

	for _, device := range devices {
		assert.Equal(t, device.mode, entries[device.name].Mode, device.name)

		header := newcHeader(t, buf.Bytes(), device.name)
		assert.Equal(t, device.major, string(header[78:86]), device.name)
		assert.Equal(t, device.minor, string(header[86:94]), device.name)
	}

	for idx, name := range []string{"init.d/00-mount", "init.d/01-shell"} {
		inv, err := argblob.Decode([]byte(entries[name].Body))
		require.NoError(t, err, name)
		assert.Equal(t, manifest.Items[idx].Argv, inv.Argv(), name)
	}

	t.Run("conflicting paths", func(t *testing.T) {
		manifest := initramfs.Manifest{
			Init: "/build/init",
			Files: []initramfs.ManifestFile{
				{Path: "/init", Source: "/build/init"},
			},
		}

		err := manifest.AddTo(initramfs.NewArchive(sourceFS))
		require.ErrorIs(t, err, initramfs.ErrTreeNodeExists)
	})

	t.Run("console declared", func(t *testing.T) {
		manifest := initramfs.Manifest{
			Init: "/build/init",
			Devices: []initramfs.ManifestDevice{
				{Path: "/dev/console", Type: initramfs.DeviceTypeChar, Major: 4, Minor: 64},
			},
		}

		archive := initramfs.NewArchive(sourceFS)
		require.NoError(t, manifest.AddTo(archive))

		node, err := archive.Tree().GetNode(initramfs.ConsolePath)
		require.NoError(t, err)
		assert.Equal(t, uint32(4), node.Device.Major)
		assert.Equal(t, uint32(64), node.Device.Minor)
		assert.Equal(t, fs.FileMode(0o666), node.Mode, "default mode")
	})

	t.Run("duplicate device", func(t *testing.T) {
		manifest := initramfs.Manifest{
			Init: "/build/init",
			Devices: []initramfs.ManifestDevice{
				{Path: "/dev/ttyS0", Type: initramfs.DeviceTypeChar, Major: 4, Minor: 64},
				{Path: "/dev/ttyS0", Type: initramfs.DeviceTypeChar, Major: 4, Minor: 65},
			},
		}

		err := manifest.AddTo(initramfs.NewArchive(sourceFS))
		require.ErrorIs(t, err, initramfs.ErrTreeNodeExists)
	})
}

func TestStartupItemsDir(t *testing.T) {
	assert.Equal(t, supervisor.DefaultPattern, initramfs.StartupItemsDir+"/*")
}

func TestManifest_Sources(t *testing.T) {
	manifest, err := initramfs.DecodeManifest(strings.NewReader(testManifest))
	require.NoError(t, err)

	assert.Equal(t, []string{"./init", "/usr/bin/busybox"}, manifest.Sources())
}

func TestAddLibraries(t *testing.T) {
	archive := initramfs.NewArchive(fstest.MapFS{})
	require.NoError(t, archive.Tree().AddRegular("/lib/libc.so.6", "/other/libc.so.6", 0))

	err := initramfs.AddLibraries(archive, []string{
		"/lib/libc.so.6",
		"/lib64/ld-linux-x86-64.so.2",
	})
	require.NoError(t, err)

	existing, err := archive.Tree().GetNode("/lib/libc.so.6")
	require.NoError(t, err)
	assert.Equal(t, "/other/libc.so.6", existing.RelatedPath, "existing kept")

	added, err := archive.Tree().GetNode("/lib64/ld-linux-x86-64.so.2")
	require.NoError(t, err)
	assert.Equal(t, "/lib64/ld-linux-x86-64.so.2", added.RelatedPath)

	err = initramfs.AddLibraries(archive, []string{"/lib/libc.so.6/nested"})
	require.ErrorIs(t, err, initramfs.ErrTreeNodeNotDir)
}
