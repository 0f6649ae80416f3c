// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/aibor/tinyinit/internal/argblob"
	"github.com/aibor/tinyinit/sysinit"
	"gopkg.in/yaml.v3"
)

const (
	// InitPath is the path the kernel executes as init from an initramfs.
	InitPath = "/init"

	// StartupItemsDir is the directory the init discovers startup items in.
	StartupItemsDir = "/init.d"

	// ConsolePath is the console device node the kernel opens for init.
	ConsolePath = "/dev/console"

	executableMode = 0o755
	blobMode       = 0o644
	deviceMode     = 0o666
)

// Manifest describes the content of an initramfs.
//
// Example:
//
//	init: ./init
//	compression: zstd
//	hashes: true
//	libraries: true
//	directories:
//	  - /etc
//	files:
//	  - path: /bin/busybox
//	    source: /usr/bin/busybox
//	    mode: 0755
//	symlinks:
//	  - path: /bin/sh
//	    target: busybox
//	devices:
//	  - path: /dev/ttyS0
//	    type: c
//	    major: 4
//	    minor: 64
//	items:
//	  - name: mount
//	    argv: [/bin/busybox, mount, -a]
//	  - name: shell
//	    argv: [/bin/sh]
type Manifest struct {
	// Init is the source path of the init binary.
	Init string `yaml:"init"`

	// Compression of the archive. Defaults to [CompressionNone].
	Compression Compression `yaml:"compression"`

	// Hashes enables writing a SHA-256 list of all archived regular files
	// next to the archive.
	Hashes bool `yaml:"hashes"`

	// Libraries enables adding the shared objects the init and the files
	// are dynamically linked against.
	Libraries bool `yaml:"libraries"`

	// Directories are created in addition to the standard directories.
	Directories []string `yaml:"directories"`

	Files    []ManifestFile    `yaml:"files"`
	Symlinks []ManifestSymlink `yaml:"symlinks"`

	// Devices are device nodes. [ConsolePath] is always present and
	// defaults to [Console].
	Devices []ManifestDevice `yaml:"devices"`

	// Items are the startup items in launch order.
	Items []ManifestItem `yaml:"items"`
}

// ManifestFile is a regular file copied into the archive.
type ManifestFile struct {
	Path   string      `yaml:"path"`
	Source string      `yaml:"source"`
	Mode   fs.FileMode `yaml:"mode"`
}

// ManifestSymlink is a symbolic link in the archive.
type ManifestSymlink struct {
	Path   string `yaml:"path"`
	Target string `yaml:"target"`
}

// ManifestDevice is a device node in the archive. Mode defaults to 0666.
type ManifestDevice struct {
	Path  string      `yaml:"path"`
	Type  DeviceType  `yaml:"type"`
	Major uint32      `yaml:"major"`
	Minor uint32      `yaml:"minor"`
	Mode  fs.FileMode `yaml:"mode"`
}

// Device returns the [Device] the node refers to.
func (d ManifestDevice) Device() Device {
	return Device{Type: d.Type, Major: d.Major, Minor: d.Minor}
}

// ManifestItem is a startup item. It becomes an argument blob in
// [StartupItemsDir].
type ManifestItem struct {
	Name string   `yaml:"name"`
	Argv []string `yaml:"argv"`
}

// DecodeManifest decodes a YAML [Manifest] from the given reader. Unknown
// fields are rejected.
func DecodeManifest(r io.Reader) (*Manifest, error) {
	var manifest Manifest

	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	err := decoder.Decode(&manifest)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidManifest, err)
	}

	err = manifest.Validate()
	if err != nil {
		return nil, err
	}

	return &manifest, nil
}

// ReadManifest reads the [Manifest] file at the given path. Relative source
// paths are resolved relative to the directory of the manifest file.
func ReadManifest(path string) (*Manifest, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer file.Close()

	manifest, err := DecodeManifest(file)
	if err != nil {
		return nil, err
	}

	baseDir, err := filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("resolve manifest dir: %w", err)
	}

	manifest.ResolveSources(baseDir)

	return manifest, nil
}

// ResolveSources makes all relative source paths absolute using the given
// base directory.
func (m *Manifest) ResolveSources(baseDir string) {
	resolve := func(source string) string {
		if filepath.IsAbs(source) {
			return source
		}

		return filepath.Join(baseDir, source)
	}

	m.Init = resolve(m.Init)

	for idx := range m.Files {
		m.Files[idx].Source = resolve(m.Files[idx].Source)
	}
}

// Validate checks the [Manifest] for missing and invalid fields.
func (m *Manifest) Validate() error {
	var errs []error

	if m.Init == "" {
		errs = append(errs, errors.New("init source missing"))
	}

	for _, file := range m.Files {
		if file.Path == "" || file.Source == "" {
			errs = append(errs, fmt.Errorf("file %q: path and source required", file.Path))
		}
	}

	for _, symlink := range m.Symlinks {
		if symlink.Path == "" || symlink.Target == "" {
			errs = append(errs, fmt.Errorf("symlink %q: path and target required", symlink.Path))
		}
	}

	for _, device := range m.Devices {
		if device.Path == "" {
			errs = append(errs, errors.New("device: path required"))
			continue
		}

		err := device.Device().Validate()
		if err != nil {
			errs = append(errs, fmt.Errorf("device %q: %w", device.Path, err))
		}
	}

	for _, item := range m.Items {
		if item.Name == "" || strings.ContainsRune(item.Name, '/') {
			errs = append(errs, fmt.Errorf("item %q: invalid name", item.Name))
			continue
		}

		_, err := argblob.Encode(item.Argv)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %q: %w", item.Name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, errors.Join(errs...))
	}

	return nil
}

// Sources returns the source paths of the init and all files.
func (m *Manifest) Sources() []string {
	sources := make([]string, 0, len(m.Files)+1)
	sources = append(sources, m.Init)

	for _, file := range m.Files {
		sources = append(sources, file.Source)
	}

	return sources
}

// AddLibraries adds the given shared objects to the [Archive] at the same
// paths they have on the host. Paths that are in the archive already are
// skipped.
func AddLibraries(archive *Archive, libs []string) error {
	for _, lib := range libs {
		err := archive.Tree().AddRegular(lib, lib, 0)
		if err != nil && !errors.Is(err, ErrTreeNodeExists) {
			return fmt.Errorf("add library %s: %w", lib, err)
		}
	}

	return nil
}

// ItemPaths returns the archive paths of the startup items in launch order.
//
// The names are prefixed with the zero padded index of the item, so the
// lexical order of the paths is the order of the items.
func (m *Manifest) ItemPaths() []string {
	width := max(len(strconv.Itoa(len(m.Items)-1)), 2) //nolint:mnd

	paths := make([]string, len(m.Items))
	for idx, item := range m.Items {
		name := fmt.Sprintf("%0*d-%s", width, idx, item.Name)
		paths[idx] = path.Join(StartupItemsDir, name)
	}

	return paths
}

// AddTo adds the content described by the [Manifest] to the given [Archive].
func (m *Manifest) AddTo(archive *Archive) error {
	tree := archive.Tree()

	dirs := append(sysinit.StandardDirectories(), StartupItemsDir)
	for _, dir := range append(dirs, m.Directories...) {
		_, err := tree.Mkdir(dir)
		if err != nil {
			return fmt.Errorf("add directory %s: %w", dir, err)
		}
	}

	err := tree.AddRegular(InitPath, m.Init, executableMode)
	if err != nil {
		return fmt.Errorf("add init: %w", err)
	}

	for _, file := range m.Files {
		err := tree.AddRegular(file.Path, file.Source, file.Mode)
		if err != nil {
			return fmt.Errorf("add file %s: %w", file.Path, err)
		}
	}

	for _, symlink := range m.Symlinks {
		err := tree.Ln(symlink.Target, symlink.Path)
		if err != nil {
			return fmt.Errorf("add symlink %s: %w", symlink.Path, err)
		}
	}

	for _, device := range m.Devices {
		mode := device.Mode
		if mode == 0 {
			mode = deviceMode
		}

		err := tree.AddDevice(device.Path, device.Device(), mode)
		if err != nil {
			return fmt.Errorf("add device %s: %w", device.Path, err)
		}
	}

	err = tree.AddDevice(ConsolePath, Console, deviceMode)
	if err != nil && !errors.Is(err, ErrTreeNodeExists) {
		return fmt.Errorf("add device %s: %w", ConsolePath, err)
	}

	for idx, itemPath := range m.ItemPaths() {
		blob, err := argblob.Encode(m.Items[idx].Argv)
		if err != nil {
			return fmt.Errorf("encode item %s: %w", m.Items[idx].Name, err)
		}

		err = tree.AddData(itemPath, blob, blobMode)
		if err != nil {
			return fmt.Errorf("add item %s: %w", itemPath, err)
		}
	}

	return nil
}
