// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package initramfs

import "fmt"

// DeviceType is the type of a device node.
type DeviceType string

// Device node types, as used by mknod(1).
const (
	DeviceTypeChar  DeviceType = "c"
	DeviceTypeBlock DeviceType = "b"
)

// Device identifies a device node by type and device numbers.
type Device struct {
	Type  DeviceType
	Major uint32
	Minor uint32
}

// Console is the console device the kernel opens for init before init runs.
var Console = Device{Type: DeviceTypeChar, Major: 5, Minor: 1} //nolint:mnd

func (d Device) String() string {
	return fmt.Sprintf("%s %d:%d", d.Type, d.Major, d.Minor)
}

// Validate returns [ErrUnknownDeviceType] for types other than
// [DeviceTypeChar] and [DeviceTypeBlock].
func (d Device) Validate() error {
	switch d.Type {
	case DeviceTypeChar, DeviceTypeBlock:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDeviceType, d.Type)
	}
}
