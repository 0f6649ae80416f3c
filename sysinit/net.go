// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"

	"github.com/vishvananda/netlink"
)

const loopbackInterface = "lo"

// ConfigureLoopbackInterface brings the loopback interface up.
//
// Kernel should configure address already automatically.
func ConfigureLoopbackInterface() error {
	link, err := netlink.LinkByName(loopbackInterface)
	if err != nil {
		return fmt.Errorf("get link %s: %w", loopbackInterface, err)
	}

	err = netlink.LinkSetUp(link)
	if err != nil {
		return fmt.Errorf("set link %s up: %w", loopbackInterface, err)
	}

	return nil
}
