// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"fmt"
	"strings"
)

// ExitHandler is passed to [Run] and called with the first error a [Func]
// returns or nil if all [Func]s ran without error.
type ExitHandler func(err error)

// ExitAction is what the init does once there is nothing left to supervise.
type ExitAction string

// Exit actions.
const (
	ExitActionPoweroff ExitAction = "poweroff"
	ExitActionReboot   ExitAction = "reboot"
	ExitActionHalt     ExitAction = "halt"
	ExitActionExit     ExitAction = "exit"
)

// ExitActions returns all known [ExitAction]s.
func ExitActions() []ExitAction {
	return []ExitAction{
		ExitActionPoweroff,
		ExitActionReboot,
		ExitActionHalt,
		ExitActionExit,
	}
}

// String implements [fmt.Stringer].
func (a *ExitAction) String() string {
	return string(*a)
}

// Set implements [flag.Value].
func (a *ExitAction) Set(value string) error {
	for _, known := range ExitActions() {
		if string(known) == value {
			*a = known
			return nil
		}
	}

	return fmt.Errorf("%w: %q (one of: %s)", ErrUnknownExitAction, value, joinActions())
}

// Type implements the pflag.Value interface.
func (*ExitAction) Type() string {
	return "action"
}

// Do executes the action. For [ExitActionExit] it does nothing, the caller is
// expected to terminate the process. Otherwise it does not return unless in
// case of error.
func (a ExitAction) Do() error {
	switch a {
	case ExitActionPoweroff:
		return Poweroff()
	case ExitActionReboot:
		return Reboot()
	case ExitActionHalt:
		return Halt()
	case ExitActionExit:
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownExitAction, string(a))
	}
}

func joinActions() string {
	names := make([]string, 0, len(ExitActions()))
	for _, action := range ExitActions() {
		names = append(names, string(action))
	}

	return strings.Join(names, ", ")
}
