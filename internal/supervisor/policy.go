// SPDX-FileCopyrightText: 2025 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package supervisor

import "fmt"

// Policy defines how a startup item that fails to load or spawn affects the
// remaining items.
type Policy string

const (
	// PolicyAbort fails the whole boot. No further items are launched.
	PolicyAbort Policy = "abort"

	// PolicySkip logs the failure and continues with the next item.
	PolicySkip Policy = "skip"
)

// String implements [fmt.Stringer].
func (p *Policy) String() string {
	return string(*p)
}

// Set implements [flag.Value].
func (p *Policy) Set(value string) error {
	switch Policy(value) {
	case PolicyAbort, PolicySkip:
		*p = Policy(value)
		return nil
	default:
		return fmt.Errorf("%w: %q (one of: %s, %s)",
			ErrUnknownPolicy, value, PolicyAbort, PolicySkip)
	}
}

// Type implements the pflag.Value interface.
func (*Policy) Type() string {
	return "policy"
}
