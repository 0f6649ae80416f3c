// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sysinit

import (
	"log"
)

func logWarning(err error) {
	if err != nil {
		log.Print("WARNING ", err.Error())
	}
}
