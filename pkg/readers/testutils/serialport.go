// Zaparoo Core
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Core.
//
// Zaparoo Core is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Core is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Core.  If not, see <http://www.gnu.org/licenses/>.

package testutils

import (
	"github.com/ZaparooProject/planttag/pkg/helpers"
	"go.bug.st/serial"
)

// FactoryFor returns a port factory that always hands out port and records
// the mode it was opened with.
func FactoryFor(port *MockSerialPort, opened *serial.Mode) helpers.SerialPortFactory {
	return func(_ string, mode *serial.Mode) (helpers.SerialPort, error) {
		if opened != nil {
			*opened = *mode
		}
		return port, nil
	}
}
