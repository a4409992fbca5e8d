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

package config

// RFID is the serial RFID reader that reports tag frames.
type RFID struct {
	Path     string `toml:"path" validate:"required"`
	BaudRate int    `toml:"baud_rate" validate:"min=1200"`
}

// Console is the wired link the desktop sender ships identity tables over.
type Console struct {
	Path     string `toml:"path" validate:"required"`
	BaudRate int    `toml:"baud_rate" validate:"min=1200"`
}

func (c *Instance) RFID() RFID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.RFID
}

func (c *Instance) Console() Console {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Console
}
