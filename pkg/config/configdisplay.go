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

const (
	DisplayDriverLog     = "log"
	DisplayDriverSerial  = "serial"
	DisplayDriverSSD1306 = "ssd1306"

	DefaultSSD1306Addr = 0x3C
)

// Display selects where the 128x64 status screen is rendered. The serial
// driver talks to a tty2oled-compatible board; ssd1306 drives the panel
// directly over I2C.
type Display struct {
	Driver   string `toml:"driver" validate:"oneof=log serial ssd1306"`
	Path     string `toml:"path,omitempty" validate:"required_if=Driver serial"`
	I2CBus   string `toml:"i2c_bus,omitempty"`
	BaudRate int    `toml:"baud_rate" validate:"min=1200"`
	I2CAddr  uint16 `toml:"i2c_addr" validate:"min=1,max=127"`
}

func (c *Instance) Display() Display {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Display
}
