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

const DefaultGPIORoot = "/sys/class/gpio"

// GPIO pins are sysfs line numbers. A negative pin disables that signal.
type GPIO struct {
	Root              string `toml:"root" validate:"required"`
	ChargingPin       int    `toml:"charging_pin" validate:"min=-1"`
	LEDPin            int    `toml:"led_pin" validate:"min=-1"`
	ChargingActiveLow bool   `toml:"charging_active_low"`
}

func (c *Instance) GPIO() GPIO {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.GPIO
}
