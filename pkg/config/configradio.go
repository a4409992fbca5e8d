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

import "time"

type Radio struct {
	Path             string       `toml:"path" validate:"required"`
	Name             string       `toml:"name,omitempty" validate:"max=29"`
	NotifyTarget     NotifyTarget `toml:"notify_target"`
	BaudRate         int          `toml:"baud_rate" validate:"min=1200"`
	CommandTimeoutMs int          `toml:"command_timeout_ms" validate:"min=1"`
	SettleDelayMs    int          `toml:"settle_delay_ms" validate:"min=0,max=10000"`
	PollIntervalMs   int          `toml:"poll_interval_ms" validate:"min=1"`
	NotifyHandle     int          `toml:"notify_handle,omitempty" validate:"min=0"`
}

// NotifyTarget addresses the GATT characteristic used for notifications:
// connection index, service index and characteristic index.
type NotifyTarget struct {
	Conn    int `toml:"conn" validate:"min=0"`
	Service int `toml:"service" validate:"min=0"`
	Char    int `toml:"char" validate:"min=0"`
}

func (c *Instance) Radio() Radio {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Radio
}

func (c *Instance) RadioCommandTimeout() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Radio.CommandTimeoutMs) * time.Millisecond
}

func (c *Instance) RadioSettleDelay() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Radio.SettleDelayMs) * time.Millisecond
}

func (c *Instance) RadioPollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Radio.PollIntervalMs) * time.Millisecond
}

func (c *Instance) SetRadioName(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Radio.Name = name
}
