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

import (
	"path/filepath"
	"time"
)

type Table struct {
	Path string `toml:"path,omitempty"`
}

type Ingest struct {
	MaxFrameBytes int `toml:"max_frame_bytes" validate:"min=2"`
}

type Controller struct {
	TickMs int `toml:"tick_ms" validate:"min=0,max=1000"`
}

// TablePath resolves the identity table location. Relative paths are taken
// from the data directory.
func (c *Instance) TablePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	path := c.vals.Table.Path
	if path == "" {
		return filepath.Join(c.dataDir, TableFile)
	}
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.dataDir, path)
}

func (c *Instance) SetTablePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.vals.Table.Path = path
}

func (c *Instance) MaxFrameBytes() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.vals.Ingest.MaxFrameBytes
}

func (c *Instance) TickPeriod() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.vals.Controller.TickMs) * time.Millisecond
}
