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

package gpio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const (
	directionIn  = "in"
	directionOut = "out"
)

// SysfsPin is a pin under /sys/class/gpio.
type SysfsPin struct {
	fs   afero.Fs
	root string
	pin  int
}

func (p *SysfsPin) dir() string {
	return filepath.Join(p.root, "gpio"+strconv.Itoa(p.pin))
}

func (p *SysfsPin) export() error {
	_, err := p.fs.Stat(p.dir())
	if err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat gpio%d: %w", p.pin, err)
	}

	err = afero.WriteFile(p.fs, filepath.Join(p.root, "export"), []byte(strconv.Itoa(p.pin)), 0o200)
	if err != nil {
		return fmt.Errorf("failed to export gpio%d: %w", p.pin, err)
	}
	log.Debug().Int("pin", p.pin).Msg("exported gpio")
	return nil
}

func (p *SysfsPin) setDirection(dir string) error {
	err := afero.WriteFile(p.fs, filepath.Join(p.dir(), "direction"), []byte(dir), 0o644)
	if err != nil {
		return fmt.Errorf("failed to set gpio%d direction: %w", p.pin, err)
	}
	return nil
}

func openSysfs(fs afero.Fs, root string, pin int, dir string) (*SysfsPin, error) {
	p := &SysfsPin{fs: fs, root: root, pin: pin}
	if err := p.export(); err != nil {
		return nil, err
	}
	if err := p.setDirection(dir); err != nil {
		return nil, err
	}
	return p, nil
}

func OpenSysfsInput(fs afero.Fs, root string, pin int) (*SysfsPin, error) {
	return openSysfs(fs, root, pin, directionIn)
}

// OpenSysfsOutput exports pin as an output driven low.
func OpenSysfsOutput(fs afero.Fs, root string, pin int) (*SysfsPin, error) {
	p, err := openSysfs(fs, root, pin, directionOut)
	if err != nil {
		return nil, err
	}
	if err := p.Write(false); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *SysfsPin) Read() (bool, error) {
	data, err := afero.ReadFile(p.fs, filepath.Join(p.dir(), "value"))
	if err != nil {
		return false, fmt.Errorf("failed to read gpio%d: %w", p.pin, err)
	}
	switch strings.TrimSpace(string(data)) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("unexpected gpio%d value: %q", p.pin, data)
	}
}

func (p *SysfsPin) Write(high bool) error {
	v := "0"
	if high {
		v = "1"
	}
	err := afero.WriteFile(p.fs, filepath.Join(p.dir(), "value"), []byte(v), 0o644)
	if err != nil {
		return fmt.Errorf("failed to write gpio%d: %w", p.pin, err)
	}
	return nil
}

// Toggle inverts the level currently reported by the pin.
func (p *SysfsPin) Toggle() error {
	high, err := p.Read()
	if err != nil {
		return err
	}
	return p.Write(!high)
}
