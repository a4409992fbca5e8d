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

// Package gpio reads the charging input and drives the confirmation LED,
// either through the kernel sysfs interface or through periph.io.
package gpio

import (
	"fmt"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/spf13/afero"
)

// Input is a digital input. Read reports true for a high level.
type Input interface {
	Read() (bool, error)
}

// Output is a digital output.
type Output interface {
	Write(high bool) error
	Toggle() error
}

// Signal is an input with a configured active level.
type Signal struct {
	in        Input
	activeLow bool
}

func NewSignal(in Input, activeLow bool) *Signal {
	return &Signal{in: in, activeLow: activeLow}
}

// Active reports whether the signal is asserted.
func (s *Signal) Active() (bool, error) {
	high, err := s.in.Read()
	if err != nil {
		return false, err
	}
	return high != s.activeLow, nil
}

// Pins holds the controller's signals. A field is nil when its pin is
// disabled in the config.
type Pins struct {
	Charging *Signal
	LED      Output
}

// Open sets up the configured pins. fs is only used by the sysfs driver.
func Open(cfg config.GPIO, fs afero.Fs) (Pins, error) {
	var pins Pins

	openIn := func(pin int) (Input, error) {
		if cfg.Driver == config.GPIODriverPeriph {
			return OpenPeriphInput(pin)
		}
		return OpenSysfsInput(fs, cfg.Root, pin)
	}
	openOut := func(pin int) (Output, error) {
		if cfg.Driver == config.GPIODriverPeriph {
			return OpenPeriphOutput(pin)
		}
		return OpenSysfsOutput(fs, cfg.Root, pin)
	}

	if cfg.ChargingPin >= 0 {
		in, err := openIn(cfg.ChargingPin)
		if err != nil {
			return Pins{}, fmt.Errorf("failed to open charging pin: %w", err)
		}
		pins.Charging = NewSignal(in, cfg.ChargingActiveLow)
	}

	if cfg.LEDPin >= 0 {
		out, err := openOut(cfg.LEDPin)
		if err != nil {
			return Pins{}, fmt.Errorf("failed to open led pin: %w", err)
		}
		pins.LED = out
	}

	return pins, nil
}
