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
	"fmt"
	"sync"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

var hostInit = sync.OnceValue(func() error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("periph host init: %w", err)
	}
	return nil
})

// PeriphPin is a pin driven through periph.io's register-level drivers.
type PeriphPin struct {
	pin   gpio.PinIO
	level gpio.Level
}

func resolvePin(pin int) (gpio.PinIO, error) {
	if err := hostInit(); err != nil {
		return nil, err
	}
	name := fmt.Sprintf("GPIO%d", pin)
	p := gpioreg.ByName(name)
	if p == nil {
		return nil, fmt.Errorf("pin %d (%s) not found in hardware", pin, name)
	}
	return p, nil
}

// OpenPeriphInput configures pin as an input with the pull-up enabled.
func OpenPeriphInput(pin int) (*PeriphPin, error) {
	p, err := resolvePin(pin)
	if err != nil {
		return nil, err
	}
	if err := p.In(gpio.PullUp, gpio.NoEdge); err != nil {
		return nil, fmt.Errorf("set pin %d to input: %w", pin, err)
	}
	return &PeriphPin{pin: p}, nil
}

func OpenPeriphOutput(pin int) (*PeriphPin, error) {
	p, err := resolvePin(pin)
	if err != nil {
		return nil, err
	}
	pp := &PeriphPin{pin: p}
	if err := pp.Write(false); err != nil {
		return nil, err
	}
	return pp, nil
}

func (p *PeriphPin) Read() (bool, error) {
	return p.pin.Read() == gpio.High, nil
}

func (p *PeriphPin) Write(high bool) error {
	level := gpio.Low
	if high {
		level = gpio.High
	}
	if err := p.pin.Out(level); err != nil {
		return fmt.Errorf("write pin %s: %w", p.pin.Name(), err)
	}
	p.level = level
	return nil
}

func (p *PeriphPin) Toggle() error {
	return p.Write(p.level == gpio.Low)
}
