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

package display

import (
	"errors"
	"fmt"
	"io"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Open builds the display selected in cfg. The returned closer releases the
// underlying port or bus.
func Open(cfg config.Display, factory helpers.SerialPortFactory) (Display, io.Closer, error) {
	switch cfg.Driver {
	case config.DisplayDriverLog, "":
		return NewLogDisplay(), nopCloser{}, nil
	case config.DisplayDriverSerial:
		port, err := helpers.OpenSerial(factory, cfg.Path, cfg.BaudRate, WaitDuration)
		if err != nil {
			return nil, nil, err
		}
		d, err := NewTTY2OLED(port, clockwork.NewRealClock(), WaitDuration)
		if err != nil {
			_ = port.Close()
			return nil, nil, err
		}
		return d, d, nil
	case config.DisplayDriverSSD1306:
		if _, err := host.Init(); err != nil {
			return nil, nil, fmt.Errorf("periph host init: %w", err)
		}
		bus, err := i2creg.Open(cfg.I2CBus)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open i2c bus %q: %w", cfg.I2CBus, err)
		}
		d, err := NewSSD1306(&i2c.Dev{Bus: bus, Addr: cfg.I2CAddr})
		if err != nil {
			_ = bus.Close()
			return nil, nil, err
		}
		return d, bus, nil
	default:
		return nil, nil, errors.New("unknown display driver: " + cfg.Driver)
	}
}
