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

package helpers

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/rs/zerolog/log"
	"go.bug.st/serial/enumerator"
)

// SerialDevice describes a serial port that could host one of the
// controller's peripherals.
type SerialDevice struct {
	Path   string
	VID    string
	PID    string
	Serial string
	IsUSB  bool
}

func (d SerialDevice) String() string {
	if !d.IsUSB {
		return d.Path
	}
	return fmt.Sprintf("%s (usb %s:%s %s)", d.Path, d.VID, d.PID, d.Serial)
}

var linuxPortPrefixes = []string{
	"ttyUSB",
	"ttyACM",
	"ttyAMA", // on-board UARTs where the radio and RFID modules usually sit
	"ttyS",
	"serial",
}

func isCandidatePort(goos, path string) bool {
	name := filepath.Base(path)
	switch goos {
	case "linux":
		for _, prefix := range linuxPortPrefixes {
			if strings.HasPrefix(name, prefix) {
				return true
			}
		}
		return false
	case "darwin":
		return strings.HasPrefix(path, "/dev/tty.usbserial") ||
			strings.HasPrefix(path, "/dev/tty.usbmodem")
	case "windows":
		return strings.HasPrefix(path, "COM")
	default:
		return true
	}
}

// GetSerialDeviceList returns the serial ports on this host that look like
// they could be attached to the radio, RFID reader or console link.
func GetSerialDeviceList() ([]SerialDevice, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to get serial ports list: %w", err)
	}

	devices := make([]SerialDevice, 0, len(ports))
	for _, p := range ports {
		if !isCandidatePort(runtime.GOOS, p.Name) {
			log.Debug().Str("port", p.Name).Msg("skipping serial port")
			continue
		}
		devices = append(devices, SerialDevice{
			Path:   p.Name,
			VID:    strings.ToLower(p.VID),
			PID:    strings.ToLower(p.PID),
			Serial: p.SerialNumber,
			IsUSB:  p.IsUSB,
		})
	}

	return devices, nil
}
