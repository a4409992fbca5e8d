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

// Package console reads the wired console link one byte at a time.
package console

import (
	"fmt"
	"time"

	"github.com/ZaparooProject/planttag/pkg/helpers"
)

const (
	DefaultBaudRate = 115200
	PollTimeout     = time.Millisecond
)

type Source struct {
	port helpers.SerialPort
	path string
	buf  [1]byte
}

func Open(factory helpers.SerialPortFactory, path string, baudRate int) (*Source, error) {
	port, err := helpers.OpenSerial(factory, path, baudRate, PollTimeout)
	if err != nil {
		return nil, err
	}
	return NewSource(port, path), nil
}

func NewSource(port helpers.SerialPort, path string) *Source {
	return &Source{port: port, path: path}
}

// PollByte returns the next byte if one is waiting. It never waits longer
// than the port's read timeout.
func (s *Source) PollByte() (byte, bool, error) {
	n, err := s.port.Read(s.buf[:])
	if err != nil {
		return 0, false, fmt.Errorf("failed to read console %s: %w", s.path, err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return s.buf[0], true, nil
}

func (s *Source) Close() error {
	if err := s.port.Close(); err != nil {
		return fmt.Errorf("failed to close console port: %w", err)
	}
	return nil
}
