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
	"strings"
	"time"

	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// tty2oled protocol commands.
const (
	CmdHandshake = "QWERTZ"
	CmdCore      = "CMDCOR"
	CmdContrast  = "CMDCON"
	CmdClear     = "CMDCLS"

	CommandTerminator = "\n"
	ContrastDefault   = 128
	TransitionNone    = "0"

	// WaitDuration is how long the board needs after each command.
	WaitDuration = 200 * time.Millisecond

	frameName = "planttag"
)

// TTY2OLED renders frames locally and pushes them to a tty2oled-compatible
// board as raw 128x64 XBM pictures.
type TTY2OLED struct {
	*Canvas
	port  helpers.SerialPort
	clock clockwork.Clock
	wait  time.Duration
}

// NewTTY2OLED performs the handshake on an open port. wait is the pause
// after each command; zero disables it.
func NewTTY2OLED(port helpers.SerialPort, clock clockwork.Clock, wait time.Duration) (*TTY2OLED, error) {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	d := &TTY2OLED{
		Canvas: NewCanvas(),
		port:   port,
		clock:  clock,
		wait:   wait,
	}

	if err := d.sendCommand(CmdHandshake); err != nil {
		return nil, fmt.Errorf("failed to send handshake: %w", err)
	}
	if err := d.sendCommand(fmt.Sprintf("%s,%d", CmdContrast, ContrastDefault)); err != nil {
		return nil, fmt.Errorf("failed to send contrast command: %w", err)
	}
	if err := d.sendCommand(CmdClear); err != nil {
		return nil, fmt.Errorf("failed to clear display: %w", err)
	}
	return d, nil
}

func (d *TTY2OLED) sendCommand(command string) error {
	_, err := d.port.Write([]byte(command + CommandTerminator))
	if err != nil {
		if isDisconnectionError(err) {
			log.Info().Err(err).Msg("tty2oled device disconnected - write error")
		}
		return fmt.Errorf("failed to write to port: %w", err)
	}
	log.Debug().Str("command", command).Msg("tty2oled: sent command")

	if d.wait > 0 {
		d.clock.Sleep(d.wait)
	}
	return nil
}

// Flush announces a picture and streams the frame bitmap after it.
func (d *TTY2OLED) Flush() error {
	if err := d.sendCommand(CmdCore + "," + frameName + "," + TransitionNone); err != nil {
		return fmt.Errorf("failed to send CMDCOR command: %w", err)
	}

	data := d.XBM()
	n, err := d.port.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write picture data to port: %w", err)
	}
	if n != len(data) {
		return fmt.Errorf("incomplete picture data write: wrote %d of %d bytes", n, len(data))
	}
	return nil
}

func (d *TTY2OLED) Close() error {
	if err := d.port.Close(); err != nil {
		return fmt.Errorf("failed to close tty2oled port: %w", err)
	}
	return nil
}

func isDisconnectionError(err error) bool {
	var portErr *serial.PortError
	if errors.As(err, &portErr) {
		switch portErr.Code() {
		case serial.PortNotFound, serial.PortClosed, serial.InvalidSerialPort:
			return true
		default:
			return false
		}
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "input/output error") ||
		strings.Contains(errStr, "no such device") ||
		strings.Contains(errStr, "broken pipe")
}
