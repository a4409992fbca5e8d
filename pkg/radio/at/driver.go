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

package at

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const readChunk = 256

// Exchange is the record of one request/response round trip.
type Exchange struct {
	Request  string
	Response string
	Elapsed  time.Duration
}

type Driver struct {
	port  helpers.SerialPort
	clock clockwork.Clock
	buf   []byte
	busy  atomic.Bool
}

// NewDriver wraps an open port. The port's read timeout bounds how long a
// single poll may block, so it should be small compared to command timeouts.
func NewDriver(port helpers.SerialPort, clock clockwork.Clock) *Driver {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Driver{
		port:  port,
		clock: clock,
		buf:   make([]byte, 0, readChunk),
	}
}

// Execute sends command and collects the reply until it is complete or
// timeout elapses. The returned text is trimmed. A timeout returns whatever
// was received together with ErrTimeout.
func (d *Driver) Execute(command string, timeout time.Duration) (string, error) {
	if !d.busy.CompareAndSwap(false, true) {
		return "", ErrBusy
	}
	defer d.busy.Store(false)

	d.buf = d.buf[:0]

	_, err := d.port.Write([]byte(command + LineTerminator))
	if err != nil {
		return "", fmt.Errorf("failed to write command %q: %w", command, err)
	}

	start := d.clock.Now()
	chunk := make([]byte, readChunk)
	complete := false
	for d.clock.Since(start) < timeout {
		n, err := d.port.Read(chunk)
		if err != nil {
			return "", fmt.Errorf("failed to read reply to %q: %w", command, err)
		}
		if n == 0 {
			continue
		}
		d.buf = append(d.buf, chunk[:n]...)
		if replyComplete(d.buf) {
			complete = true
			break
		}
	}

	if !utf8.Valid(d.buf) {
		log.Debug().Hex("raw", d.buf).Str("command", command).Msg("discarding undecodable reply")
		return "", fmt.Errorf("%w: reply to %q", ErrDecode, command)
	}

	reply := strings.TrimSpace(string(d.buf))
	if !complete {
		return reply, fmt.Errorf("%w: %q after %s", ErrTimeout, command, timeout)
	}
	return reply, nil
}

// Do runs a built command and classifies its reply. Transport errors are
// returned alongside the classification so callers can log them; a timed out
// or garbled reply always classifies as a failure.
func (d *Driver) Do(cmd Command, timeout time.Duration) (Exchange, Response, error) {
	start := d.clock.Now()
	reply, err := d.Execute(cmd.Request, timeout)
	ex := Exchange{
		Request:  cmd.Request,
		Response: reply,
		Elapsed:  d.clock.Since(start),
	}

	log.Debug().
		Str("command", cmd.Request).
		Str("reply", reply).
		Dur("elapsed", ex.Elapsed).
		Msg("at exchange")

	return ex, cmd.Classify(reply), err
}

// Write sends raw bytes with no terminator and reads nothing back. It is the
// data phase after a prompt.
func (d *Driver) Write(payload []byte) error {
	if !d.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer d.busy.Store(false)

	_, err := d.port.Write(payload)
	if err != nil {
		return fmt.Errorf("failed to write payload: %w", err)
	}
	return nil
}

func replyComplete(buf []byte) bool {
	text := strings.TrimRight(string(buf), " \r\n")
	if strings.HasSuffix(text, TokenPrompt) {
		return true
	}
	// only a full line can carry a final result code
	if !strings.HasSuffix(string(buf), "\n") {
		return false
	}
	for _, line := range strings.Split(text, "\n") {
		switch strings.TrimSpace(line) {
		case TokenOK, TokenError, TokenFail, TokenSendOK, TokenSendFail:
			return true
		}
	}
	return false
}
