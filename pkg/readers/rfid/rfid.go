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

// Package rfid polls a 125kHz UART tag reader. The reader sends one frame per
// tag presentation: a start byte, the UID as ASCII, and a short trailer
// ending in ETX.
package rfid

import (
	"bytes"
	"fmt"
	"time"

	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultBaudRate = 9600

	// PollTimeout bounds each port read so a poll with no data returns
	// promptly.
	PollTimeout = time.Millisecond

	// IdleGap ends a frame that never sent its ETX.
	IdleGap = 20 * time.Millisecond

	frameStart   = 0x02
	frameEnd     = 0x03
	maxFrameSize = 64
)

type Reader struct {
	port     helpers.SerialPort
	clock    clockwork.Clock
	lastByte time.Time
	path     string
	buf      []byte
}

// Open opens the reader's UART at path.
func Open(factory helpers.SerialPortFactory, path string, baudRate int, clock clockwork.Clock) (*Reader, error) {
	port, err := helpers.OpenSerial(factory, path, baudRate, PollTimeout)
	if err != nil {
		return nil, err
	}
	return NewReader(port, path, clock), nil
}

func NewReader(port helpers.SerialPort, path string, clock clockwork.Clock) *Reader {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Reader{port: port, path: path, clock: clock}
}

func (r *Reader) Path() string {
	return r.path
}

// Poll drains whatever the port has buffered and returns a frame once one
// is complete: either ETX was seen or the line has been quiet for IdleGap
// after some bytes arrived.
func (r *Reader) Poll() ([]byte, bool, error) {
	if frame, ok := r.takeFrame(); ok {
		return frame, true, nil
	}

	chunk := make([]byte, maxFrameSize)
	for {
		n, err := r.port.Read(chunk)
		if err != nil {
			return nil, false, fmt.Errorf("failed to read rfid port %s: %w", r.path, err)
		}
		if n == 0 {
			break
		}

		r.buf = append(r.buf, chunk[:n]...)
		r.lastByte = r.clock.Now()

		if len(r.buf) > maxFrameSize {
			log.Warn().Int("bytes", len(r.buf)).Msg("rfid: discarding line noise")
			if start := bytes.LastIndexByte(r.buf, frameStart); start >= 0 {
				r.buf = r.buf[start:]
			} else {
				r.buf = nil
			}
		}
		if frame, ok := r.takeFrame(); ok {
			return frame, true, nil
		}
	}

	if len(r.buf) > 0 && r.clock.Since(r.lastByte) >= IdleGap {
		r.align()
		frame := r.buf
		r.buf = nil
		if len(frame) == 0 {
			return nil, false, nil
		}
		return frame, true, nil
	}

	return nil, false, nil
}

// align drops everything before the first STX. With no STX in the buffer
// nothing in it can become a frame.
func (r *Reader) align() {
	start := bytes.IndexByte(r.buf, frameStart)
	switch {
	case start < 0:
		if len(r.buf) > 0 {
			log.Debug().Int("bytes", len(r.buf)).Msg("rfid: dropping bytes outside a frame")
		}
		r.buf = nil
	case start > 0:
		log.Debug().Int("bytes", start).Msg("rfid: dropping bytes before frame start")
		r.buf = r.buf[start:]
	}
}

// takeFrame returns the next STX..ETX frame. A frame restarted by a second
// STX before its ETX keeps only the last start.
func (r *Reader) takeFrame() ([]byte, bool) {
	for {
		end := bytes.IndexByte(r.buf, frameEnd)
		if end < 0 {
			return nil, false
		}
		start := bytes.LastIndexByte(r.buf[:end], frameStart)
		if start < 0 {
			log.Debug().Int("bytes", end+1).Msg("rfid: dropping bytes outside a frame")
			r.buf = r.buf[end+1:]
			continue
		}
		frame := append([]byte(nil), r.buf[start:end+1]...)
		r.buf = r.buf[end+1:]
		return frame, true
	}
}

func (r *Reader) Close() error {
	if err := r.port.Close(); err != nil {
		return fmt.Errorf("failed to close rfid port: %w", err)
	}
	return nil
}
