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

// Package ingest receives identity tables over the wired console link. A
// table arrives as one frame: '<', the JSON payload, '>'.
package ingest

import (
	"fmt"

	"github.com/ZaparooProject/planttag/pkg/identity"
)

const (
	StartDelimiter = '<'
	EndDelimiter   = '>'

	DefaultMaxFrameBytes = 16 * 1024
)

// ErrFrameTooLarge is reported when a frame grows past the size limit. It
// is also an identity.ErrParse.
var ErrFrameTooLarge = fmt.Errorf("%w: frame exceeds size limit", identity.ErrParse)

type FramerState int

const (
	Idle FramerState = iota
	Recording
)

func (s FramerState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}

// Event says what a single byte did to the framer.
type Event int

const (
	EventNone Event = iota
	// EventIgnored is a byte outside any frame.
	EventIgnored
	// EventStarted is a start delimiter; any partial frame was dropped.
	EventStarted
	EventByte
	EventFrame
	EventOverflow
)

func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventIgnored:
		return "ignored"
	case EventStarted:
		return "started"
	case EventByte:
		return "byte"
	case EventFrame:
		return "frame"
	case EventOverflow:
		return "overflow"
	default:
		return fmt.Sprintf("unknown(%d)", int(e))
	}
}

// Framer splits a byte stream into delimited frames. There is no escaping:
// a '<' inside a payload restarts the frame and a '>' ends it.
type Framer struct {
	buf      []byte
	maxBytes int
	state    FramerState
}

func NewFramer(maxBytes int) *Framer {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFrameBytes
	}
	return &Framer{maxBytes: maxBytes}
}

func (f *Framer) State() FramerState {
	return f.state
}

// Buffered returns how many payload bytes the current frame holds.
func (f *Framer) Buffered() int {
	return len(f.buf)
}

// Feed consumes one byte. The frame is returned only with EventFrame.
func (f *Framer) Feed(b byte) ([]byte, Event) {
	switch {
	case b == StartDelimiter:
		f.buf = f.buf[:0]
		f.state = Recording
		return nil, EventStarted
	case f.state == Idle:
		return nil, EventIgnored
	case b == EndDelimiter:
		frame := append([]byte(nil), f.buf...)
		f.reset()
		return frame, EventFrame
	case len(f.buf) >= f.maxBytes:
		f.reset()
		return nil, EventOverflow
	default:
		f.buf = append(f.buf, b)
		return nil, EventByte
	}
}

func (f *Framer) reset() {
	f.buf = nil
	f.state = Idle
}
