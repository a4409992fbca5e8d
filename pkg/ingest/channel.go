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

package ingest

import (
	"errors"
	"fmt"

	"github.com/ZaparooProject/planttag/pkg/display"
	"github.com/ZaparooProject/planttag/pkg/gpio"
	"github.com/ZaparooProject/planttag/pkg/identity"
	"github.com/rs/zerolog/log"
)

const (
	invalidMessage    = "Invalid JSON"
	saveFailedMessage = "Save failed"
)

// ByteSource yields at most one byte per call without blocking.
type ByteSource interface {
	PollByte() (byte, bool, error)
}

// Outcome reports what one poll did. Table is set only when a new table
// was stored.
type Outcome struct {
	Table *identity.Table
	Err   error
	Event Event
}

// Channel feeds console bytes through a Framer and replaces the identity
// table whenever a complete, valid frame arrives.
type Channel struct {
	src     ByteSource
	store   *identity.Store
	display display.Display
	led     gpio.Output
	framer  *Framer
}

// NewChannel wires the channel. disp and led may be nil.
func NewChannel(
	src ByteSource,
	store *identity.Store,
	disp display.Display,
	led gpio.Output,
	maxFrameBytes int,
) *Channel {
	return &Channel{
		src:     src,
		store:   store,
		display: disp,
		led:     led,
		framer:  NewFramer(maxFrameBytes),
	}
}

// Busy reports whether a frame is being received.
func (c *Channel) Busy() bool {
	return c.framer.State() == Recording
}

// Poll consumes at most one byte from the source.
func (c *Channel) Poll() Outcome {
	b, ok, err := c.src.PollByte()
	if err != nil {
		return Outcome{Err: err}
	}
	if !ok {
		return Outcome{}
	}

	frame, ev := c.framer.Feed(b)
	switch ev {
	case EventStarted:
		log.Debug().Msg("ingest: start of frame")
	case EventFrame:
		return c.ingest(frame)
	case EventOverflow:
		c.reject(ErrFrameTooLarge)
		return Outcome{Event: ev, Err: ErrFrameTooLarge}
	case EventNone, EventIgnored, EventByte:
	}
	return Outcome{Event: ev}
}

func (c *Channel) ingest(frame []byte) Outcome {
	log.Debug().Int("bytes", len(frame)).Msg("ingest: end of frame, parsing table")

	t, err := c.store.ReplaceFromJSON(frame)
	if err != nil {
		c.reject(err)
		return Outcome{Event: EventFrame, Err: err}
	}

	log.Info().Int("records", t.Len()).Msg("ingest: identity table updated")
	if c.led != nil {
		if err := c.led.Toggle(); err != nil {
			log.Warn().Err(err).Msg("ingest: failed to toggle confirmation led")
		}
	}
	return Outcome{Event: EventFrame, Table: t}
}

func (c *Channel) reject(err error) {
	log.Error().Err(err).Msg("ingest: table rejected")
	if c.display == nil {
		return
	}

	msg := invalidMessage
	if !errors.Is(err, identity.ErrParse) {
		msg = saveFailedMessage
	}
	if derr := display.ShowStatus(c.display, msg); derr != nil {
		log.Warn().Err(fmt.Errorf("show %q: %w", msg, derr)).Msg("ingest: display error")
	}
}
