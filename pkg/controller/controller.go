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

// Package controller runs the device's cooperative main loop: one tick
// services the console link, the radio, the status icons and the tag
// reader in a fixed order on a single goroutine.
package controller

import (
	"context"
	"fmt"
	"time"

	"github.com/ZaparooProject/planttag/pkg/display"
	"github.com/ZaparooProject/planttag/pkg/identity"
	"github.com/ZaparooProject/planttag/pkg/ingest"
	"github.com/ZaparooProject/planttag/pkg/radio"
	"github.com/ZaparooProject/planttag/pkg/radio/at"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

const (
	DefaultTick = time.Millisecond

	readyMessage     = "BLE Ready"
	nameLabelMessage = "Bluetooth name:"
	resultRows       = 2
)

// Radio is the BLE session as the loop uses it.
type Radio interface {
	Ready() bool
	Name() (string, error)
	SetName(name string) error
	BringUp(progress func(percent int)) radio.BringUpReport
	EnableNotify(handle int) error
	CheckConnectionStatus() radio.ConnectionState
	Notify(target at.NotifyTarget, payload string) error
	SendMessage(payload string) error
}

type TagReader interface {
	Poll() ([]byte, bool, error)
}

type Ingestor interface {
	Poll() ingest.Outcome
	Busy() bool
}

type TableSource interface {
	Table() *identity.Table
}

type ChargingSignal interface {
	Active() (bool, error)
}

type Publisher interface {
	Publish(res identity.Resolution) error
}

// Options wires the loop. Radio, Display and Table are required; the rest
// may be left nil to disable that part of the tick.
type Options struct {
	Radio        Radio
	Display      display.Display
	Table        TableSource
	Reader       TagReader
	Ingest       Ingestor
	Charging     ChargingSignal
	Publisher    Publisher
	Clock        clockwork.Clock
	RadioName    string
	NotifyTarget at.NotifyTarget
	NotifyHandle int
	Tick         time.Duration
}

// Indicators remembers which icons are on screen so each is redrawn only
// when its state changes.
type Indicators struct {
	ConnectedShown bool
	ChargingShown  bool
}

type Controller struct {
	opts       Options
	clock      clockwork.Clock
	indicators Indicators
	ticks      uint64
}

func New(opts Options) *Controller {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	return &Controller{opts: opts, clock: opts.Clock}
}

func (c *Controller) Indicators() Indicators {
	return c.indicators
}

// Ticks is the number of completed iterations.
func (c *Controller) Ticks() uint64 {
	return c.ticks
}

// Run ticks until ctx is cancelled, sleeping the tick period between
// iterations.
func (c *Controller) Run(ctx context.Context) error {
	log.Info().Dur("tick", c.opts.Tick).Msg("controller: starting main loop")
	for {
		c.Tick()

		select {
		case <-ctx.Done():
			log.Info().Uint64("ticks", c.ticks).Msg("controller: stopped")
			return nil
		case <-c.clock.After(c.opts.Tick):
		}
	}
}

// Tick runs one iteration. While a table frame is being received nothing
// else is serviced.
func (c *Controller) Tick() {
	defer func() { c.ticks++ }()

	if c.opts.Ingest != nil {
		if out := c.opts.Ingest.Poll(); out.Err != nil {
			log.Debug().Err(out.Err).Msg("controller: console poll")
		}
		if c.opts.Ingest.Busy() {
			return
		}
	}

	if !c.opts.Radio.Ready() {
		c.bringUp()
	}
	c.pollConnection()
	c.pollCharging()
	c.pollReader()
}

func (c *Controller) show(err error, what string) {
	if err != nil {
		log.Warn().Err(err).Msgf("controller: failed to draw %s", what)
	}
}

func (c *Controller) bringUp() {
	d := c.opts.Display
	r := c.opts.Radio

	if c.opts.RadioName != "" {
		if err := r.SetName(c.opts.RadioName); err != nil {
			log.Warn().Err(err).Msg("controller: failed to set radio name")
		}
	}

	name, err := r.Name()
	if err != nil {
		name = "unknown"
	}
	c.show(display.ShowLine(d, 0, display.NameLabelY, nameLabelMessage), "name label")
	c.show(display.ShowLine(d, 0, display.NameY, name), "radio name")

	report := r.BringUp(func(percent int) {
		c.show(display.ShowStatus(d, fmt.Sprintf("Loading %d%%", percent)), "progress")
	})
	c.show(display.ShowStatus(d, readyMessage), "ready message")

	if failed := report.Failed(); len(failed) > 0 {
		log.Warn().Strs("failed", failed).Msg("controller: radio ready with failed steps")
	}

	if c.opts.NotifyHandle > 0 {
		if err := r.EnableNotify(c.opts.NotifyHandle); err != nil {
			log.Warn().Err(err).Msg("controller: failed to enable notifications")
		}
	}
}

func (c *Controller) pollConnection() {
	state := c.opts.Radio.CheckConnectionStatus()
	switch {
	case state == radio.Connected && !c.indicators.ConnectedShown:
		c.show(display.ShowIcon(c.opts.Display,
			display.ConnectionIconX, display.ConnectionIconY, display.Bluetooth), "connection icon")
		c.indicators.ConnectedShown = true
		log.Info().Msg("controller: central connected")
	case state == radio.Disconnected && c.indicators.ConnectedShown:
		c.show(display.ClearIcon(c.opts.Display,
			display.ConnectionIconX, display.ConnectionIconY), "connection icon")
		c.indicators.ConnectedShown = false
		log.Info().Msg("controller: central disconnected")
	}
}

func (c *Controller) pollCharging() {
	if c.opts.Charging == nil {
		return
	}

	charging, err := c.opts.Charging.Active()
	if err != nil {
		log.Debug().Err(err).Msg("controller: failed to read charging input")
		return
	}

	switch {
	case charging && !c.indicators.ChargingShown:
		c.show(display.ShowIcon(c.opts.Display,
			display.ChargingIconX, display.ChargingIconY, display.Charging), "charging icon")
		c.indicators.ChargingShown = true
	case !charging && c.indicators.ChargingShown:
		c.show(display.ClearIcon(c.opts.Display,
			display.ChargingIconX, display.ChargingIconY), "charging icon")
		c.indicators.ChargingShown = false
	}
}

func (c *Controller) pollReader() {
	if c.opts.Reader == nil {
		return
	}

	raw, ok, err := c.opts.Reader.Poll()
	if err != nil {
		log.Warn().Err(err).Msg("controller: failed to poll tag reader")
		return
	}
	if !ok {
		return
	}

	log.Debug().Hex("raw", raw).Msg("controller: tag frame")
	uid, ok := identity.ExtractUID(raw)
	if !ok {
		log.Info().Msg("controller: no uid in tag frame")
		return
	}

	c.Resolve(uid)
}

// Resolve looks uid up and sends the result to the screen, the radio and
// the relay.
func (c *Controller) Resolve(uid string) identity.Resolution {
	res := identity.Lookup(uid, c.opts.Table.Table())
	msg := res.Message()
	log.Info().Str("uid", uid).Bool("found", res.Found).Msg(msg)

	c.show(c.showResult(msg), "result")

	if c.opts.Radio.Ready() {
		if err := c.opts.Radio.Notify(c.opts.NotifyTarget, msg); err != nil {
			log.Warn().Err(err).Msg("controller: notify failed")
		}
		if err := c.opts.Radio.SendMessage(msg); err != nil {
			log.Warn().Err(err).Msg("controller: send message failed")
		}
	}

	if c.opts.Publisher != nil {
		if err := c.opts.Publisher.Publish(res); err != nil {
			log.Debug().Err(err).Msg("controller: relay publish failed")
		}
	}
	return res
}

func (c *Controller) showResult(msg string) error {
	d := c.opts.Display
	if err := d.ClearRect(0, display.ResultY, display.Width, resultRows*display.LineHeight); err != nil {
		return err
	}
	lines := display.Wrap(msg, display.Columns)
	for i, line := range lines[:min(len(lines), resultRows)] {
		if err := d.DrawText(0, display.ResultY+i*display.LineHeight, line); err != nil {
			return err
		}
	}
	return d.Flush()
}
