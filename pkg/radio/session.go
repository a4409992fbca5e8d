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

// Package radio sequences an AT-driven BLE module through bring-up and
// exposes connection polling and notifications on top of the at driver.
package radio

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/planttag/pkg/radio/at"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

var (
	// ErrNack means the module did not acknowledge a command.
	ErrNack = errors.New("radio: command not acknowledged")
	// ErrNotReady means the module did not prompt for notification data, so
	// nothing was written.
	ErrNotReady = errors.New("radio: module not ready for data")
)

// Executor is the slice of at.Driver the session needs.
type Executor interface {
	Do(cmd at.Command, timeout time.Duration) (at.Exchange, at.Response, error)
	Write(payload []byte) error
}

type Options struct {
	Clock          clockwork.Clock
	CommandTimeout time.Duration
	SettleDelay    time.Duration
}

type Session struct {
	drv     Executor
	clock   clockwork.Clock
	timeout time.Duration
	settle  time.Duration
	state   SessionState
}

func NewSession(drv Executor, opts Options) *Session {
	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	timeout := opts.CommandTimeout
	if timeout <= 0 {
		timeout = time.Second
	}
	return &Session{
		drv:     drv,
		clock:   clock,
		timeout: timeout,
		settle:  opts.SettleDelay,
		state:   StateUninitialized,
	}
}

func (s *Session) State() SessionState {
	return s.state
}

func (s *Session) Ready() bool {
	return s.state == StateReady
}

func (s *Session) setState(to SessionState) {
	if !IsValidTransition(s.state, to) {
		log.Warn().
			Stringer("from", s.state).
			Stringer("to", to).
			Msg("radio: ignoring invalid session transition")
		return
	}
	log.Debug().Stringer("from", s.state).Stringer("to", to).Msg("radio: session transition")
	s.state = to
}

// run issues one command. The error wraps ErrNack when the reply did not
// classify as an ack, and carries any transport error as context.
func (s *Session) run(cmd at.Command) (at.Response, error) {
	_, resp, err := s.drv.Do(cmd, s.timeout)
	if resp.OK() {
		return resp, nil
	}
	if err != nil {
		return resp, fmt.Errorf("%w: %s (%s): %w", ErrNack, cmd.Name, resp.Result, err)
	}
	return resp, fmt.Errorf("%w: %s (%s)", ErrNack, cmd.Name, resp.Result)
}

func (s *Session) logStep(name string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("step", name).Msg("radio: step failed")
		return
	}
	log.Info().Str("step", name).Msg("radio: step succeeded")
}

// Reset restarts the module firmware. Failure is logged and returned but the
// session still drops back to Uninitialized.
func (s *Session) Reset() error {
	_, err := s.run(at.Reset())
	s.logStep("reset", err)
	if s.state != StateUninitialized {
		s.setState(StateUninitialized)
	}
	return err
}

// InitModule is the AT sanity probe.
func (s *Session) InitModule() error {
	_, err := s.run(at.Probe())
	s.logStep("init_module", err)
	return err
}

// Start runs the power-on handshake: reset, then the probe. Both are
// non-fatal.
func (s *Session) Start() {
	_ = s.Reset()
	_ = s.InitModule()
}

func (s *Session) Name() (string, error) {
	resp, err := s.run(at.QueryName())
	if err != nil {
		log.Warn().Err(err).Msg("radio: failed to get name")
		return "", err
	}
	log.Info().Str("name", resp.Value).Msg("radio: advertised name")
	return resp.Value, nil
}

func (s *Session) SetName(name string) error {
	_, err := s.run(at.SetName(name))
	s.logStep("set_name", err)
	return err
}

// StepResult is the outcome of one bring-up command.
type StepResult struct {
	Err  error
	Name string
}

type BringUpReport struct {
	Steps []StepResult
}

// Failed lists the steps that were not acknowledged.
func (r BringUpReport) Failed() []string {
	var failed []string
	for _, step := range r.Steps {
		if step.Err != nil {
			failed = append(failed, step.Name)
		}
	}
	return failed
}

func bringUpSteps() []at.Command {
	return []at.Command{
		at.BLEInit(at.BLERoleServer),
		at.ServiceCreate(),
		at.ServiceStart(),
		at.AdvertiseStart(),
	}
}

// BringUp attempts each BLE setup command once, in order. A failed step is
// reported and the sequence carries on, since the module may already be in
// the target state from an earlier session. Each step is followed by the
// settle delay. progress receives 0 before the first step and 25, 50, 75,
// 100 after each one.
func (s *Session) BringUp(progress func(percent int)) BringUpReport {
	if progress == nil {
		progress = func(int) {}
	}

	s.setState(StateBringingUp)

	steps := bringUpSteps()
	report := BringUpReport{Steps: make([]StepResult, 0, len(steps))}

	progress(0)
	for i, cmd := range steps {
		_, err := s.run(cmd)
		s.logStep(cmd.Name, err)
		report.Steps = append(report.Steps, StepResult{Name: cmd.Name, Err: err})

		if s.settle > 0 {
			s.clock.Sleep(s.settle)
		}
		progress((i + 1) * 100 / len(steps))
	}

	s.setState(StateReady)

	if failed := report.Failed(); len(failed) > 0 {
		log.Warn().Strs("failed", failed).Msg("radio: bring-up finished with failures")
	} else {
		log.Info().Msg("radio: bring-up complete")
	}
	return report
}

// CheckConnectionStatus polls the module. It shares the command timeout with
// every other exchange, so it is not free.
func (s *Session) CheckConnectionStatus() ConnectionState {
	resp, err := s.run(at.ConnQuery())
	if err != nil {
		log.Debug().Err(err).Msg("radio: connection query failed")
		return Disconnected
	}
	if resp.Value == at.ConnConnected {
		return Connected
	}
	return Disconnected
}

func (s *Session) EnableNotify(handle int) error {
	_, err := s.run(at.EnableNotify(handle))
	s.logStep("enable_notify", err)
	return err
}

func wrapLine(payload string) []byte {
	return []byte("\n" + payload + "\n")
}

// Notify announces the payload length and, only once the module prompts for
// data, writes the payload.
func (s *Session) Notify(target at.NotifyTarget, payload string) error {
	_, err := s.run(at.Notify(target, len(payload)))
	if err != nil {
		log.Warn().Err(err).Msg("radio: failed to initiate notification")
		return fmt.Errorf("%w: %w", ErrNotReady, err)
	}

	err = s.drv.Write(wrapLine(payload))
	if err != nil {
		log.Warn().Err(err).Msg("radio: failed to write notification payload")
		return fmt.Errorf("failed to send notification: %w", err)
	}
	log.Debug().Str("payload", payload).Msg("radio: notification sent")
	return nil
}

// SendMessage writes the payload straight to the module with no command
// phase, for modules in passthrough mode.
func (s *Session) SendMessage(payload string) error {
	err := s.drv.Write(wrapLine(payload))
	if err != nil {
		log.Warn().Err(err).Msg("radio: failed to send message")
		return fmt.Errorf("failed to send message: %w", err)
	}
	log.Debug().Str("payload", payload).Msg("radio: message sent")
	return nil
}
