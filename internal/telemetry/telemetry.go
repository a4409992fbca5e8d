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


// Package telemetry forwards error-level logs to Sentry when the owner has
// opted in. Events are tagged with the board and device ID; scanned UIDs,
// table payloads and build paths never leave the device.
package telemetry

import (
	"errors"
	"fmt"
	"time"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/getsentry/sentry-go"
	sentryzerolog "github.com/getsentry/sentry-go/zerolog"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const flushTimeout = 2 * time.Second

var ErrNoDSN = errors.New("telemetry: error reporting enabled without a dsn")

// log fields that carry tag or table data
var redactedFields = map[string]bool{
	"uid":     true,
	"raw":     true,
	"payload": true,
	"name":    true,
	"date":    true,
}

type Options struct {
	DSN      string
	DeviceID string
	Board    string
	Enabled  bool
}

// Reporter owns the Sentry hookup. A nil Reporter is disabled reporting and
// all its methods are no-ops.
type Reporter struct {
	writer *sentryzerolog.Writer
}

// Start sets up reporting and tees the global logger into Sentry. It
// returns a nil Reporter when reporting is off.
func Start(opts Options) (*Reporter, error) {
	if !opts.Enabled {
		log.Debug().Msg("error reporting disabled")
		return nil, nil //nolint:nilnil // nil Reporter is disabled reporting
	}
	if opts.DSN == "" {
		return nil, ErrNoDSN
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:              opts.DSN,
		Release:          config.AppName + "@" + config.AppVersion,
		Environment:      opts.Board,
		AttachStacktrace: true,
		SendDefaultPII:   false,
		MaxBreadcrumbs:   0,
		BeforeSend: func(event *sentry.Event, _ *sentry.EventHint) *sentry.Event {
			return scrub(event)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sentry: %w", err)
	}

	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTag("device_id", opts.DeviceID)
		scope.SetTag("board", opts.Board)
	})

	w, err := sentryzerolog.NewWithHub(sentry.CurrentHub(), sentryzerolog.Options{
		Levels:       []zerolog.Level{zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel},
		FlushTimeout: flushTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create sentry log writer: %w", err)
	}

	log.Logger = log.Output(zerolog.MultiLevelWriter(helpers.LogWriter(), w)).
		With().Timestamp().Caller().Logger()

	log.Info().Str("board", opts.Board).Msg("error reporting enabled")
	return &Reporter{writer: w}, nil
}

// Flush waits for queued events, e.g. before exiting on a panic.
func (r *Reporter) Flush() {
	if r == nil {
		return
	}
	sentry.Flush(flushTimeout)
}

// Close flushes and detaches the Sentry writer.
func (r *Reporter) Close() {
	if r == nil || r.writer == nil {
		return
	}
	_ = r.writer.Close()
	r.writer = nil
	sentry.Flush(flushTimeout)
}

// scrub drops the host name, tag data in log fields and absolute source
// paths from an event.
func scrub(event *sentry.Event) *sentry.Event {
	event.ServerName = ""
	event.User = sentry.User{}

	for k := range event.Extra {
		if redactedFields[k] {
			event.Extra[k] = "<redacted>"
		}
	}

	for i := range event.Exception {
		st := event.Exception[i].Stacktrace
		if st == nil {
			continue
		}
		for j := range st.Frames {
			st.Frames[j].AbsPath = ""
		}
	}

	return event
}
