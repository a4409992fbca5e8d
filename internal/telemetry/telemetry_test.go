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


package telemetry

import (
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScrub(t *testing.T) {
	t.Parallel()

	event := &sentry.Event{
		ServerName: "plant-pi",
		User:       sentry.User{IPAddress: "10.0.0.7"},
		Message:    "failed to persist identity table",
		Extra: map[string]any{
			"uid":     "0A1B2C3D",
			"raw":     "02304131",
			"payload": `{"0A1B2C3D":{}}`,
			"name":    "Basil",
			"records": 3,
		},
		Exception: []sentry.Exception{
			{Stacktrace: &sentry.Stacktrace{Frames: []sentry.Frame{{
				AbsPath:  "/home/builder/planttag/pkg/identity/store.go",
				Filename: "pkg/identity/store.go",
				Lineno:   97,
			}}}},
			{Type: "no stack"},
		},
	}

	got := scrub(event)
	require.NotNil(t, got)
	assert.Empty(t, got.ServerName)
	assert.Empty(t, got.User.IPAddress)
	assert.Equal(t, "failed to persist identity table", got.Message)
	for _, k := range []string{"uid", "raw", "payload", "name"} {
		assert.Equal(t, "<redacted>", got.Extra[k], k)
	}
	assert.Equal(t, 3, got.Extra["records"])

	frame := got.Exception[0].Stacktrace.Frames[0]
	assert.Empty(t, frame.AbsPath)
	assert.Equal(t, "pkg/identity/store.go", frame.Filename)
	assert.Equal(t, 97, frame.Lineno)
}

func TestStartDisabled(t *testing.T) {
	t.Parallel()

	r, err := Start(Options{DSN: "https://key@sentry.example/1", DeviceID: "device-1"})
	require.NoError(t, err)
	assert.Nil(t, r)
}

func TestStartRequiresDSN(t *testing.T) {
	t.Parallel()

	r, err := Start(Options{Enabled: true, DeviceID: "device-1"})
	require.ErrorIs(t, err, ErrNoDSN)
	assert.Nil(t, r)
}

func TestNilReporter(t *testing.T) {
	t.Parallel()

	var r *Reporter
	assert.NotPanics(t, func() {
		r.Flush()
		r.Close()
	})
}
