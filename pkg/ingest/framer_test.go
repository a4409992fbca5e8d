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
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func feedAll(f *Framer, input string) (frames []string, events []Event) {
	for i := range len(input) {
		frame, ev := f.Feed(input[i])
		events = append(events, ev)
		if ev == EventFrame {
			frames = append(frames, string(frame))
		}
	}
	return frames, events
}

func TestFramerSingleFrame(t *testing.T) {
	t.Parallel()

	f := NewFramer(0)
	frames, _ := feedAll(f, `<{"TAG1":{}}>`)
	assert.Equal(t, []string{`{"TAG1":{}}`}, frames)
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 0, f.Buffered())
}

func TestFramerRestartDiscardsPartial(t *testing.T) {
	t.Parallel()

	f := NewFramer(0)
	frames, _ := feedAll(f, `<{"a":1}<{"b":2}>`)
	assert.Equal(t, []string{`{"b":2}`}, frames)
}

func TestFramerIgnoresBytesWhenIdle(t *testing.T) {
	t.Parallel()

	f := NewFramer(0)
	frames, events := feedAll(f, `noise>{}`)
	assert.Empty(t, frames)
	for _, ev := range events {
		assert.Equal(t, EventIgnored, ev)
	}
	assert.Equal(t, Idle, f.State())
}

func TestFramerStates(t *testing.T) {
	t.Parallel()

	f := NewFramer(0)
	assert.Equal(t, Idle, f.State())

	_, ev := f.Feed('<')
	assert.Equal(t, EventStarted, ev)
	assert.Equal(t, Recording, f.State())

	_, ev = f.Feed('{')
	assert.Equal(t, EventByte, ev)
	assert.Equal(t, 1, f.Buffered())

	frame, ev := f.Feed('>')
	assert.Equal(t, EventFrame, ev)
	assert.Equal(t, []byte("{"), frame)
	assert.Equal(t, Idle, f.State())
}

func TestFramerEmptyFrame(t *testing.T) {
	t.Parallel()

	f := NewFramer(0)
	frame, ev := f.Feed('<')
	require.Equal(t, EventStarted, ev)
	require.Nil(t, frame)

	frame, ev = f.Feed('>')
	assert.Equal(t, EventFrame, ev)
	assert.Empty(t, frame)
}

func TestFramerOverflow(t *testing.T) {
	t.Parallel()

	f := NewFramer(4)
	frames, events := feedAll(f, "<1234")
	assert.Empty(t, frames)
	assert.Equal(t, EventByte, events[len(events)-1])

	_, ev := f.Feed('5')
	assert.Equal(t, EventOverflow, ev)
	assert.Equal(t, Idle, f.State())
	assert.Equal(t, 0, f.Buffered())

	// the rest of the oversized frame is ignored until the next start
	frames, _ = feedAll(f, `67><ok>`)
	assert.Equal(t, []string{"ok"}, frames)
}

func TestFramerAtLimit(t *testing.T) {
	t.Parallel()

	f := NewFramer(4)
	frames, _ := feedAll(f, "<1234>")
	assert.Equal(t, []string{"1234"}, frames)
}

func TestStateStrings(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "recording", Recording.String())
	assert.Equal(t, "unknown(9)", FramerState(9).String())
	assert.Equal(t, "overflow", EventOverflow.String())
	assert.Equal(t, "unknown(42)", Event(42).String())
}

func payloadGen() *rapid.Generator[string] {
	return rapid.StringMatching(`[^<>]{0,64}`)
}

// TestPropertyReframing checks that whatever came before, the last start
// delimiter alone decides which bytes make up the frame.
func TestPropertyReframing(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		prefix := rapid.StringMatching(`[^>]{0,64}`).Draw(t, "prefix")
		payload := payloadGen().Draw(t, "payload")

		f := NewFramer(0)
		frames, _ := feedAll(f, prefix+"<"+payload+">")
		if len(frames) != 1 || frames[0] != payload {
			t.Fatalf("frames = %q, want [%q]", frames, payload)
		}
	})
}

func TestPropertyFrameRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		payload := payloadGen().Draw(t, "payload")

		framed, err := Frame([]byte(payload))
		if err != nil {
			t.Fatalf("Frame(%q): %v", payload, err)
		}
		frames, _ := feedAll(NewFramer(0), string(framed))
		if len(frames) != 1 || frames[0] != payload {
			t.Fatalf("frames = %q, want [%q]", frames, payload)
		}
	})
}

func TestFrameRejectsDelimiters(t *testing.T) {
	t.Parallel()

	for _, payload := range []string{`{"a":"<"}`, `{"a":">"}`, strings.Repeat("<", 3)} {
		_, err := Frame([]byte(payload))
		require.ErrorIs(t, err, ErrDelimiterInPayload, payload)
	}
}

func TestCheckFrameSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		frame    string
		maxBytes int
		wantErr  bool
	}{
		{name: "under limit", frame: "<123>", maxBytes: 4},
		{name: "at limit", frame: "<1234>", maxBytes: 4},
		{name: "over limit", frame: "<12345>", maxBytes: 4, wantErr: true},
		{name: "default limit", frame: "<" + strings.Repeat("x", DefaultMaxFrameBytes) + ">"},
		{name: "over default limit", frame: "<" + strings.Repeat("x", DefaultMaxFrameBytes+1) + ">", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := CheckFrameSize([]byte(tt.frame), tt.maxBytes)
			if !tt.wantErr {
				require.NoError(t, err)
				f := NewFramer(tt.maxBytes)
				frames, _ := feedAll(f, tt.frame)
				assert.Len(t, frames, 1)
				return
			}
			require.ErrorIs(t, err, ErrFrameTooLarge)

			f := NewFramer(tt.maxBytes)
			_, events := feedAll(f, tt.frame)
			assert.Contains(t, events, EventOverflow)
		})
	}
}
