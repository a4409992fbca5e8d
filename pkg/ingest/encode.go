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
	"bytes"
	"errors"
	"fmt"

	"github.com/ZaparooProject/planttag/pkg/identity"
)

var ErrDelimiterInPayload = errors.New("ingest: payload contains a frame delimiter")

// Frame wraps payload in delimiters for sending. Payloads that contain a
// delimiter cannot be framed.
func Frame(payload []byte) ([]byte, error) {
	if bytes.ContainsAny(payload, string([]byte{StartDelimiter, EndDelimiter})) {
		return nil, ErrDelimiterInPayload
	}
	out := make([]byte, 0, len(payload)+2)
	out = append(out, StartDelimiter)
	out = append(out, payload...)
	return append(out, EndDelimiter), nil
}

// Encode serialises t and frames it. The JSON encoder escapes '<' and '>'
// inside names, so any table can be sent.
func Encode(t *identity.Table) ([]byte, error) {
	payload, err := t.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return Frame(payload)
}

// CheckFrameSize reports ErrFrameTooLarge when the payload of frame is more
// than a receiver limited to maxBytes would accept. A non-positive maxBytes
// means DefaultMaxFrameBytes.
func CheckFrameSize(frame []byte, maxBytes int) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxFrameBytes
	}
	if payload := len(frame) - 2; payload > maxBytes {
		return fmt.Errorf("%w: %d payload bytes, limit %d", ErrFrameTooLarge, payload, maxBytes)
	}
	return nil
}
