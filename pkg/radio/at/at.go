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

// Package at drives a radio module that only speaks line-based AT commands.
//
// The driver is half-duplex: one command is written, then the port is polled
// until a final result line or the data prompt arrives, or the timeout runs
// out. Only one exchange may be outstanding at a time.
package at

import "errors"

const (
	LineTerminator = "\r\n"

	TokenOK       = "OK"
	TokenError    = "ERROR"
	TokenFail     = "FAIL"
	TokenSendOK   = "SEND OK"
	TokenSendFail = "SEND FAIL"
	TokenBusy     = "busy p..."
	TokenPrompt   = ">"
	TokenName     = "+BLENAME:"
)

var (
	// ErrTimeout means no complete reply arrived before the deadline. Any
	// partial text is still returned to the caller.
	ErrTimeout = errors.New("at: timed out waiting for reply")
	// ErrDecode means the reply was not valid UTF-8 and was discarded.
	ErrDecode = errors.New("at: reply is not valid text")
	// ErrBusy means another exchange is already in flight.
	ErrBusy = errors.New("at: exchange already in progress")
)
