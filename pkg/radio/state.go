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

package radio

type SessionState int32

const (
	// StateUninitialized means the module has not been brought up since boot
	// or since the last reset.
	StateUninitialized SessionState = iota
	// StateBringingUp means the bring-up sequence is running.
	StateBringingUp
	// StateReady means every bring-up command has been attempted.
	StateReady
)

func (s SessionState) String() string {
	switch s {
	case StateUninitialized:
		return "Uninitialized"
	case StateBringingUp:
		return "BringingUp"
	case StateReady:
		return "Ready"
	default:
		return "Unknown"
	}
}

func IsValidTransition(from, to SessionState) bool {
	switch from {
	case StateUninitialized:
		return to == StateBringingUp
	case StateBringingUp:
		return to == StateReady || to == StateUninitialized
	case StateReady:
		// a module reset drops back to the start
		return to == StateUninitialized
	default:
		return false
	}
}

type ConnectionState int

const (
	Disconnected ConnectionState = iota
	Connected
)

func (c ConnectionState) String() string {
	if c == Connected {
		return "Connected"
	}
	return "Disconnected"
}
