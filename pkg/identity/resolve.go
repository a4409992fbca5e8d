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

package identity

import (
	"fmt"
	"unicode/utf8"
)

const (
	frameHeaderLen  = 1
	frameTrailerLen = 3
)

// ExtractUID strips the reader's 1-byte header and 3-byte trailer and
// returns the UID text between them as written, so it matches the table key
// byte for byte.
func ExtractUID(frame []byte) (string, bool) {
	if len(frame) <= frameHeaderLen+frameTrailerLen {
		return "", false
	}
	body := frame[frameHeaderLen : len(frame)-frameTrailerLen]
	if !utf8.Valid(body) {
		return "", false
	}
	return string(body), true
}

func Resolve(uid string, table *Table) (TagRecord, bool) {
	return table.Get(uid)
}

// Resolution is the result of looking one UID up.
type Resolution struct {
	UID    string
	Record TagRecord
	Found  bool
}

func Lookup(uid string, table *Table) Resolution {
	r, ok := Resolve(uid, table)
	return Resolution{UID: uid, Record: r, Found: ok}
}

// Message is the one text used for the display, the radio and the relay,
// for hits and misses alike.
func (r Resolution) Message() string {
	if !r.Found {
		return fmt.Sprintf("UID %s not found", r.UID)
	}
	return fmt.Sprintf("Name: %s, Date: %s", r.Record.DisplayName, r.Record.PlantedDate)
}
