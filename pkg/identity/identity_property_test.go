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
	"testing"

	"github.com/spf13/afero"
	"pgregory.net/rapid"
)

func uidGen() *rapid.Generator[string] {
	return rapid.OneOf(
		rapid.StringMatching(`[A-Z0-9]{1,12}`),
		rapid.StringMatching(`[ -~]{1,12}`),
		rapid.StringMatching(`[ \t]?[0-9A-Fa-fé]{1,10}[ \t]?`),
	)
}

func recordGen(uid string) *rapid.Generator[TagRecord] {
	return rapid.Custom(func(t *rapid.T) TagRecord {
		return TagRecord{
			UID:         uid,
			DisplayName: rapid.StringMatching(`[A-Za-z ]{0,20}`).Draw(t, "name"),
			PlantedDate: rapid.StringMatching(`20[0-9]{2}-[01][0-9]-[0-3][0-9]`).Draw(t, "date"),
		}
	})
}

func tableGen() *rapid.Generator[*Table] {
	return rapid.Custom(func(t *rapid.T) *Table {
		uids := rapid.SliceOfNDistinct(uidGen(), 0, 8, rapid.ID[string]).Draw(t, "uids")
		records := make([]TagRecord, 0, len(uids))
		for _, uid := range uids {
			records = append(records, recordGen(uid).Draw(t, "record"))
		}
		return NewTable(records...)
	})
}

// TestPropertyReplaceOrKeep verifies that after any ingestion payload the
// store holds either exactly the new table or exactly the old one, in memory
// and on disk.
func TestPropertyReplaceOrKeep(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		fs := afero.NewMemMapFs()
		s := NewStore(fs, tablePath)

		previous := tableGen().Draw(t, "previous")
		if err := s.Replace(previous); err != nil {
			t.Fatalf("seeding store: %v", err)
		}

		next := tableGen().Draw(t, "next")
		payload, err := next.MarshalJSON()
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if rapid.Bool().Draw(t, "corrupt") {
			cut := rapid.IntRange(0, len(payload)-1).Draw(t, "cut")
			payload = payload[:cut]
		}

		parsed, parseErr := ParseTable(payload)
		_, replaceErr := s.ReplaceFromJSON(payload)

		want := previous
		if parseErr == nil {
			want = parsed
		}
		if (parseErr == nil) != (replaceErr == nil) {
			t.Fatalf("parse err %v but replace err %v", parseErr, replaceErr)
		}
		if !s.Table().Equal(want) {
			t.Fatalf("in-memory table is neither the old nor the new table")
		}

		onDisk := NewStore(fs, tablePath)
		if err := onDisk.Load(); err != nil {
			t.Fatalf("persisted table unreadable: %v", err)
		}
		if !onDisk.Table().Equal(want) {
			t.Fatalf("persisted table is neither the old nor the new table")
		}
	})
}

// TestPropertyUIDRoundTrip verifies that a UID framed by the reader comes
// back out of ExtractUID and resolves to the record stored under it.
func TestPropertyUIDRoundTrip(t *testing.T) {
	t.Parallel()
	rapid.Check(t, func(t *rapid.T) {
		uid := uidGen().Draw(t, "uid")
		record := recordGen(uid).Draw(t, "record")
		header := rapid.Byte().Draw(t, "header")
		trailer := rapid.SliceOfN(rapid.Byte(), 3, 3).Draw(t, "trailer")

		raw := append([]byte{header}, uid...)
		raw = append(raw, trailer...)

		got, ok := ExtractUID(raw)
		if !ok || got != uid {
			t.Fatalf("ExtractUID(%q) = %q, %v; want %q", raw, got, ok, uid)
		}

		tbl := NewTable(record)
		resolved, found := Resolve(got, tbl)
		if !found || resolved != record {
			t.Fatalf("Resolve(%q) = %+v, %v; want %+v", got, resolved, found, record)
		}
	})
}
