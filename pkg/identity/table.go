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

// Package identity holds the plant tag table and resolves RFID reads
// against it.
package identity

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// ErrParse means a table payload could not be decoded. The caller's current
// table is never touched when this is returned.
var ErrParse = errors.New("identity: invalid table")

const unknownField = "Unknown"

type TagRecord struct {
	UID         string
	DisplayName string
	PlantedDate string
}

// wireRecord is the on-disk and on-wire shape shared with the desktop tool.
type wireRecord struct {
	PlantName *string `json:"Plant_Name,omitempty"`
	PlantDate *string `json:"Plant_Date,omitempty"`
}

// Table is an immutable uid → record mapping. Replace it, never mutate it.
type Table struct {
	records map[string]TagRecord
}

// NewTable copies records into a new table keyed by UID.
func NewTable(records ...TagRecord) *Table {
	t := &Table{records: make(map[string]TagRecord, len(records))}
	for _, r := range records {
		t.records[r.UID] = r
	}
	return t
}

func EmptyTable() *Table {
	return NewTable()
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

func (t *Table) Get(uid string) (TagRecord, bool) {
	if t == nil {
		return TagRecord{}, false
	}
	r, ok := t.records[uid]
	return r, ok
}

// UIDs returns the table keys in sorted order.
func (t *Table) UIDs() []string {
	if t == nil {
		return nil
	}
	return slices.Sorted(maps.Keys(t.records))
}

// Records returns a copy of every record.
func (t *Table) Records() map[string]TagRecord {
	if t == nil {
		return map[string]TagRecord{}
	}
	return maps.Clone(t.records)
}

func (t *Table) Equal(other *Table) bool {
	return maps.Equal(t.Records(), other.Records())
}

func (t *Table) MarshalJSON() ([]byte, error) {
	out := make(map[string]wireRecord, t.Len())
	for uid, r := range t.Records() {
		out[uid] = wireRecord{
			PlantName: &r.DisplayName,
			PlantDate: &r.PlantedDate,
		}
	}
	data, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal table: %w", err)
	}
	return data, nil
}

// ParseTable decodes a JSON object of uid → {Plant_Name, Plant_Date}.
// Missing fields become "Unknown". Anything else that is not exactly one such
// object fails with ErrParse.
func ParseTable(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	var raw map[string]json.RawMessage
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: payload is null", ErrParse)
	}
	if dec.More() {
		return nil, fmt.Errorf("%w: trailing data after table", ErrParse)
	}

	t := &Table{records: make(map[string]TagRecord, len(raw))}
	for uid, value := range raw {
		if uid == "" {
			return nil, fmt.Errorf("%w: empty uid", ErrParse)
		}

		trimmed := bytes.TrimSpace(value)
		if len(trimmed) == 0 || trimmed[0] != '{' {
			return nil, fmt.Errorf("%w: record for %q is not an object", ErrParse, uid)
		}

		var wr wireRecord
		if err := json.Unmarshal(trimmed, &wr); err != nil {
			return nil, fmt.Errorf("%w: record for %q: %w", ErrParse, uid, err)
		}

		r := TagRecord{UID: uid, DisplayName: unknownField, PlantedDate: unknownField}
		if wr.PlantName != nil {
			r.DisplayName = *wr.PlantName
		}
		if wr.PlantDate != nil {
			r.PlantedDate = *wr.PlantDate
		}
		t.records[uid] = r
	}

	return t, nil
}
