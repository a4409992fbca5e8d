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
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

// Store keeps the current table in memory and on disk. Readers get a
// snapshot pointer; Replace swaps the pointer only after the new table has
// been written in full, so a reader never sees a partial table and a failed
// write leaves the previous file in place.
type Store struct {
	fs      afero.Fs
	current atomic.Pointer[Table]
	path    string
}

func NewStore(fs afero.Fs, path string) *Store {
	s := &Store{fs: fs, path: path}
	s.current.Store(EmptyTable())
	return s
}

func (s *Store) Path() string {
	return s.path
}

// Table returns the current snapshot. It is never nil.
func (s *Store) Table() *Table {
	return s.current.Load()
}

// Load reads the table file. A missing file is an empty table; an unreadable
// or invalid file leaves the empty table in place and returns the error.
func (s *Store) Load() error {
	data, err := afero.ReadFile(s.fs, s.path)
	if errors.Is(err, os.ErrNotExist) {
		log.Info().Str("path", s.path).Msg("no identity table on disk, starting empty")
		s.current.Store(EmptyTable())
		return nil
	} else if err != nil {
		return fmt.Errorf("failed to read identity table: %w", err)
	}

	t, err := ParseTable(data)
	if err != nil {
		return fmt.Errorf("failed to load identity table %s: %w", s.path, err)
	}

	s.current.Store(t)
	log.Info().Str("path", s.path).Int("records", t.Len()).Msg("loaded identity table")
	return nil
}

// Replace persists t and then makes it the current table.
func (s *Store) Replace(t *Table) error {
	if t == nil {
		t = EmptyTable()
	}

	data, err := t.MarshalJSON()
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(s.path), 0o750); err != nil {
		return fmt.Errorf("failed to create table directory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := afero.WriteFile(s.fs, tmp, data, 0o600); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to write identity table: %w", err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return fmt.Errorf("failed to replace identity table: %w", err)
	}

	s.current.Store(t)
	log.Info().Str("path", s.path).Int("records", t.Len()).Msg("identity table replaced")
	return nil
}

// ReplaceFromJSON parses payload and, only if it is a valid table, replaces
// the stored one with it.
func (s *Store) ReplaceFromJSON(payload []byte) (*Table, error) {
	t, err := ParseTable(payload)
	if err != nil {
		return nil, err
	}
	if err := s.Replace(t); err != nil {
		return nil, err
	}
	return t, nil
}
