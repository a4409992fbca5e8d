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


package helpers

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLogging(t *testing.T) {
	// Note: Cannot use t.Parallel() because InitLogging modifies global log.Logger
	prevLogger := log.Logger
	prevLevel := zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	t.Run("creates log directory and writes to extra writers", func(t *testing.T) {
		logDir := filepath.Join(t.TempDir(), "nested", "logs")
		var buf bytes.Buffer

		err := InitLogging(logDir, []io.Writer{&buf})
		require.NoError(t, err)

		info, err := os.Stat(logDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())

		SetLogLevel(false)
		log.Info().Msg("hello from the controller")
		assert.Contains(t, buf.String(), "hello from the controller")

		_, err = os.Stat(filepath.Join(logDir, config.LogFile))
		require.NoError(t, err)

		buf.Reset()
		_, err = LogWriter().Write([]byte("direct\n"))
		require.NoError(t, err)
		assert.Contains(t, buf.String(), "direct")
	})

	t.Run("fails when log directory cannot be created", func(t *testing.T) {
		root := t.TempDir()
		blocker := filepath.Join(root, "file")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

		err := InitLogging(filepath.Join(blocker, "logs"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to create log directory")
	})
}

func TestSetLogLevel(t *testing.T) {
	// Note: Cannot use t.Parallel() because SetLogLevel modifies global state
	prev := zerolog.GlobalLevel()
	t.Cleanup(func() { zerolog.SetGlobalLevel(prev) })

	SetLogLevel(true)
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())

	SetLogLevel(false)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}
