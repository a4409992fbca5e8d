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

package gpio

import (
	"errors"
	"testing"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/sys/class/gpio"

func readValue(t *testing.T, fs afero.Fs, pin string) string {
	t.Helper()
	data, err := afero.ReadFile(fs, root+"/gpio"+pin+"/value")
	require.NoError(t, err)
	return string(data)
}

func TestSysfsExportsMissingPin(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))

	_, err := OpenSysfsInput(fs, root, 19)
	require.NoError(t, err)

	export, err := afero.ReadFile(fs, root+"/export")
	require.NoError(t, err)
	assert.Equal(t, "19", string(export))

	direction, err := afero.ReadFile(fs, root+"/gpio19/direction")
	require.NoError(t, err)
	assert.Equal(t, "in", string(direction))
}

func TestSysfsSkipsExportWhenPresent(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root+"/gpio25", 0o755))

	_, err := OpenSysfsOutput(fs, root, 25)
	require.NoError(t, err)

	exists, err := afero.Exists(fs, root+"/export")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, "0", readValue(t, fs, "25"))
}

func TestSysfsRead(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		value   string
		want    bool
		wantErr bool
	}{
		{name: "high", value: "1\n", want: true},
		{name: "low", value: "0\n", want: false},
		{name: "garbage", value: "x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fs := afero.NewMemMapFs()
			p, err := OpenSysfsInput(fs, root, 19)
			require.NoError(t, err)
			require.NoError(t, afero.WriteFile(fs, root+"/gpio19/value", []byte(tt.value), 0o644))

			got, err := p.Read()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSysfsToggle(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	p, err := OpenSysfsOutput(fs, root, 25)
	require.NoError(t, err)

	require.NoError(t, p.Toggle())
	assert.Equal(t, "1", readValue(t, fs, "25"))
	require.NoError(t, p.Toggle())
	assert.Equal(t, "0", readValue(t, fs, "25"))
}

func TestSysfsReadOnlyFs(t *testing.T) {
	t.Parallel()

	_, err := OpenSysfsOutput(afero.NewReadOnlyFs(afero.NewMemMapFs()), root, 25)
	require.Error(t, err)
}

type stubInput struct {
	err  error
	high bool
}

func (s stubInput) Read() (bool, error) {
	return s.high, s.err
}

func TestSignalActive(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		high      bool
		activeLow bool
		want      bool
	}{
		{name: "active low asserted", high: false, activeLow: true, want: true},
		{name: "active low idle", high: true, activeLow: true, want: false},
		{name: "active high asserted", high: true, activeLow: false, want: true},
		{name: "active high idle", high: false, activeLow: false, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NewSignal(stubInput{high: tt.high}, tt.activeLow).Active()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSignalReadError(t *testing.T) {
	t.Parallel()

	_, err := NewSignal(stubInput{err: errors.New("gone")}, true).Active()
	require.Error(t, err)
}

func TestOpenSysfs(t *testing.T) {
	t.Parallel()

	fs := afero.NewMemMapFs()
	pins, err := Open(config.GPIO{
		Driver:            config.GPIODriverSysfs,
		Root:              root,
		ChargingPin:       19,
		LEDPin:            25,
		ChargingActiveLow: true,
	}, fs)
	require.NoError(t, err)
	require.NotNil(t, pins.Charging)
	require.NotNil(t, pins.LED)

	require.NoError(t, afero.WriteFile(fs, root+"/gpio19/value", []byte("0\n"), 0o644))
	charging, err := pins.Charging.Active()
	require.NoError(t, err)
	assert.True(t, charging)
}

func TestOpenDisabledPins(t *testing.T) {
	t.Parallel()

	pins, err := Open(config.GPIO{
		Driver:      config.GPIODriverSysfs,
		Root:        root,
		ChargingPin: -1,
		LEDPin:      -1,
	}, afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Nil(t, pins.Charging)
	assert.Nil(t, pins.LED)
}
