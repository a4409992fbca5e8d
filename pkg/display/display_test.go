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

package display

import (
	"errors"
	"testing"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/ZaparooProject/planttag/pkg/readers/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func litIn(c *Canvas, x, y, w, h int) int {
	n := 0
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			if c.Pixel(px, py) {
				n++
			}
		}
	}
	return n
}

func TestIconSet(t *testing.T) {
	t.Parallel()

	assert.False(t, Bluetooth.Set(0, 0))
	assert.True(t, Bluetooth.Set(7, 1))
	assert.True(t, Bluetooth.Set(8, 1))
	assert.False(t, Bluetooth.Set(9, 1))
	assert.False(t, Bluetooth.Set(-1, 0))
	assert.False(t, Bluetooth.Set(0, IconSize))
}

func TestCanvasDrawIcon(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	require.NoError(t, c.DrawIcon(115, 0, Bluetooth))

	for row := range IconSize {
		for col := range IconSize {
			assert.Equal(t, Bluetooth.Set(col, row), c.Pixel(115+col, row), "pixel %d,%d", col, row)
		}
	}
	assert.Equal(t, 0, litIn(c, 0, 0, 115, Height))
}

func TestCanvasDrawIconOverwrites(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	require.NoError(t, c.DrawIcon(99, 0, Charging))
	require.NoError(t, c.DrawIcon(99, 0, Bluetooth))

	for row := range IconSize {
		for col := range IconSize {
			assert.Equal(t, Bluetooth.Set(col, row), c.Pixel(99+col, row))
		}
	}
}

func TestCanvasClearRect(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	require.NoError(t, c.DrawIcon(99, 0, Charging))
	require.NoError(t, c.ClearRect(99, 0, IconSize, IconSize))
	assert.Equal(t, 0, litIn(c, 0, 0, Width, Height))
}

func TestCanvasDrawText(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	require.NoError(t, c.DrawText(0, 20, "Name: Basil"))

	assert.Positive(t, litIn(c, 0, 20, Width, LineHeight+3))
	assert.Equal(t, 0, litIn(c, 0, 0, Width, 20))
}

func TestCanvasClipsOffscreen(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	c.SetPixel(-1, 0, true)
	c.SetPixel(Width, Height, true)
	require.NoError(t, c.DrawText(Width-7, Height-4, "overflowing text"))
	assert.False(t, c.Pixel(-1, 0))
}

func TestCanvasLayouts(t *testing.T) {
	t.Parallel()

	c := NewCanvas()
	c.SetPixel(0, 0, true)
	c.SetPixel(9, 10, true)

	pages := c.Pages()
	require.Len(t, pages, Width*Height/8)
	assert.Equal(t, byte(0x01), pages[0])
	assert.Equal(t, byte(1<<2), pages[Width+9])

	xbm := c.XBM()
	require.Len(t, xbm, Width*Height/8)
	assert.Equal(t, byte(0x01), xbm[0])
	assert.Equal(t, byte(1<<1), xbm[10*(Width/8)+1])
}

func TestPrintable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Basil", want: "Basil"},
		{in: "Café crème", want: "Cafe creme"},
		{in: "Ñandú", want: "Nandu"},
		{in: "盆栽", want: "??"},
		{in: "tab\there", want: "tab?here"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Printable(tt.in))
		})
	}
}

func TestLogDisplay(t *testing.T) {
	t.Parallel()

	d := NewLogDisplay()
	require.NoError(t, ShowLine(d, 0, 0, "Loading 25%"))
	require.NoError(t, ShowLine(d, 0, 0, "BLE Ready"))
	require.NoError(t, ShowLine(d, 0, 45, "Bluetooth name:"))
	require.NoError(t, ShowIcon(d, 115, 0, Bluetooth))
	require.NoError(t, ShowIcon(d, 99, 0, Charging))

	assert.Equal(t, []string{"BLE Ready", "Bluetooth name:"}, d.Lines())
	assert.Equal(t, []string{"charging@99,0", "bluetooth@115,0"}, d.Icons())

	require.NoError(t, ClearIcon(d, 99, 0))
	assert.Equal(t, []string{"bluetooth@115,0"}, d.Icons())
	assert.Equal(t, "BLE Ready\nBluetooth name:", d.String())
}

type fakeI2C struct {
	err    error
	writes [][]byte
}

func (f *fakeI2C) Tx(w, _ []byte) error {
	f.writes = append(f.writes, append([]byte(nil), w...))
	return f.err
}

func TestSSD1306Init(t *testing.T) {
	t.Parallel()

	conn := &fakeI2C{}
	d, err := NewSSD1306(conn)
	require.NoError(t, err)
	require.NotNil(t, d)

	require.NotEmpty(t, conn.writes)
	assert.Equal(t, byte(ssdControlCommand), conn.writes[0][0])
	assert.Equal(t, ssdInitSequence, conn.writes[0][1:])
}

func TestSSD1306Flush(t *testing.T) {
	t.Parallel()

	conn := &fakeI2C{}
	d, err := NewSSD1306(conn)
	require.NoError(t, err)

	conn.writes = nil
	d.SetPixel(0, 0, true)
	require.NoError(t, d.Flush())

	require.Len(t, conn.writes, 1+bufferSize/ssdChunk)
	assert.Equal(t, byte(ssdControlCommand), conn.writes[0][0])

	var data []byte
	for _, w := range conn.writes[1:] {
		assert.Equal(t, byte(ssdControlData), w[0])
		data = append(data, w[1:]...)
	}
	assert.Equal(t, d.Pages(), data)
	assert.Equal(t, byte(0x01), data[0])
}

func TestSSD1306InitError(t *testing.T) {
	t.Parallel()

	_, err := NewSSD1306(&fakeI2C{err: errors.New("nack")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to initialise ssd1306")
}

func TestTTY2OLEDHandshake(t *testing.T) {
	t.Parallel()

	port := testutils.NewMockSerialPort()
	_, err := NewTTY2OLED(port, nil, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"QWERTZ\n", "CMDCON,128\n", "CMDCLS\n"}, port.WrittenStrings())
}

func TestTTY2OLEDFlush(t *testing.T) {
	t.Parallel()

	port := testutils.NewMockSerialPort()
	d, err := NewTTY2OLED(port, nil, 0)
	require.NoError(t, err)

	require.NoError(t, d.DrawIcon(115, 0, Bluetooth))
	require.NoError(t, d.Flush())

	written := port.WrittenStrings()
	require.Len(t, written, 5)
	assert.Equal(t, "CMDCOR,planttag,0\n", written[3])
	assert.Equal(t, string(d.XBM()), written[4])
}

func TestTTY2OLEDWriteError(t *testing.T) {
	t.Parallel()

	port := testutils.NewMockSerialPort()
	port.WriteError = errors.New("broken pipe")

	_, err := NewTTY2OLED(port, nil, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to send handshake")
}

func TestOpenLogDriver(t *testing.T) {
	t.Parallel()

	d, closer, err := Open(config.Display{Driver: config.DisplayDriverLog}, nil)
	require.NoError(t, err)
	assert.IsType(t, &LogDisplay{}, d)
	assert.NoError(t, closer.Close())
}

func TestOpenSerialDriver(t *testing.T) {
	t.Parallel()

	port := testutils.NewMockSerialPort()
	d, closer, err := Open(config.Display{
		Driver:   config.DisplayDriverSerial,
		Path:     "/dev/ttyUSB0",
		BaudRate: 115200,
	}, testutils.FactoryFor(port, nil))
	require.NoError(t, err)
	assert.IsType(t, &TTY2OLED{}, d)

	require.NoError(t, closer.Close())
	assert.True(t, port.IsClosed())
}

func TestOpenUnknownDriver(t *testing.T) {
	t.Parallel()

	_, _, err := Open(config.Display{Driver: "hdmi"}, nil)
	require.Error(t, err)
}

func TestShowTextKeepsIcons(t *testing.T) {
	t.Parallel()

	d := NewLogDisplay()
	require.NoError(t, ShowIcon(d, 115, 0, Bluetooth))
	require.NoError(t, ShowText(d, 0, 0, 99, "Invalid JSON"))

	assert.Equal(t, []string{"Invalid JSON"}, d.Lines())
	assert.Equal(t, []string{"bluetooth@115,0"}, d.Icons())
}

func TestWrap(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want []string
		cols int
	}{
		{
			name: "found message",
			text: "Name: Basil, Date: 2024-01-01",
			cols: Columns,
			want: []string{"Name: Basil, Date:", "2024-01-01"},
		},
		{
			name: "not found message",
			text: "UID TAGX not found",
			cols: Columns,
			want: []string{"UID TAGX not found"},
		},
		{
			name: "long word split",
			text: "0123456789ABCDEFGHIJ",
			cols: 8,
			want: []string{"01234567", "89ABCDEF", "GHIJ"},
		},
		{
			name: "empty",
			text: "  ",
			cols: Columns,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Wrap(tt.text, tt.cols))
		})
	}
}
