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

import "fmt"

// SSD1306 control bytes.
const (
	ssdControlCommand = 0x00
	ssdControlData    = 0x40

	ssdChunk = 16
)

var ssdInitSequence = []byte{
	0xAE,       // display off
	0xD5, 0x80, // clock divide
	0xA8, 0x3F, // multiplex 64
	0xD3, 0x00, // display offset
	0x40,       // start line 0
	0x8D, 0x14, // charge pump on
	0x20, 0x00, // horizontal addressing
	0xA1,       // segment remap
	0xC8,       // COM scan descending
	0xDA, 0x12, // COM pins
	0x81, 0xCF, // contrast
	0xD9, 0xF1, // precharge
	0xDB, 0x40, // VCOMH deselect
	0xA4,       // resume from RAM
	0xA6,       // normal, not inverted
	0xAF,       // display on
}

// I2CConn is a half-duplex I2C device handle. *i2c.Dev from periph.io
// satisfies it.
type I2CConn interface {
	Tx(w, r []byte) error
}

// SSD1306 drives a 128x64 SSD1306 panel over I2C.
type SSD1306 struct {
	*Canvas
	conn I2CConn
}

// NewSSD1306 initialises the panel and blanks it.
func NewSSD1306(conn I2CConn) (*SSD1306, error) {
	d := &SSD1306{Canvas: NewCanvas(), conn: conn}
	if err := d.command(ssdInitSequence...); err != nil {
		return nil, fmt.Errorf("failed to initialise ssd1306: %w", err)
	}
	if err := d.Flush(); err != nil {
		return nil, err
	}
	return d, nil
}

func (d *SSD1306) command(cmds ...byte) error {
	w := make([]byte, 0, len(cmds)+1)
	w = append(w, ssdControlCommand)
	w = append(w, cmds...)
	return d.conn.Tx(w, nil)
}

// Flush writes the whole frame to display RAM.
func (d *SSD1306) Flush() error {
	err := d.command(
		0x21, 0, Width-1, // column range
		0x22, 0, Height/8-1, // page range
	)
	if err != nil {
		return fmt.Errorf("failed to address ssd1306: %w", err)
	}

	pages := d.Pages()
	for off := 0; off < len(pages); off += ssdChunk {
		w := make([]byte, 0, ssdChunk+1)
		w = append(w, ssdControlData)
		w = append(w, pages[off:min(off+ssdChunk, len(pages))]...)
		if err := d.conn.Tx(w, nil); err != nil {
			return fmt.Errorf("failed to write ssd1306 frame: %w", err)
		}
	}
	return nil
}
