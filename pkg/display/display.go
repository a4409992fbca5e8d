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

// Package display renders the controller's status screen: a 128x64
// monochrome panel showing text lines and two 16x16 status icons.
package display

const (
	Width    = 128
	Height   = 64
	IconSize = 16

	// LineHeight is the height cleared by ShowLine.
	LineHeight = 10
)

// Display is the drawing surface the controller writes to. Drawing calls
// only change the pending frame; Flush pushes it to the panel.
type Display interface {
	DrawText(x, y int, text string) error
	DrawIcon(x, y int, icon Icon) error
	ClearRect(x, y, w, h int) error
	Flush() error
}

// Icon is a 16x16 1-bit bitmap, two bytes per row with the most significant
// bit leftmost.
type Icon struct {
	Name string
	Bits [IconSize * IconSize / 8]byte
}

// Set reports whether the pixel at col, row is lit.
func (i Icon) Set(col, row int) bool {
	if col < 0 || col >= IconSize || row < 0 || row >= IconSize {
		return false
	}
	b := i.Bits[row*2+col/8]
	return (b>>(7-col%8))&1 == 1
}

var Bluetooth = Icon{
	Name: "bluetooth",
	Bits: [32]byte{
		0b00000000, 0b00000000,
		0b00000001, 0b10000000,
		0b00000001, 0b11000000,
		0b00000001, 0b01100000,
		0b00001001, 0b00110000,
		0b00001101, 0b00110000,
		0b00000111, 0b01100000,
		0b00000011, 0b11000000,
		0b00000001, 0b10000000,
		0b00000011, 0b11000000,
		0b00000111, 0b01100000,
		0b00001101, 0b00110000,
		0b00001001, 0b00110000,
		0b00000001, 0b01100000,
		0b00000001, 0b11000000,
		0b00000001, 0b10000000,
	},
}

var Charging = Icon{
	Name: "charging",
	Bits: [32]byte{
		0b00000000, 0b00000000,
		0b00000100, 0b00000000,
		0b00001100, 0b00000000,
		0b00011100, 0b00000000,
		0b00111100, 0b00000000,
		0b01111111, 0b11110000,
		0b11111111, 0b11111100,
		0b11111111, 0b11111110,
		0b01111111, 0b11111100,
		0b00000001, 0b11111000,
		0b00000001, 0b11100000,
		0b00000001, 0b11000000,
		0b00000001, 0b10000000,
		0b00000001, 0b00000000,
		0b00000000, 0b00000000,
		0b00000000, 0b00000000,
	},
}

// ShowLine replaces the text line starting at y and flushes.
func ShowLine(d Display, x, y int, text string) error {
	return ShowText(d, x, y, Width-x, text)
}

// ShowText is ShowLine limited to a field w pixels wide, for lines that
// share their row with icons.
func ShowText(d Display, x, y, w int, text string) error {
	if err := d.ClearRect(x, y, w, LineHeight); err != nil {
		return err
	}
	if err := d.DrawText(x, y, text); err != nil {
		return err
	}
	return d.Flush()
}

// ShowIcon draws icon at x, y and flushes.
func ShowIcon(d Display, x, y int, icon Icon) error {
	if err := d.DrawIcon(x, y, icon); err != nil {
		return err
	}
	return d.Flush()
}

// ClearIcon blanks the 16x16 cell at x, y and flushes.
func ClearIcon(d Display, x, y int) error {
	if err := d.ClearRect(x, y, IconSize, IconSize); err != nil {
		return err
	}
	return d.Flush()
}
