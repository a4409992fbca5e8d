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
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const bufferSize = Width * Height / 8

// Canvas is an in-memory frame laid out the way SSD1306 controllers store
// it: eight 128-byte pages, one bit per pixel, LSB at the top of the page.
// It implements draw.Image so the x/image font renderer can draw on it.
type Canvas struct {
	buf [bufferSize]byte
}

func NewCanvas() *Canvas {
	return &Canvas{}
}

func (*Canvas) ColorModel() color.Model {
	return color.GrayModel
}

func (*Canvas) Bounds() image.Rectangle {
	return image.Rect(0, 0, Width, Height)
}

func (c *Canvas) At(x, y int) color.Color {
	if c.Pixel(x, y) {
		return color.White
	}
	return color.Black
}

func (c *Canvas) Set(x, y int, col color.Color) {
	g, _ := color.GrayModel.Convert(col).(color.Gray)
	c.SetPixel(x, y, g.Y >= 0x80)
}

func (c *Canvas) Pixel(x, y int) bool {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return false
	}
	return c.buf[(y/8)*Width+x]&(1<<(y%8)) != 0
}

func (c *Canvas) SetPixel(x, y int, on bool) {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return
	}
	i := (y/8)*Width + x
	if on {
		c.buf[i] |= 1 << (y % 8)
	} else {
		c.buf[i] &^= 1 << (y % 8)
	}
}

// DrawText renders text with its top-left corner at x, y. Text running off
// the right edge is clipped.
func (c *Canvas) DrawText(x, y int, text string) error {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  c,
		Src:  image.White,
		Face: face,
		Dot:  fixed.P(x, y+face.Ascent),
	}
	d.DrawString(Printable(text))
	return nil
}

// DrawIcon writes every pixel of the 16x16 cell, lit or not, so a previous
// icon at the same spot is fully replaced.
func (c *Canvas) DrawIcon(x, y int, icon Icon) error {
	for row := range IconSize {
		for col := range IconSize {
			c.SetPixel(x+col, y+row, icon.Set(col, row))
		}
	}
	return nil
}

func (c *Canvas) ClearRect(x, y, w, h int) error {
	for py := y; py < y+h; py++ {
		for px := x; px < x+w; px++ {
			c.SetPixel(px, py, false)
		}
	}
	return nil
}

// Pages returns a copy of the frame in controller page order.
func (c *Canvas) Pages() []byte {
	out := make([]byte, bufferSize)
	copy(out, c.buf[:])
	return out
}

// XBM returns the frame row-major, eight pixels per byte, least significant
// bit leftmost.
func (c *Canvas) XBM() []byte {
	out := make([]byte, bufferSize)
	for y := range Height {
		for x := range Width {
			if c.Pixel(x, y) {
				out[y*(Width/8)+x/8] |= 1 << (x % 8)
			}
		}
	}
	return out
}
