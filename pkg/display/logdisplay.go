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
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

type cell struct {
	x, y int
}

// LogDisplay is a headless display that writes the screen contents to the
// log on every flush. It is the default for development boards without a
// panel attached.
type LogDisplay struct {
	text  map[cell]string
	icons map[cell]string
}

func NewLogDisplay() *LogDisplay {
	return &LogDisplay{
		text:  make(map[cell]string),
		icons: make(map[cell]string),
	}
}

func (d *LogDisplay) DrawText(x, y int, text string) error {
	d.text[cell{x, y}] = Printable(text)
	return nil
}

func (d *LogDisplay) DrawIcon(x, y int, icon Icon) error {
	d.icons[cell{x, y}] = icon.Name
	return nil
}

// ClearRect drops every text line and icon anchored inside the rectangle.
func (d *LogDisplay) ClearRect(x, y, w, h int) error {
	inside := func(c cell) bool {
		return c.x >= x && c.x < x+w && c.y >= y && c.y < y+h
	}
	maps.DeleteFunc(d.text, func(c cell, _ string) bool { return inside(c) })
	maps.DeleteFunc(d.icons, func(c cell, _ string) bool { return inside(c) })
	return nil
}

func (d *LogDisplay) Flush() error {
	log.Info().
		Strs("lines", d.Lines()).
		Strs("icons", d.Icons()).
		Msg("display")
	return nil
}

// Lines returns the text on screen ordered top to bottom, left to right.
func (d *LogDisplay) Lines() []string {
	return render(d.text, func(_ cell, s string) string { return s })
}

// Icons returns the icons on screen as name@x,y.
func (d *LogDisplay) Icons() []string {
	return render(d.icons, func(c cell, name string) string {
		return fmt.Sprintf("%s@%d,%d", name, c.x, c.y)
	})
}

func render(m map[cell]string, format func(cell, string) string) []string {
	cells := slices.SortedFunc(maps.Keys(m), func(a, b cell) int {
		if a.y != b.y {
			return a.y - b.y
		}
		return a.x - b.x
	})
	out := make([]string, 0, len(cells))
	for _, c := range cells {
		out = append(out, format(c, m[c]))
	}
	return out
}

// String renders the screen as one line per text row.
func (d *LogDisplay) String() string {
	return strings.Join(d.Lines(), "\n")
}
