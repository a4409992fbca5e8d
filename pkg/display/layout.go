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

// Screen layout shared by the controller and the ingestion channel.
const (
	// StatusX, StatusY anchor the bring-up progress and error line. It
	// stops short of the icon column.
	StatusX     = 0
	StatusY     = 0
	StatusWidth = ChargingIconX

	ResultY = 20

	NameLabelY = 45
	NameY      = 55

	ConnectionIconX = 115
	ConnectionIconY = 0
	ChargingIconX   = 99
	ChargingIconY   = 0
)

// ShowStatus replaces the status line.
func ShowStatus(d Display, text string) error {
	return ShowText(d, StatusX, StatusY, StatusWidth, text)
}
