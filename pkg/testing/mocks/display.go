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

package mocks

import (
	"fmt"

	"github.com/ZaparooProject/planttag/pkg/display"
	"github.com/stretchr/testify/mock"
)

// MockDisplay is a mock implementation of display.Display using testify/mock
type MockDisplay struct {
	mock.Mock
}

func NewMockDisplay() *MockDisplay {
	return &MockDisplay{}
}

// SetupPermissive accepts every drawing call, for tests that only count
// specific calls afterwards.
func (m *MockDisplay) SetupPermissive() {
	m.On("DrawText", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("DrawIcon", mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("ClearRect", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
	m.On("Flush").Return(nil).Maybe()
}

func (m *MockDisplay) DrawText(x, y int, text string) error {
	args := m.Called(x, y, text)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockDisplay) DrawIcon(x, y int, icon display.Icon) error {
	args := m.Called(x, y, icon)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockDisplay) ClearRect(x, y, w, h int) error {
	args := m.Called(x, y, w, h)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockDisplay) Flush() error {
	args := m.Called()
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

// TextCalls returns the text of every DrawText call, in order.
func (m *MockDisplay) TextCalls() []string {
	var out []string
	for _, c := range m.Calls {
		if c.Method == "DrawText" {
			if s, ok := c.Arguments.Get(2).(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
