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

	"github.com/stretchr/testify/mock"
)

// MockOutput is a mock implementation of gpio.Output using testify/mock
type MockOutput struct {
	mock.Mock
}

func (m *MockOutput) Write(high bool) error {
	args := m.Called(high)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockOutput) Toggle() error {
	args := m.Called()
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

// MockInput is a mock implementation of gpio.Input using testify/mock
type MockInput struct {
	mock.Mock
}

func (m *MockInput) Read() (bool, error) {
	args := m.Called()
	if err := args.Error(1); err != nil {
		return false, fmt.Errorf("mock operation failed: %w", err)
	}
	return args.Bool(0), nil
}
