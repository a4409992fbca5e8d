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

	"github.com/ZaparooProject/planttag/pkg/identity"
	"github.com/ZaparooProject/planttag/pkg/radio"
	"github.com/ZaparooProject/planttag/pkg/radio/at"
	"github.com/stretchr/testify/mock"
)

// MockRadio is a mock implementation of the controller's radio session
// using testify/mock
type MockRadio struct {
	mock.Mock
}

func (m *MockRadio) Ready() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockRadio) Name() (string, error) {
	args := m.Called()
	if err := args.Error(1); err != nil {
		return "", fmt.Errorf("mock operation failed: %w", err)
	}
	return args.String(0), nil
}

func (m *MockRadio) SetName(name string) error {
	args := m.Called(name)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

// BringUp reports progress 0..100 like the real session before returning
// the configured report.
func (m *MockRadio) BringUp(progress func(percent int)) radio.BringUpReport {
	args := m.Called(progress)
	if progress != nil {
		for _, p := range []int{0, 25, 50, 75, 100} {
			progress(p)
		}
	}
	if report, ok := args.Get(0).(radio.BringUpReport); ok {
		return report
	}
	return radio.BringUpReport{}
}

func (m *MockRadio) EnableNotify(handle int) error {
	args := m.Called(handle)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockRadio) CheckConnectionStatus() radio.ConnectionState {
	args := m.Called()
	if state, ok := args.Get(0).(radio.ConnectionState); ok {
		return state
	}
	return radio.Disconnected
}

func (m *MockRadio) Notify(target at.NotifyTarget, payload string) error {
	args := m.Called(target, payload)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

func (m *MockRadio) SendMessage(payload string) error {
	args := m.Called(payload)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}

// MockPublisher is a mock implementation of the controller's relay
// publisher using testify/mock
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(res identity.Resolution) error {
	args := m.Called(res)
	if err := args.Error(0); err != nil {
		return fmt.Errorf("mock operation failed: %w", err)
	}
	return nil
}
