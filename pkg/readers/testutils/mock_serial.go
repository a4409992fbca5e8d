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

package testutils

import (
	"errors"
	"time"

	"github.com/ZaparooProject/planttag/pkg/helpers/syncutil"
)

// MockSerialPort is a scripted helpers.SerialPort. Bytes queued in ReadData
// (directly, or by Responder after a write) are handed out by Read; an empty
// queue behaves like a read timeout.
type MockSerialPort struct {
	ReadError  error
	WriteError error
	CloseError error
	TimeoutErr error
	ReadFunc   func(p []byte) (n int, err error)
	// OnIdleRead runs whenever Read finds nothing queued. Tests with a fake
	// clock use it to advance time instead of sleeping.
	OnIdleRead func()
	// Responder maps each write to the bytes the device sends back.
	Responder   func(written []byte) []byte
	ReadData    []byte
	Written     [][]byte
	ReadIndex   int
	ReadTimeout time.Duration
	ReadCalls   int
	Closed      bool
	mu          syncutil.Mutex
}

func NewMockSerialPort() *MockSerialPort {
	return &MockSerialPort{}
}

func (m *MockSerialPort) Read(p []byte) (n int, err error) {
	m.mu.Lock()
	m.ReadCalls++
	if m.Closed {
		m.mu.Unlock()
		return 0, errors.New("port closed")
	}
	if m.ReadFunc != nil {
		fn := m.ReadFunc
		m.mu.Unlock()
		return fn(p)
	}
	if m.ReadError != nil {
		err := m.ReadError
		m.mu.Unlock()
		return 0, err
	}

	if m.ReadIndex >= len(m.ReadData) {
		idle := m.OnIdleRead
		timeout := m.ReadTimeout
		m.mu.Unlock()
		if idle != nil {
			idle()
		} else {
			time.Sleep(timeout)
		}
		return 0, nil
	}

	n = copy(p, m.ReadData[m.ReadIndex:])
	m.ReadIndex += n
	m.mu.Unlock()
	return n, nil
}

func (m *MockSerialPort) Write(p []byte) (n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return 0, errors.New("port closed")
	}
	if m.WriteError != nil {
		return 0, m.WriteError
	}

	written := append([]byte(nil), p...)
	m.Written = append(m.Written, written)
	if m.Responder != nil {
		m.ReadData = append(m.ReadData, m.Responder(written)...)
	}
	return len(p), nil
}

// Queue appends bytes for subsequent reads.
func (m *MockSerialPort) Queue(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadData = append(m.ReadData, data...)
}

// WrittenStrings returns every write as a string, in order.
func (m *MockSerialPort) WrittenStrings() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.Written))
	for _, w := range m.Written {
		out = append(out, string(w))
	}
	return out
}

func (m *MockSerialPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseError
}

func (m *MockSerialPort) SetReadTimeout(t time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.TimeoutErr != nil {
		return m.TimeoutErr
	}
	m.ReadTimeout = t
	return nil
}

func (m *MockSerialPort) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Closed
}
