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

package at

import "strings"

// Result is the outcome of a command as judged by its own success rule.
type Result int

const (
	// Nack is an explicit failure reply, or no reply at all.
	Nack Result = iota
	// Ack is a reply carrying the command's success token.
	Ack
	// Malformed is a reply with neither a success nor a failure token.
	Malformed
)

func (r Result) String() string {
	switch r {
	case Ack:
		return "ack"
	case Nack:
		return "nack"
	case Malformed:
		return "malformed"
	default:
		return "unknown"
	}
}

const (
	ConnConnected    = "connected"
	ConnDisconnected = "disconnected"
)

// Response is a classified reply. Value carries the parsed payload for
// query commands (the advertised name, or the connection state).
type Response struct {
	Raw    string
	Value  string
	Result Result
}

func (r Response) OK() bool {
	return r.Result == Ack
}

func lines(raw string) []string {
	parts := strings.Split(raw, "\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func hasFailure(raw string) bool {
	for _, line := range lines(raw) {
		if strings.Contains(line, TokenError) ||
			strings.Contains(line, TokenFail) ||
			strings.HasPrefix(line, TokenBusy) {
			return true
		}
	}
	return false
}

func hasLine(raw, token string) bool {
	for _, line := range lines(raw) {
		if line == token {
			return true
		}
	}
	return false
}

// classifyToken acks when a line holds exactly token.
func classifyToken(token string) func(string) Response {
	return func(raw string) Response {
		resp := Response{Raw: raw}
		switch {
		case hasLine(raw, token):
			resp.Result = Ack
		case raw == "" || hasFailure(raw):
			resp.Result = Nack
		default:
			resp.Result = Malformed
		}
		return resp
	}
}

func classifyPrompt(raw string) Response {
	resp := Response{Raw: raw}
	for _, line := range lines(raw) {
		if strings.HasPrefix(line, TokenPrompt) {
			resp.Result = Ack
			return resp
		}
	}
	if raw == "" || hasFailure(raw) {
		resp.Result = Nack
	} else {
		resp.Result = Malformed
	}
	return resp
}

func classifyName(raw string) Response {
	resp := Response{Raw: raw}
	for _, line := range lines(raw) {
		if idx := strings.Index(line, TokenName); idx >= 0 {
			resp.Value = strings.Trim(strings.TrimSpace(line[idx+len(TokenName):]), `"`)
			resp.Result = Ack
			return resp
		}
	}
	if raw == "" || hasFailure(raw) {
		resp.Result = Nack
	} else {
		resp.Result = Malformed
	}
	return resp
}

// classifyConn follows the module firmware: any reply carrying a 0 (the
// index of the first connection) means a central is connected.
func classifyConn(raw string) Response {
	resp := Response{Raw: raw, Value: ConnDisconnected}
	switch {
	case raw == "" || hasFailure(raw):
		resp.Result = Nack
	case strings.Contains(raw, "0"):
		resp.Result = Ack
		resp.Value = ConnConnected
	default:
		resp.Result = Ack
	}
	return resp
}
