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

import "fmt"

// Command is a fully formed request plus the rule that decides whether its
// reply means success. Build them with the constructors below.
type Command struct {
	classify func(string) Response
	Name     string
	Request  string
}

func (c Command) Classify(raw string) Response {
	if c.classify == nil {
		return classifyToken(TokenOK)(raw)
	}
	return c.classify(raw)
}

// BLERole values for AT+BLEINIT.
const (
	BLERoleClient = 1
	BLERoleServer = 2
)

// NotifyTarget addresses a GATT characteristic for AT+BLEGATTSNTFY.
type NotifyTarget struct {
	Conn    int
	Service int
	Char    int
}

func okCommand(name, request string) Command {
	return Command{Name: name, Request: request, classify: classifyToken(TokenOK)}
}

// Probe is the bare AT sanity check.
func Probe() Command {
	return okCommand("probe", "AT")
}

func Reset() Command {
	return okCommand("reset", "AT+RST")
}

func SetName(name string) Command {
	return okCommand("set_name", "AT+NAME="+name)
}

func QueryName() Command {
	return Command{Name: "query_name", Request: "AT+BLENAME?", classify: classifyName}
}

func BLEInit(role int) Command {
	return okCommand("ble_init", fmt.Sprintf("AT+BLEINIT=%d", role))
}

func ServiceCreate() Command {
	return okCommand("ble_service_create", "AT+BLEGATTSSRVCRE")
}

func ServiceStart() Command {
	return okCommand("ble_service_start", "AT+BLEGATTSSRVSTART")
}

func AdvertiseStart() Command {
	return okCommand("ble_adv_start", "AT+BLEADVSTART")
}

func EnableNotify(handle int) Command {
	return okCommand("enable_notify", fmt.Sprintf("AT+BLEGATTSENABLE=%d,1", handle))
}

// Notify announces a payload of payloadLen bytes. The module answers with a
// prompt when it is ready for the data; the announced length includes the
// two newlines that wrap the payload on the wire.
func Notify(target NotifyTarget, payloadLen int) Command {
	return Command{
		Name: "notify",
		Request: fmt.Sprintf(
			"AT+BLEGATTSNTFY=%d,%d,%d,%d",
			target.Conn, target.Service, target.Char, payloadLen+2,
		),
		classify: classifyPrompt,
	}
}

func ConnQuery() Command {
	return Command{Name: "conn_query", Request: "AT+BLECONN?", classify: classifyConn}
}
