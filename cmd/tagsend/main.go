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


// tagsend ships an identity table from a desktop machine to the
// controller's console port as a single delimited frame.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/ZaparooProject/planttag/pkg/identity"
	"github.com/ZaparooProject/planttag/pkg/ingest"
	"github.com/ZaparooProject/planttag/pkg/readers/console"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const writeTimeout = time.Second

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	port := flag.String("port", "", "serial port the controller's console is attached to")
	baud := flag.Int("baud", console.DefaultBaudRate, "console baud rate")
	file := flag.String("file", "", "identity table JSON file to send")
	maxBytes := flag.Int(
		"max-bytes",
		ingest.DefaultMaxFrameBytes,
		"largest table payload the device accepts (its ingest.max_frame_bytes)",
	)
	check := flag.Bool("check", false, "validate the file and print the frame without sending")
	listPorts := flag.Bool("list-ports", false, "list candidate serial ports and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	helpers.SetLogLevel(*debug)

	if *listPorts {
		devices, err := helpers.GetSerialDeviceList()
		if err != nil {
			return fmt.Errorf("error listing serial ports: %w", err)
		}
		for _, d := range devices {
			_, _ = fmt.Println(d.String())
		}
		return nil
	}

	if *file == "" {
		return errors.New("-file is required")
	}

	frame, err := buildFrame(afero.NewOsFs(), *file, *maxBytes)
	if err != nil {
		return err
	}

	if *check {
		_, _ = fmt.Println(string(frame))
		return nil
	}

	if *port == "" {
		return errors.New("-port is required")
	}

	p, err := helpers.OpenSerial(nil, *port, *baud, writeTimeout)
	if err != nil {
		return fmt.Errorf("error opening console: %w", err)
	}
	defer func() {
		if closeErr := p.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("error closing console port")
		}
	}()

	return send(p, frame)
}

// buildFrame validates the table in path and encodes it for the wire. A
// frame the device would reject as too large is an error.
func buildFrame(fs afero.Fs, path string, maxBytes int) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	t, err := identity.ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", path, err)
	}

	frame, err := ingest.Encode(t)
	if err != nil {
		return nil, fmt.Errorf("error encoding table: %w", err)
	}

	if err := ingest.CheckFrameSize(frame, maxBytes); err != nil {
		return nil, fmt.Errorf("table %s is too large for the device: %w", path, err)
	}

	log.Debug().Int("records", t.Len()).Int("bytes", len(frame)).Msg("encoded identity table")
	return frame, nil
}

func send(w io.Writer, frame []byte) error {
	n, err := w.Write(frame)
	if err != nil {
		return fmt.Errorf("error writing frame: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(frame))
	}
	log.Info().Int("bytes", n).Msg("identity table sent")
	return nil
}
