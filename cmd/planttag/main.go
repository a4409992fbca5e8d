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


package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ZaparooProject/planttag/internal/telemetry"
	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/ZaparooProject/planttag/pkg/controller"
	"github.com/ZaparooProject/planttag/pkg/display"
	"github.com/ZaparooProject/planttag/pkg/gpio"
	"github.com/ZaparooProject/planttag/pkg/helpers"
	"github.com/ZaparooProject/planttag/pkg/identity"
	"github.com/ZaparooProject/planttag/pkg/ingest"
	"github.com/ZaparooProject/planttag/pkg/radio"
	"github.com/ZaparooProject/planttag/pkg/radio/at"
	"github.com/ZaparooProject/planttag/pkg/readers/console"
	"github.com/ZaparooProject/planttag/pkg/readers/rfid"
	"github.com/ZaparooProject/planttag/pkg/relay"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
)

const defaultConfigDir = "/etc/planttag"

func main() {
	if err := run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func run() error {
	configDir := flag.String("config", defaultConfigDir, "directory holding config.toml")
	version := flag.Bool("version", false, "print version and exit")
	listPorts := flag.Bool("list-ports", false, "list candidate serial ports and exit")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *version {
		_, _ = fmt.Printf("%s v%s (%s/%s)\n", config.AppName, config.AppVersion, runtime.GOOS, runtime.GOARCH)
		return nil
	}

	if *listPorts {
		return printPorts(os.Stdout)
	}

	cfg, err := config.NewConfig(*configDir, config.BaseDefaults)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	err = helpers.InitLogging(cfg.DataDir(), []io.Writer{zerolog.ConsoleWriter{Out: os.Stderr}})
	if err != nil {
		return fmt.Errorf("error initializing logging: %w", err)
	}
	helpers.SetLogLevel(*debug || cfg.DebugLogging())

	log.Info().Msgf("%s v%s starting, config: %s", config.AppName, config.AppVersion, cfg.Path())

	reporter, err := telemetry.Start(telemetry.Options{
		Enabled:  cfg.ErrorReporting(),
		DSN:      cfg.TelemetryDSN(),
		DeviceID: cfg.DeviceID(),
		Board:    runtime.GOOS + "/" + runtime.GOARCH,
	})
	if err != nil {
		log.Warn().Err(err).Msg("error reporting not started")
	}
	defer reporter.Close()

	defer func() {
		if r := recover(); r != nil {
			reporter.Flush()
			log.Fatal().Msgf("panic: %v", r)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	err = serve(ctx, cfg)
	if err != nil {
		log.Error().Err(err).Msg("controller stopped")
		return err
	}

	log.Info().Msg("controller stopped")
	return nil
}

func printPorts(w io.Writer) error {
	devices, err := helpers.GetSerialDeviceList()
	if err != nil {
		return fmt.Errorf("error listing serial ports: %w", err)
	}
	if len(devices) == 0 {
		_, _ = fmt.Fprintln(w, "no serial ports found")
		return nil
	}
	for _, d := range devices {
		_, _ = fmt.Fprintln(w, d.String())
	}
	return nil
}

// serve opens every peripheral, then runs the control loop until ctx ends.
// The radio, reader, console and display are required; GPIO and the relay
// degrade to disabled on failure.
func serve(ctx context.Context, cfg *config.Instance) error {
	clock := clockwork.NewRealClock()
	fs := afero.NewOsFs()

	radioCfg := cfg.Radio()
	radioPort, err := helpers.OpenSerial(nil, radioCfg.Path, radioCfg.BaudRate, cfg.RadioPollInterval())
	if err != nil {
		return fmt.Errorf("error opening radio: %w", err)
	}
	defer closeLogged("radio", radioPort)

	session := radio.NewSession(at.NewDriver(radioPort, clock), radio.Options{
		Clock:          clock,
		CommandTimeout: cfg.RadioCommandTimeout(),
		SettleDelay:    cfg.RadioSettleDelay(),
	})
	session.Start()

	rfidCfg := cfg.RFID()
	reader, err := rfid.Open(nil, rfidCfg.Path, rfidCfg.BaudRate, clock)
	if err != nil {
		return fmt.Errorf("error opening rfid reader: %w", err)
	}
	defer closeLogged("rfid", reader)

	consoleCfg := cfg.Console()
	src, err := console.Open(nil, consoleCfg.Path, consoleCfg.BaudRate)
	if err != nil {
		return fmt.Errorf("error opening console: %w", err)
	}
	defer closeLogged("console", src)

	disp, dispCloser, err := display.Open(cfg.Display(), nil)
	if err != nil {
		return fmt.Errorf("error opening display: %w", err)
	}
	defer closeLogged("display", dispCloser)

	pins, err := gpio.Open(cfg.GPIO(), fs)
	if err != nil {
		log.Warn().Err(err).Msg("gpio unavailable, charging and led disabled")
		pins = gpio.Pins{}
	}

	store := identity.NewStore(fs, cfg.TablePath())
	err = store.Load()
	if err != nil {
		log.Warn().Err(err).Msg("starting with an empty identity table")
	}

	opts := controller.Options{
		Radio:     session,
		Display:   disp,
		Table:     store,
		Reader:    reader,
		Ingest:    ingest.NewChannel(src, store, disp, pins.LED, cfg.MaxFrameBytes()),
		Clock:     clock,
		RadioName: radioCfg.Name,
		NotifyTarget: at.NotifyTarget{
			Conn:    radioCfg.NotifyTarget.Conn,
			Service: radioCfg.NotifyTarget.Service,
			Char:    radioCfg.NotifyTarget.Char,
		},
		NotifyHandle: radioCfg.NotifyHandle,
		Tick:         cfg.TickPeriod(),
	}
	if pins.Charging != nil {
		opts.Charging = pins.Charging
	}

	relayCfg := cfg.Relay()
	if relayCfg.Enabled {
		mr := relay.NewMQTTRelay(relayCfg.Broker, relayCfg.Topic, cfg.DeviceID())
		err = mr.Start()
		if err != nil {
			log.Warn().Err(err).Msg("mqtt relay disabled")
		} else {
			defer mr.Stop()
			opts.Publisher = mr
		}
	}

	err = controller.New(opts).Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("error running controller: %w", err)
	}
	return nil
}

func closeLogged(name string, c io.Closer) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msgf("error closing %s", name)
	}
}
