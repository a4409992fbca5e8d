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

// Package relay forwards tag resolutions to an MQTT broker so other systems
// can follow what the device scans.
package relay

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/ZaparooProject/planttag/pkg/config"
	"github.com/ZaparooProject/planttag/pkg/identity"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	queueSize = 16

	// a tag held on the reader is reported on every frame
	publishesPerSecond = 10
	publishBurst       = 2 * queueSize
)

// ErrQueueFull means a resolution was dropped because the broker is not
// keeping up.
var ErrQueueFull = errors.New("relay: publish queue full")

// ErrRateLimited means a resolution was dropped to keep repeated scans from
// flooding the broker.
var ErrRateLimited = errors.New("relay: publish rate exceeded")

// Message is the JSON payload published for each scan.
type Message struct {
	UID      string `json:"uid"`
	Name     string `json:"name,omitempty"`
	Date     string `json:"date,omitempty"`
	Message  string `json:"message"`
	DeviceID string `json:"device_id,omitempty"`
	Found    bool   `json:"found"`
}

func NewMessage(res identity.Resolution, deviceID string) Message {
	m := Message{
		UID:      res.UID,
		Found:    res.Found,
		Message:  res.Message(),
		DeviceID: deviceID,
	}
	if res.Found {
		m.Name = res.Record.DisplayName
		m.Date = res.Record.PlantedDate
	}
	return m
}

// MQTTRelay publishes from its own goroutine so a slow broker never holds
// up the control loop. Publish only enqueues.
type MQTTRelay struct {
	client    mqtt.Client
	newClient func(*mqtt.ClientOptions) mqtt.Client
	limiter   *rate.Limiter
	queue     chan Message
	stopCh    chan struct{}
	broker    string
	topic     string
	deviceID  string
	wait      time.Duration
	wg        sync.WaitGroup
	stopOnce  sync.Once
}

func NewMQTTRelay(broker, topic, deviceID string) *MQTTRelay {
	return &MQTTRelay{
		newClient: mqtt.NewClient,
		limiter:   rate.NewLimiter(rate.Limit(publishesPerSecond), publishBurst),
		queue:     make(chan Message, queueSize),
		stopCh:    make(chan struct{}),
		broker:    broker,
		topic:     topic,
		deviceID:  deviceID,
		wait:      config.RelayPublishWait,
	}
}

func brokerURL(broker string) string {
	if strings.Contains(broker, "://") {
		return broker
	}
	return "tcp://" + broker
}

// Start connects to the broker and starts the publishing goroutine.
func (r *MQTTRelay) Start() error {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL(r.broker))
	opts.SetClientID(config.AppName + "-" + uuid.New().String()[:8])
	opts.SetAutoReconnect(true)
	opts.SetConnectRetry(true)
	opts.SetConnectTimeout(10 * time.Second)

	opts.OnConnect = func(_ mqtt.Client) {
		log.Info().Msgf("mqtt relay: connected to %s", r.broker)
	}
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn().Err(err).Msg("mqtt relay: connection lost")
	}

	r.client = r.newClient(opts)
	token := r.client.Connect()
	if !token.WaitTimeout(r.wait) {
		log.Warn().Msgf("mqtt relay: %s not reachable yet, will keep retrying", r.broker)
	} else if token.Error() != nil {
		return fmt.Errorf("failed to connect to MQTT broker: %w", token.Error())
	}

	r.wg.Add(1)
	go r.run()
	return nil
}

// Publish queues res for the broker without blocking.
func (r *MQTTRelay) Publish(res identity.Resolution) error {
	if !r.limiter.Allow() {
		log.Debug().Str("uid", res.UID).Msg("mqtt relay: rate limited, dropping resolution")
		return ErrRateLimited
	}
	select {
	case r.queue <- NewMessage(res, r.deviceID):
		return nil
	default:
		log.Warn().Str("uid", res.UID).Msg("mqtt relay: queue full, dropping resolution")
		return ErrQueueFull
	}
}

func (r *MQTTRelay) run() {
	defer r.wg.Done()
	for {
		select {
		case <-r.stopCh:
			return
		case msg := <-r.queue:
			r.publish(msg)
		}
	}
}

func (r *MQTTRelay) publish(msg Message) {
	payload, err := json.Marshal(msg)
	if err != nil {
		log.Error().Err(err).Msg("mqtt relay: failed to marshal message")
		return
	}

	token := r.client.Publish(r.topic, 0, false, payload)
	if !token.WaitTimeout(r.wait) {
		log.Warn().Str("uid", msg.UID).Msg("mqtt relay: publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		log.Error().Err(err).Msg("mqtt relay: failed to publish message")
		return
	}
	log.Debug().Str("uid", msg.UID).Msg("mqtt relay: published resolution")
}

// Stop ends the publishing goroutine and disconnects.
func (r *MQTTRelay) Stop() {
	r.stopOnce.Do(func() {
		close(r.stopCh)
		r.wg.Wait()
		if r.client != nil && r.client.IsConnected() {
			log.Debug().Msg("mqtt relay: disconnecting")
			r.client.Disconnect(250)
		}
	})
}
