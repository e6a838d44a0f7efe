// Copyright (C) 2019 Algorand, Inc.
// This file is part of go-algorand
//
// go-algorand is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// go-algorand is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with go-algorand.  If not, see <https://www.gnu.org/licenses/>.

package data

import (
	"github.com/gatechain/logging"
	"github.com/gatechain/logging/telemetryspec"

	"github.com/gybernaty/gybermint/protocol"
)

// An EventSink receives registry notifications. Notifications are fire and
// forget: the registry never waits on the sink and never observes a failure.
type EventSink interface {
	Notify(kind protocol.EventKind, details interface{})
}

// JoinedEventDetails carries the amount that qualified the new operator:
// the token balance when that path qualified, else the attached native amount.
type JoinedEventDetails struct {
	Address string
	Amount  uint64
}

// MemberCreatedEventDetails describes a fresh enrollment.
type MemberCreatedEventDetails struct {
	Address string
	Tier    uint64
}

// MarkEventDetails describes a pending tier change request. Tier is the
// member's tier at the time of the request, before any change.
type MarkEventDetails struct {
	Address string
	Tier    uint64
}

// TierChangedEventDetails describes an executed tier change.
type TierChangedEventDetails struct {
	Address string
	OldTier uint64
	NewTier uint64
}

// WithdrawnEventDetails describes a completed withdrawal.
type WithdrawnEventDetails struct {
	Address string
	Amount  uint64
}

// HaltEventDetails identifies the administrator flipping the halt switch.
type HaltEventDetails struct {
	Admin string
}

var registryCategory = telemetryspec.Category("Registry")

// LogSink forwards registry events to the telemetry log.
type LogSink struct {
	log logging.Logger
}

// MakeLogSink builds a sink on top of an existing logger.
func MakeLogSink(log logging.Logger) LogSink {
	return LogSink{log: log}
}

// Notify implements EventSink.
func (s LogSink) Notify(kind protocol.EventKind, details interface{}) {
	s.log.EventWithDetails(registryCategory, telemetryspec.Event(kind), details)
}

// TeeSink fans every notification out to several sinks.
type TeeSink struct {
	sinks []EventSink
}

// MakeTeeSink builds a sink forwarding to all of the given sinks in order.
func MakeTeeSink(sinks ...EventSink) TeeSink {
	return TeeSink{sinks: sinks}
}

// Notify implements EventSink.
func (s TeeSink) Notify(kind protocol.EventKind, details interface{}) {
	for _, sink := range s.sinks {
		sink.Notify(kind, details)
	}
}
