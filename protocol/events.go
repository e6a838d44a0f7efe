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

package protocol

// EventKind identifies one of the externally observable registry events.
// The set is append-only: consumers index their logs by these strings.
type EventKind string

const (
	// EventJoined fires when an identity qualifies as an operator.
	EventJoined EventKind = "Joined"

	// EventMemberCreated fires when an operator enrolls a new participant.
	EventMemberCreated EventKind = "MemberCreated"

	// EventMarkedUp fires when a participant requests a tier increase.
	EventMarkedUp EventKind = "MarkedUp"

	// EventMarkedDown fires when an operator requests a tier reduction.
	EventMarkedDown EventKind = "MarkedDown"

	// EventTierChanged fires when an operator executes a pending mark.
	EventTierChanged EventKind = "TierChanged"

	// EventTokensWithdrawn fires after a successful withdrawal transfer.
	EventTokensWithdrawn EventKind = "TokensWithdrawn"

	// EventPaused and EventUnpaused track the system-wide halt switch.
	EventPaused   EventKind = "Paused"
	EventUnpaused EventKind = "Unpaused"
)
