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

package member

import (
	"encoding/json"
	"fmt"

	"github.com/gatechain/crypto"

	"github.com/gybernaty/gybermint/config"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/protocol"
)

// A Member is one enrolled cooperative participant. The record is created
// exactly once per address and never deleted; tier changes and withdrawals
// mutate it in place.
//
// MarkedUp and MarkedDown are the two pending-change flags of the tier state
// machine. At most one of them is set at any time: marking in one direction
// clears the opposite mark, and executing a change clears both.
type Member struct {
	Addr        basics.Address `json:"addr"`
	DisplayName string         `json:"displayName"`
	ProfileLink string         `json:"profileLink"`

	Tier       basics.Tier `json:"tier"`
	MarkedUp   bool        `json:"markedUp"`
	MarkedDown bool        `json:"markedDown"`

	// LastWithdrawal is the unix time of the most recent withdrawal,
	// 0 if the member never withdrew.
	LastWithdrawal int64 `json:"lastWithdrawal"`

	// WindowCount counts withdrawals inside the window containing
	// LastWithdrawal. It is only trustworthy relative to that window:
	// RecordWithdrawal resets it lazily when a later window begins.
	WindowCount uint64 `json:"windowCount"`
}

// New builds a steady-state Member record at the given tier.
func New(addr basics.Address, tier basics.Tier, displayName, profileLink string) (Member, error) {
	if !tier.Valid() {
		return Member{}, &TierOutOfRangeError{Tier: tier}
	}
	return Member{
		Addr:        addr,
		DisplayName: displayName,
		ProfileLink: profileLink,
		Tier:        tier,
	}, nil
}

// MarkUp records a pending tier increase. The last mark wins: any pending
// down-mark is cleared.
func (m *Member) MarkUp() error {
	if m.Tier == basics.MaxTier {
		return &TierLimitError{Tier: m.Tier}
	}
	m.MarkedUp = true
	m.MarkedDown = false
	return nil
}

// MarkDown records a pending tier reduction, clearing any pending up-mark.
func (m *Member) MarkDown() error {
	if m.Tier == basics.MinTier {
		return &TierLimitError{Tier: m.Tier}
	}
	m.MarkedDown = true
	m.MarkedUp = false
	return nil
}

// ApplyTierChange executes the pending mark in the given direction. It is
// the only mutator of Tier. The new tier is re-validated against the legal
// range even though the mark-time checks should make that impossible: an
// operator may execute a mark long after it was set.
func (m *Member) ApplyTierChange(up bool) (old, updated basics.Tier, err error) {
	if up && !m.MarkedUp {
		return m.Tier, m.Tier, &NotMarkedError{Addr: m.Addr}
	}
	if !up && !m.MarkedDown {
		return m.Tier, m.Tier, &NotMarkedError{Addr: m.Addr}
	}

	old = m.Tier
	if up {
		updated = old + 1
	} else {
		updated = old - 1
	}
	if !updated.Valid() {
		return old, old, &TierOutOfRangeError{Tier: updated}
	}

	m.Tier = updated
	m.MarkedUp = false
	m.MarkedDown = false
	return old, updated, nil
}

// WindowIndex derives the identity of the rate-limiting window containing ts.
func WindowIndex(ts int64, windowLen int64) int64 {
	return ts / windowLen
}

// RecordWithdrawal validates a withdrawal of amount at time now against the
// member's tier cap and window quota, and advances the counters on success.
// The counter reset at a window boundary happens here, on demand; there is
// no background job ticking windows over.
//
// Callers are expected to persist the mutated record and perform the asset
// transfer atomically with it.
func (m *Member) RecordWithdrawal(amount uint64, now int64, proto config.CoopParams) error {
	if amount == 0 {
		return ErrZeroWithdrawal
	}

	max := proto.TierLimits[m.Tier]
	if amount > max {
		return &OverTierCapError{Amount: amount, Cap: max}
	}

	currentWindow := WindowIndex(now, proto.WithdrawWindow)
	lastWindow := WindowIndex(m.LastWithdrawal, proto.WithdrawWindow)
	if currentWindow == lastWindow && m.WindowCount >= proto.MaxWindowWithdrawals {
		return &WindowExhaustedError{Count: m.WindowCount, Max: proto.MaxWindowWithdrawals}
	}
	if currentWindow > lastWindow {
		m.WindowCount = 0
	}

	m.WindowCount++
	m.LastWithdrawal = now
	return nil
}

// ToBeHashed implements crypto.Hashable for integrity digests of the record.
func (m Member) ToBeHashed() (crypto.HashID, []byte) {
	data, err := json.Marshal(m)
	if err != nil {
		panic(fmt.Sprintf("could not marshal member record: %v", err))
	}
	return protocol.MemberRecord, data
}

// Digest returns a domain-separated hash of the full record.
func (m Member) Digest() crypto.Digest {
	return crypto.HashObj(m)
}
