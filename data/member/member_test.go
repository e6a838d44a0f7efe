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
	"testing"

	"github.com/gatechain/crypto"
	"github.com/stretchr/testify/require"

	"github.com/gybernaty/gybermint/config"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/protocol"
)

func testAddr(name string) basics.Address {
	return basics.Address(crypto.Hash([]byte(name)))
}

func testProto() config.CoopParams {
	return config.Coop[protocol.CoopCurrentVersion]
}

func TestNewRejectsBadTier(t *testing.T) {
	for _, tier := range []basics.Tier{0, 5, 42} {
		_, err := New(testAddr("x"), tier, "X", "link")
		rangeErr, ok := err.(*TierOutOfRangeError)
		require.True(t, ok, "tier %d", tier)
		require.Equal(t, tier, rangeErr.Tier)
	}

	for tier := basics.MinTier; tier <= basics.MaxTier; tier++ {
		m, err := New(testAddr("x"), tier, "X", "link")
		require.NoError(t, err)
		require.Equal(t, tier, m.Tier)
		require.False(t, m.MarkedUp)
		require.False(t, m.MarkedDown)
	}
}

func TestMarksAreExclusive(t *testing.T) {
	m, err := New(testAddr("alice"), 2, "Alice", "link")
	require.NoError(t, err)

	require.NoError(t, m.MarkUp())
	require.True(t, m.MarkedUp)
	require.False(t, m.MarkedDown)

	require.NoError(t, m.MarkDown())
	require.False(t, m.MarkedUp)
	require.True(t, m.MarkedDown)

	require.NoError(t, m.MarkUp())
	require.True(t, m.MarkedUp)
	require.False(t, m.MarkedDown)
}

func TestMarkBoundaries(t *testing.T) {
	top, err := New(testAddr("top"), basics.MaxTier, "Top", "link")
	require.NoError(t, err)
	err = top.MarkUp()
	_, ok := err.(*TierLimitError)
	require.True(t, ok)
	require.False(t, top.MarkedUp)

	bottom, err := New(testAddr("bottom"), basics.MinTier, "Bottom", "link")
	require.NoError(t, err)
	err = bottom.MarkDown()
	_, ok = err.(*TierLimitError)
	require.True(t, ok)
	require.False(t, bottom.MarkedDown)
}

func TestApplyTierChange(t *testing.T) {
	m, err := New(testAddr("alice"), 2, "Alice", "link")
	require.NoError(t, err)

	// executing without a mark fails in either direction
	_, _, err = m.ApplyTierChange(true)
	_, ok := err.(*NotMarkedError)
	require.True(t, ok)
	_, _, err = m.ApplyTierChange(false)
	_, ok = err.(*NotMarkedError)
	require.True(t, ok)

	require.NoError(t, m.MarkUp())
	old, updated, err := m.ApplyTierChange(true)
	require.NoError(t, err)
	require.Equal(t, basics.Tier(2), old)
	require.Equal(t, basics.Tier(3), updated)
	require.Equal(t, basics.Tier(3), m.Tier)
	require.False(t, m.MarkedUp)
	require.False(t, m.MarkedDown)

	// the mark was consumed
	_, _, err = m.ApplyTierChange(true)
	_, ok = err.(*NotMarkedError)
	require.True(t, ok)

	require.NoError(t, m.MarkDown())
	old, updated, err = m.ApplyTierChange(false)
	require.NoError(t, err)
	require.Equal(t, basics.Tier(3), old)
	require.Equal(t, basics.Tier(2), updated)
}

func TestApplyWrongDirection(t *testing.T) {
	m, err := New(testAddr("alice"), 2, "Alice", "link")
	require.NoError(t, err)

	require.NoError(t, m.MarkDown())
	_, _, err = m.ApplyTierChange(true)
	_, ok := err.(*NotMarkedError)
	require.True(t, ok)
	require.Equal(t, basics.Tier(2), m.Tier)
	require.True(t, m.MarkedDown)
}

func TestWindowIndex(t *testing.T) {
	window := testProto().WithdrawWindow
	require.Equal(t, int64(0), WindowIndex(0, window))
	require.Equal(t, int64(0), WindowIndex(window-1, window))
	require.Equal(t, int64(1), WindowIndex(window, window))
	require.Equal(t, int64(1), WindowIndex(2*window-1, window))
	require.Equal(t, int64(2), WindowIndex(2*window, window))
}

func TestRecordWithdrawalQuota(t *testing.T) {
	proto := testProto()
	m, err := New(testAddr("alice"), 1, "Alice", "link")
	require.NoError(t, err)

	now := int64(1700000000)
	require.NoError(t, m.RecordWithdrawal(10, now, proto))
	require.Equal(t, uint64(1), m.WindowCount)
	require.NoError(t, m.RecordWithdrawal(10, now+1, proto))
	require.Equal(t, uint64(2), m.WindowCount)

	err = m.RecordWithdrawal(10, now+2, proto)
	winErr, ok := err.(*WindowExhaustedError)
	require.True(t, ok)
	require.Equal(t, uint64(2), winErr.Count)
	require.Equal(t, uint64(2), winErr.Max)

	// crossing a window boundary resets the counter lazily
	later := now + proto.WithdrawWindow
	require.NoError(t, m.RecordWithdrawal(10, later, proto))
	require.Equal(t, uint64(1), m.WindowCount)
	require.Equal(t, later, m.LastWithdrawal)
}

func TestRecordWithdrawalCaps(t *testing.T) {
	proto := testProto()
	now := int64(1700000000)

	for tier := basics.MinTier; tier <= basics.MaxTier; tier++ {
		m, err := New(testAddr("alice"), tier, "Alice", "link")
		require.NoError(t, err)

		max := proto.TierLimits[tier]
		err = m.RecordWithdrawal(max+1, now, proto)
		capErr, ok := err.(*OverTierCapError)
		require.True(t, ok, "tier %d", tier)
		require.Equal(t, max+1, capErr.Amount)
		require.Equal(t, max, capErr.Cap)
		require.Equal(t, uint64(0), m.WindowCount)

		require.NoError(t, m.RecordWithdrawal(max, now, proto))
	}
}

func TestRecordWithdrawalZero(t *testing.T) {
	m, err := New(testAddr("alice"), 1, "Alice", "link")
	require.NoError(t, err)
	require.Equal(t, ErrZeroWithdrawal, m.RecordWithdrawal(0, 1700000000, testProto()))
	require.Equal(t, uint64(0), m.WindowCount)
}

func TestDigestTracksRecord(t *testing.T) {
	m, err := New(testAddr("alice"), 1, "Alice", "link")
	require.NoError(t, err)
	before := m.Digest()

	require.NoError(t, m.MarkUp())
	require.NotEqual(t, before, m.Digest())
}
