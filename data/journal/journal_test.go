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

package journal

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gybernaty/gybermint/protocol"
)

func makeTestJournal(t *testing.T) *Journal {
	j, err := MakeJournal(t.Name()+".sqlite", true)
	require.NoError(t, err)
	t.Cleanup(j.Close)
	return j
}

func TestJournalRecordRecent(t *testing.T) {
	j := makeTestJournal(t)
	now := int64(1700000000)
	j.now = func() int64 { return now }

	type payload struct {
		Address string
		Amount  uint64
	}
	require.NoError(t, j.Record(protocol.EventJoined, payload{Address: "AAA", Amount: 7}))
	now++
	require.NoError(t, j.Record(protocol.EventPaused, nil))

	entries, err := j.Recent(0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// newest first
	require.Equal(t, string(protocol.EventPaused), entries[0].Kind)
	require.Equal(t, int64(1700000001), entries[0].CreatedAt)
	require.Equal(t, string(protocol.EventJoined), entries[1].Kind)
	require.JSONEq(t, `{"Address":"AAA","Amount":7}`, entries[1].Details)
	require.True(t, entries[0].ID > entries[1].ID)
}

func TestJournalRecentLimit(t *testing.T) {
	j := makeTestJournal(t)

	for i := 0; i < 5; i++ {
		require.NoError(t, j.Record(protocol.EventMarkedUp, fmt.Sprintf("n%d", i)))
	}

	entries, err := j.Recent(3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
}

func TestJournalRecentByKind(t *testing.T) {
	j := makeTestJournal(t)

	require.NoError(t, j.Record(protocol.EventJoined, nil))
	require.NoError(t, j.Record(protocol.EventTokensWithdrawn, nil))
	require.NoError(t, j.Record(protocol.EventJoined, nil))

	entries, err := j.RecentByKind(protocol.EventJoined, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		require.Equal(t, string(protocol.EventJoined), e.Kind)
	}

	entries, err = j.RecentByKind(protocol.EventUnpaused, 0)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestJournalEmpty(t *testing.T) {
	j := makeTestJournal(t)
	entries, err := j.Recent(0)
	require.NoError(t, err)
	require.Empty(t, entries)
}
