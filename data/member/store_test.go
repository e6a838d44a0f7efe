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
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gybernaty/gybermint/data/basics"
)

func makeTestStore(t *testing.T) *Store {
	store, err := MakeStore(t.Name()+".sqlite", true)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	return store
}

func TestStoreInsertLookup(t *testing.T) {
	store := makeTestStore(t)

	alice, err := New(testAddr("alice"), 2, "Alice", "https://t.me/alice")
	require.NoError(t, err)
	require.NoError(t, store.Insert(alice))

	got, ok, err := store.Lookup(alice.Addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, alice, got)

	_, ok, err = store.Lookup(testAddr("nobody"))
	require.NoError(t, err)
	require.False(t, ok)

	// the address is the primary key
	require.Error(t, store.Insert(alice))
}

func TestStoreUpdate(t *testing.T) {
	store := makeTestStore(t)

	alice, err := New(testAddr("alice"), 1, "Alice", "link")
	require.NoError(t, err)
	require.NoError(t, store.Insert(alice))

	require.NoError(t, alice.MarkUp())
	_, _, err = alice.ApplyTierChange(true)
	require.NoError(t, err)
	require.NoError(t, alice.RecordWithdrawal(10, 1700000000, testProto()))
	require.NoError(t, store.Update(alice))

	got, ok, err := store.Lookup(alice.Addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, alice, got)

	// updating a record that was never inserted must fail
	ghost, err := New(testAddr("ghost"), 1, "Ghost", "link")
	require.NoError(t, err)
	require.Error(t, store.Update(ghost))
}

func TestStoreMembersOrdered(t *testing.T) {
	store := makeTestStore(t)

	names := []string{"carol", "alice", "bob"}
	for i, name := range names {
		m, err := New(testAddr(name), basics.Tier(i+1), name, "link")
		require.NoError(t, err)
		require.NoError(t, store.Insert(m))
	}

	members, err := store.Members()
	require.NoError(t, err)
	require.Len(t, members, len(names))
	for i := 1; i < len(members); i++ {
		require.True(t, members[i-1].Addr.String() < members[i].Addr.String())
	}
}

func TestStoreOperators(t *testing.T) {
	store := makeTestStore(t)

	op := testAddr("operator")
	require.NoError(t, store.AddOperator(op))
	require.NoError(t, store.AddOperator(op)) // idempotent
	require.NoError(t, store.AddOperator(testAddr("second")))

	operators, err := store.Operators()
	require.NoError(t, err)
	require.Len(t, operators, 2)
	require.Contains(t, operators, op)
}

func TestStoreAtomicRollback(t *testing.T) {
	store := makeTestStore(t)

	alice, err := New(testAddr("alice"), 1, "Alice", "link")
	require.NoError(t, err)
	require.NoError(t, store.Insert(alice))

	alice.WindowCount = 1
	err = store.Atomic(func(tx *sql.Tx) error {
		if err := UpdateTx(tx, alice); err != nil {
			return err
		}
		return sql.ErrConnDone
	})
	require.Error(t, err)

	got, ok, err := store.Lookup(alice.Addr)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, uint64(0), got.WindowCount)
}
