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
	"fmt"
	"testing"

	"github.com/gatechain/crypto"
	"github.com/gatechain/logging"
	"github.com/stretchr/testify/require"
	dbm "github.com/tendermint/tm-db"

	"github.com/gybernaty/gybermint/config"
	"github.com/gybernaty/gybermint/data/asset"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/data/member"
	"github.com/gybernaty/gybermint/protocol"
)

func testAddr(name string) basics.Address {
	return basics.Address(crypto.Hash([]byte(name)))
}

type recordedEvent struct {
	kind    protocol.EventKind
	details interface{}
}

type memorySink struct {
	events []recordedEvent
}

func (s *memorySink) Notify(kind protocol.EventKind, details interface{}) {
	s.events = append(s.events, recordedEvent{kind: kind, details: details})
}

func (s *memorySink) last(t *testing.T) recordedEvent {
	require.NotEmpty(t, s.events)
	return s.events[len(s.events)-1]
}

type stubOracle struct {
	balances     map[basics.Address]uint64
	failTransfer bool
	transferred  uint64
}

func (o *stubOracle) BalanceOf(addr basics.Address) (uint64, error) {
	return o.balances[addr], nil
}

func (o *stubOracle) Transfer(to basics.Address, amount uint64) error {
	if o.failTransfer {
		return fmt.Errorf("transfer of %d rejected", amount)
	}
	o.transferred += amount
	return nil
}

var testAdmin = testAddr("root admin")

type testEnv struct {
	registry *Registry
	sink     *memorySink
	oracle   *stubOracle
	store    *member.Store
	now      *int64
}

func makeTestEnv(t *testing.T) testEnv {
	store, err := member.MakeStore(t.Name()+".sqlite", true)
	require.NoError(t, err)

	sink := &memorySink{}
	oracle := &stubOracle{balances: make(map[basics.Address]uint64)}
	proto := config.Coop[protocol.CoopCurrentVersion]

	registry, err := MakeRegistry(logging.Base(), proto, store, oracle, sink, testAdmin)
	require.NoError(t, err)

	now := int64(1700000000)
	registry.now = func() int64 { return now }
	env := testEnv{registry: registry, sink: sink, oracle: oracle, store: store, now: &now}
	t.Cleanup(store.Close)
	return env
}

// checkInvariants asserts the per-member invariants that must hold after
// every operation: tier inside the legal range, at most one pending mark.
func checkInvariants(t *testing.T, r *Registry) {
	for _, m := range r.Members() {
		require.True(t, m.Tier.Valid(), "member %s tier %d out of range", m.Addr, m.Tier)
		require.False(t, m.MarkedUp && m.MarkedDown, "member %s double-marked", m.Addr)
	}
}

func (env testEnv) enroll(t *testing.T, operator basics.Address, addr basics.Address, tier basics.Tier) {
	env.oracle.balances[operator] = config.Coop[protocol.CoopCurrentVersion].GbrTokenAmount
	require.NoError(t, env.registry.Join(operator, 0))
	require.NoError(t, env.registry.CreateMember(operator, addr, tier, "Lirik", "https://t.me/lirik"))
}

func TestJoinByTokenBalance(t *testing.T) {
	env := makeTestEnv(t)
	caller := testAddr("rich in tokens")
	env.oracle.balances[caller] = 1000000000000

	require.NoError(t, env.registry.Join(caller, 0))
	require.True(t, env.registry.IsOperator(caller))

	ev := env.sink.last(t)
	require.Equal(t, protocol.EventJoined, ev.kind)
	require.Equal(t, uint64(1000000000000), ev.details.(JoinedEventDetails).Amount)
}

func TestJoinByAttachedNative(t *testing.T) {
	env := makeTestEnv(t)
	caller := testAddr("rich in native")

	require.NoError(t, env.registry.Join(caller, 1000000000000000000))
	require.True(t, env.registry.IsOperator(caller))

	ev := env.sink.last(t)
	require.Equal(t, protocol.EventJoined, ev.kind)
	require.Equal(t, uint64(1000000000000000000), ev.details.(JoinedEventDetails).Amount)
}

func TestJoinInsufficientPayment(t *testing.T) {
	env := makeTestEnv(t)
	caller := testAddr("broke")
	env.oracle.balances[caller] = 7

	err := env.registry.Join(caller, 0)
	require.Error(t, err)
	payErr, ok := err.(*InsufficientPaymentError)
	require.True(t, ok)
	require.Equal(t, uint64(7), payErr.Provided)
	require.Equal(t, uint64(1000000000000), payErr.Required)
	require.False(t, env.registry.IsOperator(caller))

	// a partial native payment reports the native pair instead
	err = env.registry.Join(caller, 500)
	payErr, ok = err.(*InsufficientPaymentError)
	require.True(t, ok)
	require.Equal(t, uint64(500), payErr.Provided)
	require.Equal(t, uint64(1000000000000000000), payErr.Required)
}

func TestJoinIdempotent(t *testing.T) {
	env := makeTestEnv(t)
	caller := testAddr("operator")
	env.oracle.balances[caller] = 2000000000000

	require.NoError(t, env.registry.Join(caller, 0))
	require.NoError(t, env.registry.Join(caller, 0))
	require.Equal(t, 1, env.registry.OperatorCount())
}

func TestCreateMemberValidation(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")

	// no privilege yet
	err := env.registry.CreateMember(operator, alice, 1, "Alice", "link")
	_, ok := err.(*NotOperatorError)
	require.True(t, ok)

	env.oracle.balances[operator] = 1000000000000
	require.NoError(t, env.registry.Join(operator, 0))

	for _, tier := range []basics.Tier{0, 5, 100} {
		err := env.registry.CreateMember(operator, alice, tier, "Alice", "link")
		_, ok := err.(*member.TierOutOfRangeError)
		require.True(t, ok, "tier %d must be rejected", tier)
	}

	require.NoError(t, env.registry.CreateMember(operator, alice, 1, "Alice", "link"))
	err = env.registry.CreateMember(operator, alice, 2, "Alice again", "link")
	_, ok = err.(*MemberExistsError)
	require.True(t, ok)

	checkInvariants(t, env.registry)
}

func TestTierChangeRoundTrip(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 1)

	require.NoError(t, env.registry.RequestTierUp(alice))
	m, err := env.registry.Member(alice)
	require.NoError(t, err)
	require.True(t, m.MarkedUp)
	require.Equal(t, basics.Tier(1), m.Tier)

	require.NoError(t, env.registry.ExecuteTierChange(operator, alice, true))
	m, err = env.registry.Member(alice)
	require.NoError(t, err)
	require.Equal(t, basics.Tier(2), m.Tier)
	require.False(t, m.MarkedUp)
	require.False(t, m.MarkedDown)

	ev := env.sink.last(t)
	require.Equal(t, protocol.EventTierChanged, ev.kind)
	details := ev.details.(TierChangedEventDetails)
	require.Equal(t, uint64(1), details.OldTier)
	require.Equal(t, uint64(2), details.NewTier)

	checkInvariants(t, env.registry)
}

func TestTierBoundaries(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	top := testAddr("top")
	bottom := testAddr("bottom")
	env.enroll(t, operator, top, 4)
	require.NoError(t, env.registry.CreateMember(operator, bottom, 1, "Bottom", "link"))

	err := env.registry.RequestTierUp(top)
	_, ok := err.(*member.TierLimitError)
	require.True(t, ok)
	m, _ := env.registry.Member(top)
	require.Equal(t, basics.Tier(4), m.Tier)
	require.False(t, m.MarkedUp)

	err = env.registry.RequestTierDown(operator, bottom)
	_, ok = err.(*member.TierLimitError)
	require.True(t, ok)

	checkInvariants(t, env.registry)
}

func TestLastMarkWins(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 2)

	require.NoError(t, env.registry.RequestTierDown(operator, alice))
	require.NoError(t, env.registry.RequestTierUp(alice))

	m, _ := env.registry.Member(alice)
	require.True(t, m.MarkedUp)
	require.False(t, m.MarkedDown)

	// executing the overwritten direction must fail
	err := env.registry.ExecuteTierChange(operator, alice, false)
	_, ok := err.(*member.NotMarkedError)
	require.True(t, ok)

	checkInvariants(t, env.registry)
}

func TestExecuteUnknownMember(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	env.oracle.balances[operator] = 1000000000000
	require.NoError(t, env.registry.Join(operator, 0))

	err := env.registry.ExecuteTierChange(operator, testAddr("ghost"), true)
	_, ok := err.(*NoSuchMemberError)
	require.True(t, ok)
}

func TestWithdrawCapEnforcement(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 1)

	err := env.registry.Withdraw(alice, 1000000000001)
	capErr, ok := err.(*member.OverTierCapError)
	require.True(t, ok)
	require.Equal(t, uint64(1000000000001), capErr.Amount)
	require.Equal(t, uint64(1000000000000), capErr.Cap)

	require.NoError(t, env.registry.Withdraw(alice, 1000000000000))
	require.Equal(t, uint64(1000000000000), env.oracle.transferred)
}

func TestWithdrawZeroAmount(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 3)

	require.Equal(t, member.ErrZeroWithdrawal, env.registry.Withdraw(alice, 0))
}

func TestWithdrawWindowReset(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 2)

	require.NoError(t, env.registry.Withdraw(alice, 5))
	require.NoError(t, env.registry.Withdraw(alice, 5))

	err := env.registry.Withdraw(alice, 5)
	winErr, ok := err.(*member.WindowExhaustedError)
	require.True(t, ok)
	require.Equal(t, uint64(2), winErr.Count)
	require.Equal(t, uint64(2), winErr.Max)

	// the next window opens fresh slots without any background job
	*env.now += config.Coop[protocol.CoopCurrentVersion].WithdrawWindow
	require.NoError(t, env.registry.Withdraw(alice, 5))

	m, err := env.registry.Member(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(1), m.WindowCount)
	require.Equal(t, *env.now, m.LastWithdrawal)
}

func TestWithdrawTransferFailureRollsBack(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 1)

	env.oracle.failTransfer = true
	err := env.registry.Withdraw(alice, 5)
	require.Error(t, err)

	// the failed transfer must not consume a withdrawal slot
	m, err := env.registry.Member(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(0), m.WindowCount)
	require.Equal(t, int64(0), m.LastWithdrawal)

	stored, present, err := env.store.Lookup(alice)
	require.NoError(t, err)
	require.True(t, present)
	require.Equal(t, uint64(0), stored.WindowCount)

	env.oracle.failTransfer = false
	require.NoError(t, env.registry.Withdraw(alice, 5))
}

func TestPauseGatesEverything(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 1)

	err := env.registry.Pause(testAddr("impostor"))
	_, ok := err.(*NotAdminError)
	require.True(t, ok)
	require.False(t, env.registry.Paused())

	require.NoError(t, env.registry.Pause(testAdmin))
	require.True(t, env.registry.Paused())

	require.Equal(t, ErrPaused, env.registry.Join(testAddr("late joiner"), 1000000000000000000))
	require.Equal(t, ErrPaused, env.registry.CreateMember(operator, testAddr("bob"), 1, "Bob", "link"))
	require.Equal(t, ErrPaused, env.registry.RequestTierUp(alice))
	require.Equal(t, ErrPaused, env.registry.RequestTierDown(operator, alice))
	require.Equal(t, ErrPaused, env.registry.ExecuteTierChange(operator, alice, true))
	require.Equal(t, ErrPaused, env.registry.Withdraw(alice, 5))

	// reads stay available while paused
	require.True(t, env.registry.IsOperator(operator))
	_, err = env.registry.Member(alice)
	require.NoError(t, err)

	require.NoError(t, env.registry.Unpause(testAdmin))
	require.NoError(t, env.registry.RequestTierUp(alice))
}

func TestIsAdmin(t *testing.T) {
	env := makeTestEnv(t)
	require.True(t, env.registry.IsAdmin(testAdmin))
	require.False(t, env.registry.IsAdmin(testAddr("impostor")))
	require.False(t, env.registry.IsAdmin(basics.Address{}))
}

// The full production path: a funded balance store backs the oracle, so an
// unfunded pool rejects withdrawals and funding makes them succeed.
func TestWithdrawFromBalanceStore(t *testing.T) {
	store, err := member.MakeStore(t.Name()+".sqlite", true)
	require.NoError(t, err)
	t.Cleanup(store.Close)

	balances := asset.NewBalanceStore(dbm.NewMemDB())
	proto := config.Coop[protocol.CoopCurrentVersion]
	sink := &memorySink{}
	registry, err := MakeRegistry(logging.Base(), proto, store, balances, sink, testAdmin)
	require.NoError(t, err)

	operator := testAddr("operator")
	alice := testAddr("alice")
	require.NoError(t, balances.Credit(operator, proto.GbrTokenAmount))
	require.NoError(t, registry.Join(operator, 0))
	require.NoError(t, registry.CreateMember(operator, alice, 2, "Alice", "link"))

	// empty pool: the withdrawal must fail without consuming a slot
	err = registry.Withdraw(alice, 500)
	require.Error(t, err)
	m, err := registry.Member(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(0), m.WindowCount)

	require.NoError(t, balances.FundPool(1000))
	require.NoError(t, registry.Withdraw(alice, 500))

	balance, err := balances.BalanceOf(alice)
	require.NoError(t, err)
	require.Equal(t, uint64(500), balance)
	pool, err := balances.Pool()
	require.NoError(t, err)
	require.Equal(t, uint64(500), pool)
}

func TestRegistryWarmsFromStore(t *testing.T) {
	env := makeTestEnv(t)
	operator := testAddr("operator")
	alice := testAddr("alice")
	env.enroll(t, operator, alice, 3)
	require.NoError(t, env.registry.RequestTierUp(alice))

	proto := config.Coop[protocol.CoopCurrentVersion]
	rewarmed, err := MakeRegistry(logging.Base(), proto, env.store, env.oracle, env.sink, testAdmin)
	require.NoError(t, err)

	require.True(t, rewarmed.IsOperator(operator))
	m, err := rewarmed.Member(alice)
	require.NoError(t, err)
	require.Equal(t, basics.Tier(3), m.Tier)
	require.True(t, m.MarkedUp)
}
