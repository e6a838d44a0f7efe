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
	"database/sql"
	"sort"
	"time"

	"github.com/gatechain/go-deadlock"
	"github.com/gatechain/logging"

	"github.com/gybernaty/gybermint/config"
	"github.com/gybernaty/gybermint/data/asset"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/data/member"
	"github.com/gybernaty/gybermint/protocol"
)

// Registry is the cooperative membership core: the operator set, the halt
// switch, and every tier-lifecycle and withdrawal operation.
//
// All operations serialize on one mutex, so each runs to completion with
// exclusive access to the full state before the next begins. The withdrawal
// critical section (counter update plus asset transfer) lives entirely under
// that lock and inside one database transaction, so it can neither be
// re-entered nor half-applied.
type Registry struct {
	mu deadlock.Mutex

	log   logging.Logger
	proto config.CoopParams

	store  *member.Store
	oracle asset.Oracle
	sink   EventSink

	// members and operators mirror the store; the registry reads through
	// them and writes through the store first.
	members   map[basics.Address]member.Member
	operators map[basics.Address]bool

	admin  basics.Address
	paused bool

	// now is the registry clock. Tests pin it.
	now func() int64
}

// MakeRegistry warms a Registry from its store. admin is the only identity
// allowed to flip the halt switch; a zero admin disables that surface.
func MakeRegistry(log logging.Logger, proto config.CoopParams, store *member.Store, oracle asset.Oracle, sink EventSink, admin basics.Address) (*Registry, error) {
	r := &Registry{
		log:       log,
		proto:     proto,
		store:     store,
		oracle:    oracle,
		sink:      sink,
		admin:     admin,
		members:   make(map[basics.Address]member.Member),
		operators: make(map[basics.Address]bool),
		now:       func() int64 { return time.Now().Unix() },
	}

	members, err := store.Members()
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		r.members[m.Addr] = m
	}

	operators, err := store.Operators()
	if err != nil {
		return nil, err
	}
	for _, addr := range operators {
		r.operators[addr] = true
	}

	log.Infof("registry warmed: %d members, %d operators", len(r.members), len(r.operators))
	return r, nil
}

// Join grants operator privilege to caller if the entry fee is covered:
// either the caller's managed-asset balance meets the token threshold, or
// the attached native amount meets the native threshold. Granting twice is
// not an error and leaves the operator set unchanged.
func (r *Registry) Join(caller basics.Address, attachedNative uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}

	balance, err := r.oracle.BalanceOf(caller)
	if err != nil {
		return err
	}

	var qualifying uint64
	switch {
	case balance >= r.proto.GbrTokenAmount:
		qualifying = balance
	case attachedNative >= r.proto.BnbAmount:
		qualifying = attachedNative
	default:
		// report the pair for the path the caller was visibly attempting
		if attachedNative > 0 {
			return &InsufficientPaymentError{Provided: attachedNative, Required: r.proto.BnbAmount}
		}
		return &InsufficientPaymentError{Provided: balance, Required: r.proto.GbrTokenAmount}
	}

	if err := r.store.AddOperator(caller); err != nil {
		return err
	}
	r.operators[caller] = true

	r.sink.Notify(protocol.EventJoined, JoinedEventDetails{Address: caller.String(), Amount: qualifying})
	return nil
}

// IsOperator reports whether addr holds operator privilege. Available while
// paused.
func (r *Registry) IsOperator(addr basics.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.operators[addr]
}

// CreateMember enrolls a new participant at the given tier. Operator-only.
func (r *Registry) CreateMember(operator, addr basics.Address, tier basics.Tier, displayName, profileLink string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}
	if !r.operators[operator] {
		return &NotOperatorError{Addr: operator}
	}
	if _, present := r.members[addr]; present {
		return &MemberExistsError{Addr: addr}
	}

	m, err := member.New(addr, tier, displayName, profileLink)
	if err != nil {
		return err
	}
	if err := r.store.Insert(m); err != nil {
		return err
	}
	r.members[addr] = m

	r.sink.Notify(protocol.EventMemberCreated, MemberCreatedEventDetails{Address: addr.String(), Tier: uint64(tier)})
	return nil
}

// RequestTierUp marks the calling member for a tier increase. Self-service;
// the increase itself still needs an operator to execute it.
func (r *Registry) RequestTierUp(self basics.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}
	m, present := r.members[self]
	if !present {
		return &NoSuchMemberError{Addr: self}
	}

	if err := m.MarkUp(); err != nil {
		return err
	}
	if err := r.store.Update(m); err != nil {
		return err
	}
	r.members[self] = m

	r.sink.Notify(protocol.EventMarkedUp, MarkEventDetails{Address: self.String(), Tier: uint64(m.Tier)})
	return nil
}

// RequestTierDown marks a member for a tier reduction. Operator-only.
func (r *Registry) RequestTierDown(operator, addr basics.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}
	if !r.operators[operator] {
		return &NotOperatorError{Addr: operator}
	}
	m, present := r.members[addr]
	if !present {
		return &NoSuchMemberError{Addr: addr}
	}

	if err := m.MarkDown(); err != nil {
		return err
	}
	if err := r.store.Update(m); err != nil {
		return err
	}
	r.members[addr] = m

	r.sink.Notify(protocol.EventMarkedDown, MarkEventDetails{Address: addr.String(), Tier: uint64(m.Tier)})
	return nil
}

// ExecuteTierChange applies a pending mark in the given direction.
// Operator-only; this is the sole mutator of a member's tier.
func (r *Registry) ExecuteTierChange(operator, addr basics.Address, up bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}
	if !r.operators[operator] {
		return &NotOperatorError{Addr: operator}
	}
	m, present := r.members[addr]
	if !present {
		return &NoSuchMemberError{Addr: addr}
	}

	old, updated, err := m.ApplyTierChange(up)
	if err != nil {
		return err
	}
	if err := r.store.Update(m); err != nil {
		return err
	}
	r.members[addr] = m

	r.sink.Notify(protocol.EventTierChanged, TierChangedEventDetails{
		Address: addr.String(),
		OldTier: uint64(old),
		NewTier: uint64(updated),
	})
	return nil
}

// Withdraw moves amount of the pooled asset to the calling member, subject
// to the per-transaction tier cap and the per-window count. The counter
// advance and the transfer commit or roll back together: a failing transfer
// must not consume a withdrawal slot.
func (r *Registry) Withdraw(self basics.Address, amount uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.paused {
		return ErrPaused
	}
	m, present := r.members[self]
	if !present {
		return &NoSuchMemberError{Addr: self}
	}

	if err := m.RecordWithdrawal(amount, r.now(), r.proto); err != nil {
		return err
	}

	// AtomicOnce: a busy retry would re-run the transfer after it succeeded
	err := r.store.AtomicOnce(func(tx *sql.Tx) error {
		if err := member.UpdateTx(tx, m); err != nil {
			return err
		}
		// last step on purpose: an error here rolls the counter advance back
		return r.oracle.Transfer(self, amount)
	})
	if err != nil {
		return err
	}
	r.members[self] = m

	r.sink.Notify(protocol.EventTokensWithdrawn, WithdrawnEventDetails{Address: self.String(), Amount: amount})
	return nil
}

// Pause flips the halt switch on. Root-admin-only. While paused every
// mutating operation is rejected; reads stay available.
func (r *Registry) Pause(caller basics.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller.IsZero() || caller != r.admin {
		return &NotAdminError{Addr: caller}
	}

	r.paused = true
	r.log.Warnf("registry paused by %s", caller.String())
	r.sink.Notify(protocol.EventPaused, HaltEventDetails{Admin: caller.String()})
	return nil
}

// Unpause flips the halt switch off. Root-admin-only.
func (r *Registry) Unpause(caller basics.Address) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if caller.IsZero() || caller != r.admin {
		return &NotAdminError{Addr: caller}
	}

	r.paused = false
	r.log.Infof("registry unpaused by %s", caller.String())
	r.sink.Notify(protocol.EventUnpaused, HaltEventDetails{Admin: caller.String()})
	return nil
}

// Paused reports the halt switch state. Available while paused.
func (r *Registry) Paused() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.paused
}

// Member returns one member record. Available while paused.
func (r *Registry) Member(addr basics.Address) (member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, present := r.members[addr]
	if !present {
		return member.Member{}, &NoSuchMemberError{Addr: addr}
	}
	return m, nil
}

// Members returns every member record, ordered by address.
func (r *Registry) Members() []member.Member {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]member.Member, 0, len(r.members))
	for _, m := range r.members {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Addr.String() < out[j].Addr.String()
	})
	return out
}

// IsAdmin reports whether addr is the root administrator. Available while
// paused; a zero addr never qualifies.
func (r *Registry) IsAdmin(addr basics.Address) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return !addr.IsZero() && addr == r.admin
}

// OperatorCount returns the size of the operator set.
func (r *Registry) OperatorCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.operators)
}
