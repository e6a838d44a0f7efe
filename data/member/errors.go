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
	"fmt"

	"github.com/pkg/errors"

	"github.com/gybernaty/gybermint/data/basics"
)

// ErrZeroWithdrawal rejects withdrawal requests for a zero quantity.
var ErrZeroWithdrawal = errors.New("withdrawal amount must be positive")

// TierOutOfRangeError means a tier fell outside the legal range, either at
// creation or when executing a pending change.
type TierOutOfRangeError struct {
	Tier basics.Tier
}

func (err *TierOutOfRangeError) Error() string {
	return fmt.Sprintf("tier %d is outside [%d, %d]", err.Tier, basics.MinTier, basics.MaxTier)
}

// TierLimitError means the member is already at the boundary the requested
// mark would cross.
type TierLimitError struct {
	Tier basics.Tier
}

func (err *TierLimitError) Error() string {
	return fmt.Sprintf("tier limit reached at %d", err.Tier)
}

// NotMarkedError means an execute was attempted in a direction the member
// never requested.
type NotMarkedError struct {
	Addr basics.Address
}

func (err *NotMarkedError) Error() string {
	return fmt.Sprintf("member %s is not marked for the requested change", err.Addr.String())
}

// OverTierCapError means a single withdrawal exceeded the member's tier cap.
// This is a per-transaction cap, not a balance shortfall.
type OverTierCapError struct {
	Amount uint64
	Cap    uint64
}

func (err *OverTierCapError) Error() string {
	return fmt.Sprintf("withdrawal of %d exceeds tier cap %d", err.Amount, err.Cap)
}

// WindowExhaustedError means the member already used every withdrawal slot
// of the current window.
type WindowExhaustedError struct {
	Count uint64
	Max   uint64
}

func (err *WindowExhaustedError) Error() string {
	return fmt.Sprintf("withdrawal limit exceeded: %d of %d used this window", err.Count, err.Max)
}
