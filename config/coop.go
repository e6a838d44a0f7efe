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

package config

import (
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/protocol"
)

// CoopParams specifies the fixed parameters of one version of the
// cooperative membership rules. Instances are universal constants:
// they are built once in initCoop and never mutated afterwards.
type CoopParams struct {
	// GbrTokenAmount is the managed-asset balance that qualifies an
	// identity as an operator.
	GbrTokenAmount uint64

	// BnbAmount is the attached native-currency amount that qualifies an
	// identity as an operator when the token balance does not.
	BnbAmount uint64

	// WithdrawWindow is the length, in seconds, of the rolling window used
	// for withdrawal rate limiting. Window identity is integer division of
	// a unix timestamp by this length.
	WithdrawWindow int64

	// MaxWindowWithdrawals bounds how many withdrawals a participant may
	// perform inside one window.
	MaxWindowWithdrawals uint64

	// TierLimits maps a membership tier to the maximum quantity a single
	// withdrawal may move, in smallest asset units.
	TierLimits map[basics.Tier]uint64
}

// Coop tracks the cooperative rule sets by version.
var Coop map[protocol.CoopVersion]CoopParams

func init() {
	initCoop()
}

func initCoop() {
	Coop = make(map[protocol.CoopVersion]CoopParams)

	v1 := CoopParams{
		GbrTokenAmount:       1000000000000,
		BnbAmount:            1000000000000000000,
		WithdrawWindow:       30 * 24 * 60 * 60,
		MaxWindowWithdrawals: 2,
		TierLimits: map[basics.Tier]uint64{
			1: 1000000000000,
			2: 10000000000000,
			3: 100000000000000,
			4: 1000000000000000,
		},
	}
	Coop[protocol.CoopV1] = v1
}
