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

// Package asset defines the contract between the registry and whatever
// actually holds the cooperative's pooled asset.
package asset

import (
	"github.com/gybernaty/gybermint/data/basics"
)

// Oracle reports balances of the managed asset and moves quantities of it
// out of the pooled balance. Transfer is atomic: either the full quantity
// moves and it returns nil, or nothing moves and it returns an error.
// Callers must treat a Transfer error as fatal for the enclosing operation.
type Oracle interface {
	BalanceOf(addr basics.Address) (uint64, error)
	Transfer(to basics.Address, amount uint64) error
}
