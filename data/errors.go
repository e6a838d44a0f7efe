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

	"github.com/pkg/errors"

	"github.com/gybernaty/gybermint/data/basics"
)

// ErrPaused rejects every mutating operation while the halt switch is on.
var ErrPaused = errors.New("registry is paused")

// NotOperatorError means the caller lacks operator privilege.
type NotOperatorError struct {
	Addr basics.Address
}

func (err *NotOperatorError) Error() string {
	return fmt.Sprintf("%s does not hold operator privilege", err.Addr.String())
}

// NotAdminError means the caller is not the root administrator.
type NotAdminError struct {
	Addr basics.Address
}

func (err *NotAdminError) Error() string {
	return fmt.Sprintf("%s is not the root administrator", err.Addr.String())
}

// MemberExistsError means an enrollment was attempted for an address that
// already holds a member record.
type MemberExistsError struct {
	Addr basics.Address
}

func (err *MemberExistsError) Error() string {
	return fmt.Sprintf("member %s already exists", err.Addr.String())
}

// NoSuchMemberError means the address was never enrolled.
type NoSuchMemberError struct {
	Addr basics.Address
}

func (err *NoSuchMemberError) Error() string {
	return fmt.Sprintf("member %s does not exist", err.Addr.String())
}

// InsufficientPaymentError means neither entry-fee path qualified the
// caller. Provided and Required describe the path that came closest:
// the attached native amount when one was attached, else the token balance.
type InsufficientPaymentError struct {
	Provided uint64
	Required uint64
}

func (err *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: provided %d, required %d", err.Provided, err.Required)
}
