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

// Package v1 defines models exposed by gyberd REST API
package v1

// RegistryStatus contains the information about a node registry status
// swagger:model RegistryStatus
type RegistryStatus struct {
	// CoopVersion is the cooperative rule set the registry enforces
	//
	// required: true
	CoopVersion string `json:"coopVersion"`

	// Paused reports the halt switch state
	//
	// required: true
	Paused bool `json:"paused"`

	// Members is the number of enrolled participants
	//
	// required: true
	Members int `json:"members"`

	// Operators is the number of privileged identities
	//
	// required: true
	Operators int `json:"operators"`
}

// Member contains one participant record
// swagger:model Member
type Member struct {
	// Address is the participant identity
	//
	// required: true
	Address string `json:"address"`

	DisplayName string `json:"displayName"`
	ProfileLink string `json:"profileLink"`

	// Tier is the membership level in [1, 4]
	//
	// required: true
	Tier uint64 `json:"tier"`

	MarkedUp   bool `json:"markedUp"`
	MarkedDown bool `json:"markedDown"`

	// LastWithdrawal is the unix time of the most recent withdrawal, 0 if none
	LastWithdrawal int64 `json:"lastWithdrawal"`

	// WindowCount is the number of withdrawals in the current window
	WindowCount uint64 `json:"windowCount"`
}

// MemberList contains a paginated list of member records
// swagger:model MemberList
type MemberList struct {
	Members []Member `json:"members"`
	Total   int      `json:"total"`
}

// JoinRequest asks for operator privilege
// swagger:model JoinRequest
type JoinRequest struct {
	// Caller is the identity requesting privilege
	//
	// required: true
	Caller string `json:"caller"`

	// AttachedNative is the native-currency amount attached to the call
	AttachedNative uint64 `json:"attachedNative"`
}

// CreateMemberRequest enrolls a new participant
// swagger:model CreateMemberRequest
type CreateMemberRequest struct {
	Operator    string `json:"operator"`
	Address     string `json:"address"`
	Tier        uint64 `json:"tier"`
	DisplayName string `json:"displayName"`
	ProfileLink string `json:"profileLink"`
}

// MarkRequest records a pending tier change in one direction
// swagger:model MarkRequest
type MarkRequest struct {
	// Caller is the member for up-marks, the operator for down-marks
	Caller string `json:"caller"`

	// Address is the member to mark; ignored for self-service up-marks
	Address string `json:"address"`
}

// ExecuteRequest applies a pending mark
// swagger:model ExecuteRequest
type ExecuteRequest struct {
	Operator string `json:"operator"`
	Address  string `json:"address"`
	Up       bool   `json:"up"`
}

// WithdrawRequest moves pooled assets to the calling member
// swagger:model WithdrawRequest
type WithdrawRequest struct {
	Caller string `json:"caller"`
	Amount uint64 `json:"amount"`
}

// AdminRequest flips the halt switch
// swagger:model AdminRequest
type AdminRequest struct {
	Admin string `json:"admin"`
}

// FundRequest adds pooled or account balance. Root-admin-only.
// swagger:model FundRequest
type FundRequest struct {
	// Admin is the root administrator authorizing the funding
	//
	// required: true
	Admin string `json:"admin"`

	// Address receives the amount; empty funds the withdrawal pool instead
	Address string `json:"address"`

	// Amount is the quantity to add, in smallest asset units
	//
	// required: true
	Amount uint64 `json:"amount"`
}

// AssetStatus reports the pooled balance and, when requested, one account
// swagger:model AssetStatus
type AssetStatus struct {
	// Pool is the balance withdrawals draw from
	//
	// required: true
	Pool uint64 `json:"pool"`

	// Address and Balance describe one funded account, if any
	Address string `json:"address,omitempty"`
	Balance uint64 `json:"balance,omitempty"`
}

// Event is one recorded registry event
// swagger:model Event
type Event struct {
	// ID orders events; higher is newer
	//
	// required: true
	ID uint64 `json:"id"`

	// Kind names the event, e.g. "TokensWithdrawn"
	//
	// required: true
	Kind string `json:"kind"`

	// Details is the JSON-encoded event payload
	Details string `json:"details"`

	// CreatedAt is the unix time the event was recorded
	CreatedAt int64 `json:"createdAt"`
}

// EventList contains recent registry events, newest first
// swagger:model EventList
type EventList struct {
	Events []Event `json:"events"`
}

// OperatorStatus reports one identity's privilege
// swagger:model OperatorStatus
type OperatorStatus struct {
	Address  string `json:"address"`
	Operator bool   `json:"operator"`
}
