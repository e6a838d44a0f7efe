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

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/gybernaty/gybermint/daemon/gyberd/api/server/lib"
	v1 "github.com/gybernaty/gybermint/daemon/gyberd/api/spec/v1"
	"github.com/gybernaty/gybermint/data"
	"github.com/gybernaty/gybermint/data/basics"
	"github.com/gybernaty/gybermint/data/journal"
	"github.com/gybernaty/gybermint/data/member"
	"github.com/gybernaty/gybermint/protocol"
)

const (
	errFailedParsingRequestBody = "failed to parse request body"
	errFailedParsingAddress     = "failed to parse address"
	errFailedParsingTier        = "tier outside the legal range"
)

func memberEncode(m member.Member) v1.Member {
	return v1.Member{
		Address:        m.Addr.String(),
		DisplayName:    m.DisplayName,
		ProfileLink:    m.ProfileLink,
		Tier:           uint64(m.Tier),
		MarkedUp:       m.MarkedUp,
		MarkedDown:     m.MarkedDown,
		LastWithdrawal: m.LastWithdrawal,
		WindowCount:    m.WindowCount,
	}
}

// errorStatus maps a registry error onto the HTTP status the caller should
// see. Unrecognized errors are precondition violations.
func errorStatus(err error) int {
	if err == data.ErrPaused {
		return http.StatusServiceUnavailable
	}
	switch err.(type) {
	case *data.NotOperatorError, *data.NotAdminError:
		return http.StatusForbidden
	case *data.NoSuchMemberError:
		return http.StatusNotFound
	case *data.MemberExistsError:
		return http.StatusConflict
	case *data.InsufficientPaymentError:
		return http.StatusPaymentRequired
	case *member.WindowExhaustedError:
		return http.StatusTooManyRequests
	}
	return http.StatusBadRequest
}

func decodeRequest(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request, req interface{}) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(req); err != nil {
		lib.ErrorResponse(w, http.StatusBadRequest, err, errFailedParsingRequestBody, ctx.Log)
		return false
	}
	return true
}

func pathAddress(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) (basics.Address, bool) {
	raw := mux.Vars(r)["addr"]
	addr, err := basics.UnmarshalChecksumAddress(raw)
	if err != nil {
		lib.ErrorResponse(w, http.StatusBadRequest, err, errFailedParsingAddress, ctx.Log)
		return basics.Address{}, false
	}
	return addr, true
}

func bodyAddress(ctx lib.ReqContext, w http.ResponseWriter, raw string) (basics.Address, bool) {
	addr, err := basics.UnmarshalChecksumAddress(raw)
	if err != nil {
		lib.ErrorResponse(w, http.StatusBadRequest, err, errFailedParsingAddress, ctx.Log)
		return basics.Address{}, false
	}
	return addr, true
}

// Status is an httpHandler for route GET /v1/status
func Status(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/status GetStatus
	//---
	//     Summary: Gets the current registry status.
	//     Responses:
	//       200: RegistryStatus

	status := v1.RegistryStatus{
		CoopVersion: string(protocol.CoopCurrentVersion),
		Paused:      ctx.Registry.Paused(),
		Members:     len(ctx.Registry.Members()),
		Operators:   ctx.Registry.OperatorCount(),
	}
	lib.SendJSON(status, w, ctx.Log)
}

// Join is an httpHandler for route POST /v1/join
func Join(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/join JoinCoop
	//---
	//     Summary: Grants operator privilege when the entry fee is covered.
	//     Responses:
	//       200: OperatorStatus

	var req v1.JoinRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	caller, ok := bodyAddress(ctx, w, req.Caller)
	if !ok {
		return
	}

	if err := ctx.Registry.Join(caller, req.AttachedNative); err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	lib.SendJSON(v1.OperatorStatus{Address: caller.String(), Operator: true}, w, ctx.Log)
}

// GetOperator is an httpHandler for route GET /v1/operators/{addr}
func GetOperator(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/operators/{addr} GetOperator
	//---
	//     Summary: Reports whether an identity holds operator privilege.
	//     Responses:
	//       200: OperatorStatus

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	lib.SendJSON(v1.OperatorStatus{Address: addr.String(), Operator: ctx.Registry.IsOperator(addr)}, w, ctx.Log)
}

// ListMembers is an httpHandler for route GET /v1/members
func ListMembers(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/members ListMembers
	//---
	//     Summary: Lists every enrolled participant.
	//     Responses:
	//       200: MemberList

	members := ctx.Registry.Members()
	out := v1.MemberList{Total: len(members)}
	if raw := r.URL.Query().Get("max"); raw != "" {
		max, err := strconv.ParseUint(raw, 10, 64)
		if err == nil && max > 0 && uint64(len(members)) > max {
			members = members[:max]
		}
	}
	for _, m := range members {
		out.Members = append(out.Members, memberEncode(m))
	}
	lib.SendJSON(out, w, ctx.Log)
}

// ListEvents is an httpHandler for route GET /v1/events
func ListEvents(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/events ListEvents
	//---
	//     Summary: Lists recent registry events, newest first.
	//     Responses:
	//       200: EventList

	var max uint64
	if raw := r.URL.Query().Get("max"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			lib.ErrorResponse(w, http.StatusBadRequest, err, "failed to parse max", ctx.Log)
			return
		}
		max = parsed
	}

	var entries []journal.Entry
	var err error
	if kind := r.URL.Query().Get("kind"); kind != "" {
		entries, err = ctx.Journal.RecentByKind(protocol.EventKind(kind), max)
	} else {
		entries, err = ctx.Journal.Recent(max)
	}
	if err != nil {
		lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
		return
	}

	var out v1.EventList
	for _, e := range entries {
		out.Events = append(out.Events, v1.Event{
			ID:        e.ID,
			Kind:      e.Kind,
			Details:   e.Details,
			CreatedAt: e.CreatedAt,
		})
	}
	lib.SendJSON(out, w, ctx.Log)
}

// GetMember is an httpHandler for route GET /v1/members/{addr}
func GetMember(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/members/{addr} GetMember
	//---
	//     Summary: Gets one participant record.
	//     Responses:
	//       200: Member

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	m, err := ctx.Registry.Member(addr)
	if err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// CreateMember is an httpHandler for route POST /v1/members
func CreateMember(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/members CreateMember
	//---
	//     Summary: Enrolls a new participant. Operator-only.
	//     Responses:
	//       200: Member

	var req v1.CreateMemberRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	operator, ok := bodyAddress(ctx, w, req.Operator)
	if !ok {
		return
	}
	addr, ok := bodyAddress(ctx, w, req.Address)
	if !ok {
		return
	}

	err := ctx.Registry.CreateMember(operator, addr, basics.Tier(req.Tier), req.DisplayName, req.ProfileLink)
	if err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	m, err := ctx.Registry.Member(addr)
	if err != nil {
		lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
		return
	}
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// MarkUp is an httpHandler for route POST /v1/members/{addr}/mark-up
func MarkUp(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/members/{addr}/mark-up MarkUp
	//---
	//     Summary: Member requests a tier increase. Self-service.
	//     Responses:
	//       200: Member

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	if err := ctx.Registry.RequestTierUp(addr); err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	m, _ := ctx.Registry.Member(addr)
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// MarkDown is an httpHandler for route POST /v1/members/{addr}/mark-down
func MarkDown(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/members/{addr}/mark-down MarkDown
	//---
	//     Summary: Operator requests a tier reduction for a member.
	//     Responses:
	//       200: Member

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	var req v1.MarkRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	operator, ok := bodyAddress(ctx, w, req.Caller)
	if !ok {
		return
	}
	if err := ctx.Registry.RequestTierDown(operator, addr); err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	m, _ := ctx.Registry.Member(addr)
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// ExecuteTierChange is an httpHandler for route POST /v1/members/{addr}/execute
func ExecuteTierChange(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/members/{addr}/execute ExecuteTierChange
	//---
	//     Summary: Operator executes a pending tier change.
	//     Responses:
	//       200: Member

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	var req v1.ExecuteRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	operator, ok := bodyAddress(ctx, w, req.Operator)
	if !ok {
		return
	}
	if err := ctx.Registry.ExecuteTierChange(operator, addr, req.Up); err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	m, _ := ctx.Registry.Member(addr)
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// Withdraw is an httpHandler for route POST /v1/members/{addr}/withdraw
func Withdraw(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/members/{addr}/withdraw Withdraw
	//---
	//     Summary: Member withdraws pooled assets within tier and window limits.
	//     Responses:
	//       200: Member

	addr, ok := pathAddress(ctx, w, r)
	if !ok {
		return
	}
	var req v1.WithdrawRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	if err := ctx.Registry.Withdraw(addr, req.Amount); err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	m, _ := ctx.Registry.Member(addr)
	lib.SendJSON(memberEncode(m), w, ctx.Log)
}

// Pause is an httpHandler for route POST /v1/admin/pause
func Pause(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/admin/pause Pause
	//---
	//     Summary: Root administrator halts every mutating operation.
	//     Responses:
	//       200: RegistryStatus

	adminToggle(ctx, w, r, true)
}

// Unpause is an httpHandler for route POST /v1/admin/unpause
func Unpause(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/admin/unpause Unpause
	//---
	//     Summary: Root administrator lifts the halt.
	//     Responses:
	//       200: RegistryStatus

	adminToggle(ctx, w, r, false)
}

// GetPool is an httpHandler for route GET /v1/pool
func GetPool(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /v1/pool GetPool
	//---
	//     Summary: Gets the pooled balance withdrawals draw from.
	//     Responses:
	//       200: AssetStatus

	pool, err := ctx.Balances.Pool()
	if err != nil {
		lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
		return
	}
	lib.SendJSON(v1.AssetStatus{Pool: pool}, w, ctx.Log)
}

// Fund is an httpHandler for route POST /v1/admin/fund
func Fund(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /v1/admin/fund Fund
	//---
	//     Summary: Root administrator funds the withdrawal pool or an account.
	//     Responses:
	//       200: AssetStatus

	var req v1.FundRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	admin, ok := bodyAddress(ctx, w, req.Admin)
	if !ok {
		return
	}
	if !ctx.Registry.IsAdmin(admin) {
		err := &data.NotAdminError{Addr: admin}
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}

	status := v1.AssetStatus{}
	if req.Address == "" {
		if err := ctx.Balances.FundPool(req.Amount); err != nil {
			lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
			return
		}
	} else {
		addr, ok := bodyAddress(ctx, w, req.Address)
		if !ok {
			return
		}
		if err := ctx.Balances.Credit(addr, req.Amount); err != nil {
			lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
			return
		}
		balance, err := ctx.Balances.BalanceOf(addr)
		if err != nil {
			lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
			return
		}
		status.Address = addr.String()
		status.Balance = balance
	}

	pool, err := ctx.Balances.Pool()
	if err != nil {
		lib.ErrorResponse(w, http.StatusInternalServerError, err, err.Error(), ctx.Log)
		return
	}
	status.Pool = pool
	lib.SendJSON(status, w, ctx.Log)
}

func adminToggle(ctx lib.ReqContext, w http.ResponseWriter, r *http.Request, pause bool) {
	var req v1.AdminRequest
	if !decodeRequest(ctx, w, r, &req) {
		return
	}
	admin, ok := bodyAddress(ctx, w, req.Admin)
	if !ok {
		return
	}

	var err error
	if pause {
		err = ctx.Registry.Pause(admin)
	} else {
		err = ctx.Registry.Unpause(admin)
	}
	if err != nil {
		lib.ErrorResponse(w, errorStatus(err), err, err.Error(), ctx.Log)
		return
	}
	Status(ctx, w, r)
}
