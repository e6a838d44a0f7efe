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

package routes

import (
	"github.com/gybernaty/gybermint/daemon/gyberd/api/server/lib"
	"github.com/gybernaty/gybermint/daemon/gyberd/api/server/v1/handlers"
)

// V1Routes are the registry API routes served under /v1.
var V1Routes = lib.Routes{
	lib.Route{
		Name:        "status",
		Method:      "GET",
		Path:        "/status",
		HandlerFunc: handlers.Status,
	},

	lib.Route{
		Name:        "join",
		Method:      "POST",
		Path:        "/join",
		HandlerFunc: handlers.Join,
	},

	lib.Route{
		Name:        "get-operator",
		Method:      "GET",
		Path:        "/operators/{addr}",
		HandlerFunc: handlers.GetOperator,
	},

	lib.Route{
		Name:        "list-events",
		Method:      "GET",
		Path:        "/events",
		HandlerFunc: handlers.ListEvents,
	},

	lib.Route{
		Name:        "list-members",
		Method:      "GET",
		Path:        "/members",
		HandlerFunc: handlers.ListMembers,
	},

	lib.Route{
		Name:        "create-member",
		Method:      "POST",
		Path:        "/members",
		HandlerFunc: handlers.CreateMember,
	},

	lib.Route{
		Name:        "get-member",
		Method:      "GET",
		Path:        "/members/{addr}",
		HandlerFunc: handlers.GetMember,
	},

	lib.Route{
		Name:        "mark-up",
		Method:      "POST",
		Path:        "/members/{addr}/mark-up",
		HandlerFunc: handlers.MarkUp,
	},

	lib.Route{
		Name:        "mark-down",
		Method:      "POST",
		Path:        "/members/{addr}/mark-down",
		HandlerFunc: handlers.MarkDown,
	},

	lib.Route{
		Name:        "execute-tier-change",
		Method:      "POST",
		Path:        "/members/{addr}/execute",
		HandlerFunc: handlers.ExecuteTierChange,
	},

	lib.Route{
		Name:        "withdraw",
		Method:      "POST",
		Path:        "/members/{addr}/withdraw",
		HandlerFunc: handlers.Withdraw,
	},

	lib.Route{
		Name:        "get-pool",
		Method:      "GET",
		Path:        "/pool",
		HandlerFunc: handlers.GetPool,
	},

	lib.Route{
		Name:        "fund",
		Method:      "POST",
		Path:        "/admin/fund",
		HandlerFunc: handlers.Fund,
	},

	lib.Route{
		Name:        "pause",
		Method:      "POST",
		Path:        "/admin/pause",
		HandlerFunc: handlers.Pause,
	},

	lib.Route{
		Name:        "unpause",
		Method:      "POST",
		Path:        "/admin/unpause",
		HandlerFunc: handlers.Unpause,
	},
}
