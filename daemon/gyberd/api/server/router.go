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

// Package server builds the REST router of gyberd.
package server

import (
	"net/http"

	"github.com/gatechain/logging"
	"github.com/gorilla/mux"

	"github.com/gybernaty/gybermint/daemon/gyberd/api/server/lib"
	"github.com/gybernaty/gybermint/daemon/gyberd/api/server/v1/routes"
	"github.com/gybernaty/gybermint/data"
	"github.com/gybernaty/gybermint/data/asset"
	"github.com/gybernaty/gybermint/data/journal"
)

const (
	apiV1Tag = "/v1"
)

// wrapCtx passes a common context to each request without a global variable.
func wrapCtx(ctx lib.ReqContext, handler lib.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		handler(ctx, w, r)
	}
}

func registerHandlers(router *mux.Router, prefix string, routes lib.Routes, ctx lib.ReqContext) {
	for _, route := range routes {
		r := router.NewRoute().PathPrefix(prefix)
		r.Path(route.Path).
			Name(route.Name).
			Methods(route.Method).
			HandlerFunc(wrapCtx(ctx, route.HandlerFunc))
	}
}

// NewRouter builds and returns a new router serving the registry API.
func NewRouter(log logging.Logger, registry *data.Registry, balances *asset.BalanceStore, events *journal.Journal) *mux.Router {
	router := mux.NewRouter().StrictSlash(true)

	ctx := lib.ReqContext{Registry: registry, Balances: balances, Journal: events, Log: log}
	registerHandlers(router, apiV1Tag, routes.V1Routes, ctx)

	return router
}
