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

// Package lib holds the shared plumbing of the REST handlers.
package lib

import (
	"encoding/json"
	"net/http"

	"github.com/gatechain/logging"

	"github.com/gybernaty/gybermint/data"
	"github.com/gybernaty/gybermint/data/asset"
	"github.com/gybernaty/gybermint/data/journal"
)

// ReqContext is passed to each of the handlers below via wrapCtx, allowing
// handlers to interact with the registry.
type ReqContext struct {
	Registry *data.Registry
	Balances *asset.BalanceStore
	Journal  *journal.Journal
	Log      logging.Logger
}

// HandlerFunc is like http.HandlerFunc with a leading ReqContext.
type HandlerFunc func(ReqContext, http.ResponseWriter, *http.Request)

// Route type description
type Route struct {
	Name        string
	Method      string
	Path        string
	HandlerFunc HandlerFunc
}

// Routes contains all routes
type Routes []Route

// ErrorResponse sets the specified status code (should != 200), and fills in
// a human-readable error.
func ErrorResponse(w http.ResponseWriter, status int, internalErr error, publicErr string, log logging.Logger) {
	log.Info(internalErr)

	w.WriteHeader(status)
	_, err := w.Write([]byte(publicErr))
	if err != nil {
		log.Warnf("gyberd failed to write response: %v", err)
	}
}

// SendJSON is like http.ResponseWriter.Write but for JSON-serializable
// objects.
func SendJSON(obj interface{}, w http.ResponseWriter, log logging.Logger) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	err := enc.Encode(obj)
	if err != nil {
		log.Warnf("gyberd failed to write an object to the response stream: %v", err)
	}
}
