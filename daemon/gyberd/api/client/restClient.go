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

// Package client provides a thin HTTP client for the gyberd REST API.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"

	"github.com/google/go-querystring/query"

	v1 "github.com/gybernaty/gybermint/daemon/gyberd/api/spec/v1"
)

// RestClient manages the REST interface for a calling user.
type RestClient struct {
	serverURL url.URL
}

// MakeRestClient is the factory for constructing a RestClient for a given endpoint
func MakeRestClient(url url.URL) RestClient {
	return RestClient{serverURL: url}
}

// HTTPError is generated when we receive an unhandled error from the server.
// This error contains the error string.
type HTTPError struct {
	StatusCode  int
	Status      string
	ErrorString string
}

// Error formats an error string.
func (e HTTPError) Error() string {
	return fmt.Sprintf("HTTP %s: %s", e.Status, e.ErrorString)
}

// extractError checks if the response signifies an error and returns it.
func extractError(resp *http.Response) error {
	if resp.StatusCode == 200 {
		return nil
	}

	errorBuf, _ := ioutil.ReadAll(resp.Body)
	return HTTPError{StatusCode: resp.StatusCode, Status: resp.Status, ErrorString: string(errorBuf)}
}

// mergeRawQueries merges two raw queries, appending an "&" if both are non-empty
func mergeRawQueries(q1, q2 string) string {
	if q1 == "" || q2 == "" {
		return q1 + q2
	}
	return q1 + "&" + q2
}

// submitForm is a helper used for submitting (ex.) GETs and POSTs to the server
func (client RestClient) submitForm(response interface{}, path string, request interface{}, requestMethod string, encodeJSON bool) error {
	queryURL := client.serverURL
	queryURL.Path = path

	var req *http.Request
	var body io.Reader

	if request != nil && !encodeJSON {
		v, err := query.Values(request)
		if err != nil {
			return err
		}
		queryURL.RawQuery = mergeRawQueries(queryURL.RawQuery, v.Encode())
	}
	if request != nil && encodeJSON {
		jsonValue, err := json.Marshal(request)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(jsonValue)
	}

	req, err := http.NewRequest(requestMethod, queryURL.String(), body)
	if err != nil {
		return err
	}

	httpClient := http.Client{}
	resp, err := httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	err = extractError(resp)
	if err != nil {
		return err
	}

	dec := json.NewDecoder(resp.Body)
	return dec.Decode(&response)
}

// get performs a GET request to the specific path against the server
func (client RestClient) get(response interface{}, path string, request interface{}) error {
	return client.submitForm(response, path, request, "GET", false)
}

// post sends a POST request to the given path with the given request object
func (client RestClient) post(response interface{}, path string, request interface{}) error {
	return client.submitForm(response, path, request, "POST", true)
}

// Status retrieves the RegistryStatus
func (client RestClient) Status() (response v1.RegistryStatus, err error) {
	err = client.get(&response, "/v1/status", nil)
	return
}

// listMembersParams holds the query arguments of ListMembers.
type listMembersParams struct {
	Max uint64 `url:"max"`
}

// ListMembers gets up to max member records, every record when max is 0
func (client RestClient) ListMembers(max uint64) (response v1.MemberList, err error) {
	err = client.get(&response, "/v1/members", listMembersParams{Max: max})
	return
}

// listEventsParams holds the query arguments of ListEvents.
type listEventsParams struct {
	Max  uint64 `url:"max"`
	Kind string `url:"kind"`
}

// ListEvents gets up to max recent registry events, newest first. An empty
// kind returns events of every kind.
func (client RestClient) ListEvents(max uint64, kind string) (response v1.EventList, err error) {
	err = client.get(&response, "/v1/events", listEventsParams{Max: max, Kind: kind})
	return
}

// MemberInformation gets one participant record
func (client RestClient) MemberInformation(address string) (response v1.Member, err error) {
	err = client.get(&response, fmt.Sprintf("/v1/members/%s", address), nil)
	return
}

// OperatorInformation reports whether an identity holds operator privilege
func (client RestClient) OperatorInformation(address string) (response v1.OperatorStatus, err error) {
	err = client.get(&response, fmt.Sprintf("/v1/operators/%s", address), nil)
	return
}

// Join requests operator privilege for the caller
func (client RestClient) Join(caller string, attachedNative uint64) (response v1.OperatorStatus, err error) {
	err = client.post(&response, "/v1/join", v1.JoinRequest{Caller: caller, AttachedNative: attachedNative})
	return
}

// CreateMember enrolls a new participant
func (client RestClient) CreateMember(operator, address string, tier uint64, displayName, profileLink string) (response v1.Member, err error) {
	err = client.post(&response, "/v1/members", v1.CreateMemberRequest{
		Operator:    operator,
		Address:     address,
		Tier:        tier,
		DisplayName: displayName,
		ProfileLink: profileLink,
	})
	return
}

// MarkUp requests a tier increase for the member
func (client RestClient) MarkUp(address string) (response v1.Member, err error) {
	err = client.post(&response, fmt.Sprintf("/v1/members/%s/mark-up", address), struct{}{})
	return
}

// MarkDown requests a tier reduction for a member
func (client RestClient) MarkDown(operator, address string) (response v1.Member, err error) {
	err = client.post(&response, fmt.Sprintf("/v1/members/%s/mark-down", address), v1.MarkRequest{Caller: operator, Address: address})
	return
}

// ExecuteTierChange applies a pending mark
func (client RestClient) ExecuteTierChange(operator, address string, up bool) (response v1.Member, err error) {
	err = client.post(&response, fmt.Sprintf("/v1/members/%s/execute", address), v1.ExecuteRequest{Operator: operator, Address: address, Up: up})
	return
}

// Withdraw moves pooled assets to the member
func (client RestClient) Withdraw(address string, amount uint64) (response v1.Member, err error) {
	err = client.post(&response, fmt.Sprintf("/v1/members/%s/withdraw", address), v1.WithdrawRequest{Caller: address, Amount: amount})
	return
}

// Pool gets the pooled balance withdrawals draw from
func (client RestClient) Pool() (response v1.AssetStatus, err error) {
	err = client.get(&response, "/v1/pool", nil)
	return
}

// Fund adds amount to an account balance, or to the withdrawal pool when
// address is empty. Root-admin-only.
func (client RestClient) Fund(admin, address string, amount uint64) (response v1.AssetStatus, err error) {
	err = client.post(&response, "/v1/admin/fund", v1.FundRequest{Admin: admin, Address: address, Amount: amount})
	return
}

// Pause halts every mutating registry operation
func (client RestClient) Pause(admin string) (response v1.RegistryStatus, err error) {
	err = client.post(&response, "/v1/admin/pause", v1.AdminRequest{Admin: admin})
	return
}

// Unpause lifts the halt
func (client RestClient) Unpause(admin string) (response v1.RegistryStatus, err error) {
	err = client.post(&response, "/v1/admin/unpause", v1.AdminRequest{Admin: admin})
	return
}
