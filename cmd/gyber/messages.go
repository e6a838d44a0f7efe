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

package main

const (
	// General
	errorNoDataDirectory = "Data directory not specified.  Please use -d or set $GYBERNATY_DATA in your environment. Exiting."

	// Node
	infoNodeStart      = "Gybernaty registry node successfully started!"
	errorNodeStatus    = "Cannot contact Gybernaty registry node: %s."
	errorConfigLoading = "Error loading Config file from '%s': %v"
	infoDataDir        = "[Data Directory: %s]"

	// Member
	errorMemberInfo   = "Cannot fetch member record: %s"
	errorMemberList   = "Cannot list members: %s"
	errorJoinFailed   = "Cannot acquire operator privilege: %s"
	errorEventList    = "Cannot list events: %s"
	errorFundFailed   = "Cannot fund: %s"
	infoJoinSucceeded = "Operator privilege granted to %s"
)
