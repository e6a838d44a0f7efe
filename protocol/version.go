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

package protocol

// CoopVersion is a string that identifies a version of the cooperative
// membership rules (tier table, entry fee thresholds, withdrawal window).
type CoopVersion string

// CoopV1 is the initial set of rules the Gybernaty cooperative launched with.
const CoopV1 = CoopVersion("coop-v1")

// CoopCurrentVersion is the latest version and should be used
// when a specific version is not provided.
const CoopCurrentVersion = CoopV1
