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

package config

import (
	"fmt"
)

var defaultLocal = defaultLocalV1

const configVersion = uint32(1)

// !!! WARNING !!!
//
// These versioned structures need to be maintained CAREFULLY and treated
// like UNIVERSAL CONSTANTS - they should not be modified once committed.
//
// New fields may be added to the current defaultLocalV# and should
// also be added to installer/config.json.example.
//
// Changing a default value requires creating a new defaultLocalV# instance,
// bump the version number (configVersion), and add appropriate migration and tests.
//
// !!! WARNING !!!

var defaultLocalV1 = Local{
	// DO NOT MODIFY VALUES - New values may be added carefully - See WARNING at top of file
	Version:                 1,
	AssetDBBackend:          "goleveldb",
	BaseLoggerDebugLevel:    4,
	DeadlockDetection:       0,
	EndpointAddress:         "127.0.0.1:0",
	LogArchiveName:          "registry.archive.log",
	LogArchiveMaxAge:        "",
	LogSizeLimit:            1073741824,
	MemberDBInMemory:        false,
	RestReadTimeoutSeconds:  15,
	RestWriteTimeoutSeconds: 120,
	RootAdmin:               "",
	// DO NOT MODIFY VALUES - New values may be added carefully - See WARNING at top of file
}

func migrate(cfg Local) (newCfg Local, err error) {
	newCfg = cfg
	if cfg.Version == configVersion {
		return
	}

	if cfg.Version > configVersion {
		err = fmt.Errorf("unexpected config version: %d", cfg.Version)
		return
	}

	// Migrate 0 -> 1
	if newCfg.Version == 0 {
		newCfg.Version = 1
		if newCfg.AssetDBBackend == "" {
			newCfg.AssetDBBackend = defaultLocalV1.AssetDBBackend
		}
	}

	if newCfg.Version != configVersion {
		err = fmt.Errorf("failed to migrate config version %d (stuck at %d) to latest %d", cfg.Version, newCfg.Version, configVersion)
	}

	return
}
