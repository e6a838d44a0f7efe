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

// Package config defines the local node configuration and the fixed
// cooperative protocol parameters.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// ConfigFilename is the name of the config.json file where we store
// per-node settings.
const ConfigFilename = "config.json"

// Local holds the per-node, potentially-overridden configuration settings.
// Defaults live in local_defaults.go; users override them by dropping a
// partial config.json in the data directory.
type Local struct {
	// Version tracks the current version of the defaults so we can migrate old -> new
	// This is specifically important whenever we decide to change the default value
	// for an existing parameter.
	Version uint32

	// AssetDBBackend selects the tm-db backend for the pooled asset store
	// ("goleveldb" or "memdb").
	AssetDBBackend string

	// BaseLoggerDebugLevel specifies the debug level of the base logger.
	BaseLoggerDebugLevel uint32

	// DeadlockDetection controls the deadlock detection library:
	// negative disables it, positive forces it on, zero leaves the default.
	DeadlockDetection int

	// EndpointAddress configures the address the REST API listens on.
	EndpointAddress string

	LogArchiveName   string
	LogArchiveMaxAge string

	// LogSizeLimit is the log file size limit in bytes.
	LogSizeLimit uint64

	// MemberDBInMemory keeps the member database in memory. Test-only.
	MemberDBInMemory bool

	RestReadTimeoutSeconds  int
	RestWriteTimeoutSeconds int

	// RootAdmin is the checksummed address of the identity allowed to
	// flip the registry halt switch. Empty disables the admin surface.
	RootAdmin string
}

// LoadConfigFromDisk loads the Local configuration for the given data
// directory, merging any config.json found there over the defaults, and
// migrating old versions forward.
func LoadConfigFromDisk(dataDir string) (c Local, err error) {
	c = defaultLocal
	configPath := filepath.Join(dataDir, ConfigFilename)
	f, err := os.Open(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// no config file is fine, defaults apply
			return migrate(c)
		}
		return c, errors.Wrapf(err, "LoadConfigFromDisk: cannot open %s", configPath)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	err = dec.Decode(&c)
	if err != nil {
		return c, errors.Wrapf(err, "LoadConfigFromDisk: cannot parse %s", configPath)
	}
	return migrate(c)
}

// SaveConfigToDisk writes the Local settings into a root data directory.
func (cfg Local) SaveConfigToDisk(dataDir string) error {
	configPath := filepath.Join(dataDir, ConfigFilename)
	f, err := os.Create(configPath)
	if err != nil {
		return errors.Wrapf(err, "SaveConfigToDisk: cannot create %s", configPath)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "\t")
	return enc.Encode(cfg)
}
