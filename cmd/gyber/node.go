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

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gybernaty/gybermint/config"
	"github.com/gybernaty/gybermint/daemon/gyberd"
)

var listenIP string

func init() {
	nodeCmd.AddCommand(startCmd)
	nodeCmd.AddCommand(statusCmd)

	startCmd.Flags().StringVarP(&listenIP, "listen", "l", "", "Endpoint / REST address to listen on")
}

var nodeCmd = &cobra.Command{
	Use:   "node",
	Short: "Manage a specified registry node",
	Long:  `Collection of commands to support the creation and management of Gybernaty registry node instances, where each instance corresponds to a unique data directory.`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		//Fall back
		cmd.HelpFunc()(cmd, args)
	},
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the specified registry node",
	Long:  `Start the specified registry node and serve the REST API until interrupted`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		reportInfof(infoDataDir, dataDir)

		cfg, err := config.LoadConfigFromDisk(dataDir)
		if err != nil {
			reportErrorf(errorConfigLoading, dataDir, err)
		}
		if listenIP != "" {
			cfg.EndpointAddress = listenIP
		}

		s := gyberd.Server{RootPath: dataDir}
		err = s.Initialize(cfg)
		if err != nil {
			reportErrorf("%v", err)
		}
		reportInfof(infoNodeStart)
		s.Start(cfg)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Get the current registry status",
	Long:  `Show the current status of the running registry node`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		status, err := restClient.Status()
		if err != nil {
			reportErrorf(errorNodeStatus, err)
		}

		state := color.GreenString("running")
		if status.Paused {
			state = color.RedString("paused")
		}
		reportInfof("Registry: %s\nCoop version: %s\nMembers: %d\nOperators: %d",
			state, status.CoopVersion, status.Members, status.Operators)
	},
}
