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
	"fmt"
	"io/ioutil"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/gatechain/logging"
	"github.com/spf13/cobra"

	"github.com/gybernaty/gybermint/daemon/gyberd/api/client"
	"github.com/gybernaty/gybermint/protocol"
)

var log = logging.Base()

var dataDirs []string

var versionCheck bool

func init() {
	rootCmd.Flags().BoolVarP(&versionCheck, "version", "v", false, "Display current version and exit")

	// node.go
	rootCmd.AddCommand(nodeCmd)

	// member.go
	rootCmd.AddCommand(memberCmd)
	rootCmd.AddCommand(joinCmd)

	// events.go
	rootCmd.AddCommand(eventsCmd)

	// fund.go
	rootCmd.AddCommand(fundCmd)

	// Config
	defaultDataDirValue := []string{""}
	rootCmd.PersistentFlags().StringArrayVarP(&dataDirs, "datadir", "d", defaultDataDirValue, "Data directory for the registry node")
}

var rootCmd = &cobra.Command{
	Use:   "gyber",
	Short: "CLI for interacting with the Gybernaty registry.",
	Long:  `Gyber is the CLI for interacting with a Gybernaty cooperative registry node instance.`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, args []string) {
		if versionCheck {
			fmt.Printf("gyber %s\n", protocol.CoopCurrentVersion)
			return
		}
		//If no arguments passed, we should fallback to help
		cmd.HelpFunc()(cmd, args)
	},
}

func validateNoPosArgsFn(cmd *cobra.Command, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected argument: %s", args[0])
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func resolveDataDir() string {
	// Figure out what data directory to tell gyberd to use.
	// If not specified on cmdline with '-d', look for default in environment.
	var dir string
	if len(dataDirs) > 0 {
		dir = dataDirs[0]
	}
	if dir == "" {
		dir = os.Getenv("GYBERNATY_DATA")
	}
	return dir
}

func ensureFirstDataDir() string {
	// Get the target data directory to work against,
	// then handle the scenario where no data directory is provided.
	dir := resolveDataDir()
	if dir == "" {
		reportErrorln(errorNoDataDirectory)
	}
	return dir
}

// ensureRestClient connects to the node advertised in the data directory's
// net file.
func ensureRestClient(dataDir string) client.RestClient {
	netFile := filepath.Join(dataDir, "gyberd.net")
	raw, err := ioutil.ReadFile(netFile)
	if err != nil {
		reportErrorf(errorNodeStatus, err)
	}
	addr := strings.TrimSpace(string(raw))
	u, err := url.Parse("http://" + addr)
	if err != nil {
		reportErrorf(errorNodeStatus, err)
	}
	return client.MakeRestClient(*u)
}

func reportInfof(format string, args ...interface{}) {
	fmt.Printf(format+"\n", args...)
}

func reportErrorln(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

func reportErrorf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
