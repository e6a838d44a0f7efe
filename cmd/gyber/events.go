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
	"time"

	"github.com/spf13/cobra"
)

var (
	maxEvents uint64
	eventKind string
)

func init() {
	eventsCmd.Flags().Uint64VarP(&maxEvents, "max", "m", 0, "Maximum number of events to list (0 lists the default page)")
	eventsCmd.Flags().StringVarP(&eventKind, "kind", "k", "", "Only list events of this kind")
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List recent registry events",
	Long:  `List recent registry events, newest first, optionally filtered by kind`,
	Args:  validateNoPosArgsFn,
	Run: func(cmd *cobra.Command, _ []string) {
		dataDir := ensureFirstDataDir()
		restClient := ensureRestClient(dataDir)

		list, err := restClient.ListEvents(maxEvents, eventKind)
		if err != nil {
			reportErrorf(errorEventList, err)
		}
		for _, e := range list.Events {
			ts := time.Unix(e.CreatedAt, 0).UTC().Format(time.RFC3339)
			reportInfof("%d\t%s\t%s\t%s", e.ID, ts, e.Kind, e.Details)
		}
	},
}
